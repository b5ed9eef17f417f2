package unitconv

// AffineRule relates a temperature unit to Celsius:
//
//	celsius = (raw - Zero) * Num / Den
//	raw     = celsius * Den / Num + Zero
//
// Zero is the raw reading at 0°C. Num and Den are kept apart so that the
// Fahrenheit ratio is applied as an exact 5/9 and 9/5 instead of a rounded
// decimal.
type AffineRule struct {
	Zero float64
	Num  float64
	Den  float64
}

// Scale is the multiplicative part of celsius = raw*Scale + Offset.
func (r AffineRule) Scale() float64 {
	return r.Num / r.Den
}

// Offset is the additive part of celsius = raw*Scale + Offset.
func (r AffineRule) Offset() float64 {
	return -r.Zero * r.Num / r.Den
}

func (r AffineRule) toCelsius(v float64) float64 {
	return (v - r.Zero) * r.Num / r.Den
}

func (r AffineRule) fromCelsius(c float64) float64 {
	return c*r.Den/r.Num + r.Zero
}

// AffineTable converts through a reference unit using per-unit affine rules.
type AffineTable struct {
	unitType  UnitType
	reference Unit
	order     []Unit
	rules     map[Unit]AffineRule
}

var temperatureTable = &AffineTable{
	unitType:  Temperature,
	reference: Celsius,
	order:     []Unit{Celsius, Fahrenheit, Kelvin},
	rules: map[Unit]AffineRule{
		Celsius:    {Zero: 0, Num: 1, Den: 1},
		Fahrenheit: {Zero: 32, Num: 5, Den: 9},
		Kelvin:     {Zero: 273.15, Num: 1, Den: 1},
	},
}

// Reference returns the pivot unit.
func (a *AffineTable) Reference() Unit {
	return a.reference
}

// Rule returns the affine rule for u.
func (a *AffineTable) Rule(u Unit) (AffineRule, bool) {
	r, ok := a.rules[u]
	return r, ok
}

func (a *AffineTable) has(u Unit) bool {
	_, ok := a.rules[u]
	return ok
}

func (a *AffineTable) units() []Unit {
	out := make([]Unit, len(a.order))
	copy(out, a.order)
	return out
}

// Convert normalizes value to the reference unit, then projects it onto to.
func (a *AffineTable) Convert(value float64, from, to Unit) (float64, error) {
	fromRule, ok := a.rules[from]
	if !ok {
		return 0, unknownUnit(a.unitType, "from", from)
	}
	toRule, ok := a.rules[to]
	if !ok {
		return 0, unknownUnit(a.unitType, "to", to)
	}
	if from == to {
		return value, nil
	}
	return toRule.fromCelsius(fromRule.toCelsius(value)), nil
}
