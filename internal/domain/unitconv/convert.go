package unitconv

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// converter is implemented by ScaleTable and AffineTable.
type converter interface {
	has(u Unit) bool
	units() []Unit
	Convert(value float64, from, to Unit) (float64, error)
}

// Domain binds a unit type to its unit set and conversion rule.
type Domain struct {
	Type UnitType
	conv converter
}

var domains = []Domain{
	{Type: Length, conv: lengthTable},
	{Type: Weight, conv: weightTable},
	{Type: Temperature, conv: temperatureTable},
}

// LookupDomain resolves a unit type tag.
func LookupDomain(raw string) (Domain, error) {
	t := UnitType(strings.ToLower(strings.TrimSpace(raw)))
	for _, d := range domains {
		if d.Type == t {
			return d, nil
		}
	}
	return Domain{}, unknownUnitType(raw)
}

// Has reports whether u belongs to the domain.
func (d Domain) Has(u Unit) bool {
	return d.conv.has(u)
}

// Units lists the domain's codes in display order.
func (d Domain) Units() []Unit {
	return d.conv.units()
}

// Validate checks that both codes belong to the domain.
func (d Domain) Validate(from, to Unit) error {
	fromOK, toOK := d.Has(from), d.Has(to)
	switch {
	case !fromOK && !toOK:
		return unknownUnits(d.Type, from, to)
	case !fromOK:
		return unknownUnit(d.Type, "from", from)
	case !toOK:
		return unknownUnit(d.Type, "to", to)
	}
	return nil
}

// Convert runs the domain's conversion for a finite value.
func (d Domain) Convert(value float64, from, to Unit) (float64, error) {
	if err := d.Validate(from, to); err != nil {
		return 0, err
	}
	if !isFinite(value) {
		return 0, invalidValue(d.Type, strconv.FormatFloat(value, 'g', -1, 64), "is not a finite number")
	}
	result, err := d.conv.Convert(value, from, to)
	if err != nil {
		return 0, err
	}
	if !isFinite(result) {
		return 0, invalidValue(d.Type, strconv.FormatFloat(value, 'g', -1, 64), "is out of range for "+string(to))
	}
	return result, nil
}

// Convert is the single entry point: it validates the unit type, then the
// units, then the value, and returns the converted value.
func Convert(value float64, from, to Unit, unitType UnitType) (float64, error) {
	d, err := LookupDomain(string(unitType))
	if err != nil {
		return 0, err
	}
	return d.Convert(value, from, to)
}

// Catalog lists every unit type with its codes.
func Catalog() []UnitGroup {
	groups := make([]UnitGroup, 0, len(domains))
	for _, d := range domains {
		groups = append(groups, UnitGroup{Type: d.Type, Units: d.Units()})
	}
	return groups
}

// ParseValue parses user supplied text into a finite float.
func ParseValue(t UnitType, raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, invalidValue(t, raw, "is missing")
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if errors.Is(err, strconv.ErrRange) {
		return 0, invalidValue(t, raw, "is out of range")
	}
	if err != nil {
		return 0, invalidValue(t, raw, "is not a number")
	}
	if !isFinite(v) {
		return 0, invalidValue(t, raw, "is not a finite number")
	}
	return v, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
