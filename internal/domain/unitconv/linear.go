package unitconv

import "fmt"

// ScaleTable maps each unit to its size expressed in the table's base unit.
type ScaleTable struct {
	unitType UnitType
	base     Unit
	order    []Unit
	factors  map[Unit]float64
}

type scaleEntry struct {
	unit   Unit
	factor float64
}

var lengthTable = mustScaleTable(Length,
	scaleEntry{Millimeter, 1},
	scaleEntry{Centimeter, 10},
	scaleEntry{Meter, 1000},
	scaleEntry{Kilometer, 1_000_000},
	scaleEntry{Inch, 25.4},
	scaleEntry{Foot, 304.8},
	scaleEntry{Yard, 914.4},
	scaleEntry{Mile, 1_609_344},
)

var weightTable = mustScaleTable(Weight,
	scaleEntry{Milligram, 1},
	scaleEntry{Gram, 1000},
	scaleEntry{Kilogram, 1_000_000},
	scaleEntry{Ounce, 28349.523125},
	scaleEntry{Pound, 453592.37},
	scaleEntry{Ton, 1_000_000_000},
)

func newScaleTable(t UnitType, entries ...scaleEntry) (*ScaleTable, error) {
	table := &ScaleTable{
		unitType: t,
		order:    make([]Unit, 0, len(entries)),
		factors:  make(map[Unit]float64, len(entries)),
	}
	for _, e := range entries {
		if e.factor <= 0 {
			return nil, fmt.Errorf("%s unit %q: factor must be positive, got %v", t, e.unit, e.factor)
		}
		if _, dup := table.factors[e.unit]; dup {
			return nil, fmt.Errorf("%s unit %q declared twice", t, e.unit)
		}
		if e.factor == 1 {
			if table.base != "" {
				return nil, fmt.Errorf("%s table has two base units: %q and %q", t, table.base, e.unit)
			}
			table.base = e.unit
		}
		table.factors[e.unit] = e.factor
		table.order = append(table.order, e.unit)
	}
	if table.base == "" {
		return nil, fmt.Errorf("%s table has no base unit", t)
	}
	return table, nil
}

func mustScaleTable(t UnitType, entries ...scaleEntry) *ScaleTable {
	table, err := newScaleTable(t, entries...)
	if err != nil {
		panic(err)
	}
	return table
}

// Base returns the unit whose factor is 1.
func (s *ScaleTable) Base() Unit {
	return s.base
}

// Factor returns the size of u in base units.
func (s *ScaleTable) Factor(u Unit) (float64, bool) {
	f, ok := s.factors[u]
	return f, ok
}

func (s *ScaleTable) has(u Unit) bool {
	_, ok := s.factors[u]
	return ok
}

func (s *ScaleTable) units() []Unit {
	out := make([]Unit, len(s.order))
	copy(out, s.order)
	return out
}

// Convert normalizes value to the base unit and divides by the target factor.
func (s *ScaleTable) Convert(value float64, from, to Unit) (float64, error) {
	fromFactor, ok := s.factors[from]
	if !ok {
		return 0, unknownUnit(s.unitType, "from", from)
	}
	toFactor, ok := s.factors[to]
	if !ok {
		return 0, unknownUnit(s.unitType, "to", to)
	}
	if from == to {
		return value, nil
	}
	base := value * fromFactor
	return base / toFactor, nil
}
