package unitconv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConvertKnownFixedPoints(t *testing.T) {
	cases := []struct {
		name     string
		value    float64
		from, to Unit
		unitType UnitType
		want     float64
	}{
		{name: "freezing C to F", value: 0, from: Celsius, to: Fahrenheit, unitType: Temperature, want: 32},
		{name: "boiling C to F", value: 100, from: Celsius, to: Fahrenheit, unitType: Temperature, want: 212},
		{name: "freezing C to K", value: 0, from: Celsius, to: Kelvin, unitType: Temperature, want: 273.15},
		{name: "km to m", value: 1, from: Kilometer, to: Meter, unitType: Length, want: 1000},
		{name: "kg to g", value: 1, from: Kilogram, to: Gram, unitType: Weight, want: 1000},
		{name: "m to mm", value: 1, from: Meter, to: Millimeter, unitType: Length, want: 1000},
	}

	for _, tc := range cases {
		got, err := Convert(tc.value, tc.from, tc.to, tc.unitType)
		require.NoError(t, err, tc.name)
		require.Equal(t, tc.want, got, tc.name)
	}
}

func TestConvertScaleAndOffset(t *testing.T) {
	cases := []struct {
		name     string
		value    float64
		from, to Unit
		unitType UnitType
		want     float64
	}{
		{name: "mile to km", value: 1, from: Mile, to: Kilometer, unitType: Length, want: 1.609344},
		{name: "lb to kg", value: 1, from: Pound, to: Kilogram, unitType: Weight, want: 0.45359237},
		{name: "body temperature", value: 98.6, from: Fahrenheit, to: Celsius, unitType: Temperature, want: 37.0},
		{name: "feet to inch", value: 1, from: Foot, to: Inch, unitType: Length, want: 12},
		{name: "yard to feet", value: 2, from: Yard, to: Foot, unitType: Length, want: 6},
		{name: "oz to g", value: 16, from: Ounce, to: Gram, unitType: Weight, want: 453.59237},
		{name: "absolute zero", value: 0, from: Kelvin, to: Fahrenheit, unitType: Temperature, want: -459.67},
		{name: "negative length", value: -2.5, from: Meter, to: Centimeter, unitType: Length, want: -250},
	}

	for _, tc := range cases {
		got, err := Convert(tc.value, tc.from, tc.to, tc.unitType)
		require.NoError(t, err, tc.name)
		require.InDelta(t, tc.want, got, 1e-9*math.Max(1, math.Abs(tc.want)), tc.name)
	}
}

func TestConvertIdentity(t *testing.T) {
	values := []float64{0, 1, -40, 273.15, 1e12, -1e-9}
	for _, group := range Catalog() {
		for _, u := range group.Units {
			for _, v := range values {
				got, err := Convert(v, u, u, group.Type)
				require.NoError(t, err)
				require.Equal(t, v, got, "%s %s", group.Type, u)
			}
		}
	}
}

func TestConvertRoundTrip(t *testing.T) {
	values := []float64{0, 1, -40, 37.5, 12345.678}
	for _, group := range Catalog() {
		for _, a := range group.Units {
			for _, b := range group.Units {
				for _, v := range values {
					there, err := Convert(v, a, b, group.Type)
					require.NoError(t, err)
					back, err := Convert(there, b, a, group.Type)
					require.NoError(t, err)
					require.InDelta(t, v, back, 1e-9*math.Max(1, math.Abs(v)), "%s %s->%s->%s", group.Type, a, b, a)
				}
			}
		}
	}
}

func TestConvertTemperatureMonotonic(t *testing.T) {
	units := []Unit{Celsius, Fahrenheit, Kelvin}
	for _, from := range units {
		for _, to := range units {
			prev, err := Convert(-500, from, to, Temperature)
			require.NoError(t, err)
			for v := -499.5; v <= 500; v += 0.5 {
				got, err := Convert(v, from, to, Temperature)
				require.NoError(t, err)
				require.Greater(t, got, prev, "%s->%s at %v", from, to, v)
				prev = got
			}
		}
	}
}

func TestConvertUnknownUnit(t *testing.T) {
	got, err := Convert(1, "xx", Meter, Length)
	require.Error(t, err)
	require.Zero(t, got)

	var convErr *Error
	require.ErrorAs(t, err, &convErr)
	require.Equal(t, KindUnknownUnit, convErr.Kind)
	require.Equal(t, "from", convErr.Field)
	require.Equal(t, "xx", convErr.Input)
	require.Equal(t, Length, convErr.UnitType)
	require.Contains(t, convErr.Error(), `"xx"`)
}

func TestConvertUnknownUnitBothSides(t *testing.T) {
	_, err := Convert(1, "xx", "yy", Weight)
	var convErr *Error
	require.ErrorAs(t, err, &convErr)
	require.Equal(t, KindUnknownUnit, convErr.Kind)
	require.Contains(t, convErr.Error(), `"xx"`)
	require.Contains(t, convErr.Error(), `"yy"`)
}

func TestConvertRejectsUnitFromAnotherType(t *testing.T) {
	_, err := Convert(1, Kilogram, Meter, Length)
	kind, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, KindUnknownUnit, kind)

	_, err = Convert(1, "X", Celsius, Temperature)
	kind, ok = KindOf(err)
	require.True(t, ok)
	require.Equal(t, KindUnknownUnit, kind)
	require.Contains(t, err.Error(), `temperature unit "X" is not recognized`)
}

func TestConvertUnknownUnitType(t *testing.T) {
	_, err := Convert(1, Celsius, Fahrenheit, "volume")
	var convErr *Error
	require.ErrorAs(t, err, &convErr)
	require.Equal(t, KindUnknownUnitType, convErr.Kind)
	require.Equal(t, "volume", convErr.Input)
}

func TestConvertValidationOrder(t *testing.T) {
	_, err := Convert(math.NaN(), "xx", "yy", "volume")
	kind, _ := KindOf(err)
	require.Equal(t, KindUnknownUnitType, kind)

	_, err = Convert(math.NaN(), "xx", Meter, Length)
	kind, _ = KindOf(err)
	require.Equal(t, KindUnknownUnit, kind)

	_, err = Convert(math.NaN(), Meter, Meter, Length)
	kind, _ = KindOf(err)
	require.Equal(t, KindInvalidValue, kind)
}

func TestConvertNonFiniteValues(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := Convert(v, Celsius, Kelvin, Temperature)
		kind, ok := KindOf(err)
		require.True(t, ok)
		require.Equal(t, KindInvalidValue, kind)
	}
}

func TestConvertOverflowIsReported(t *testing.T) {
	_, err := Convert(math.MaxFloat64, Ton, Milligram, Weight)
	kind, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, KindInvalidValue, kind)
}

func TestParseValue(t *testing.T) {
	v, err := ParseValue(Length, " 12.5 ")
	require.NoError(t, err)
	require.Equal(t, 12.5, v)

	for _, raw := range []string{"", "abc", "NaN", "Inf", "1e400"} {
		_, err := ParseValue(Length, raw)
		kind, ok := KindOf(err)
		require.True(t, ok, raw)
		require.Equal(t, KindInvalidValue, kind, raw)
	}
}

func TestLookupDomainIsCaseInsensitive(t *testing.T) {
	d, err := LookupDomain(" Temperature ")
	require.NoError(t, err)
	require.Equal(t, Temperature, d.Type)
	require.True(t, d.Has(Kelvin))
	require.False(t, d.Has(Meter))
}
