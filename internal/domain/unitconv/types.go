package unitconv

import (
	"bytes"
	"encoding/json"
)

// UnitType tags one of the supported measurement domains.
type UnitType string

const (
	// Length covers metric and imperial distances.
	Length UnitType = "length"
	// Weight covers metric and avoirdupois masses.
	Weight UnitType = "weight"
	// Temperature covers Celsius, Fahrenheit and Kelvin.
	Temperature UnitType = "temperature"
)

// Unit is a unit code. It only has meaning together with its UnitType.
type Unit string

// Length units.
const (
	Millimeter Unit = "mm"
	Centimeter Unit = "cm"
	Meter      Unit = "m"
	Kilometer  Unit = "km"
	Inch       Unit = "inch"
	Foot       Unit = "feet"
	Yard       Unit = "yard"
	Mile       Unit = "mile"
)

// Weight units.
const (
	Milligram Unit = "mg"
	Gram      Unit = "g"
	Kilogram  Unit = "kg"
	Ounce     Unit = "oz"
	Pound     Unit = "lb"
	Ton       Unit = "ton"
)

// Temperature units.
const (
	Celsius    Unit = "C"
	Fahrenheit Unit = "F"
	Kelvin     Unit = "K"
)

// Request is the payload accepted by the unit service. Value is kept as
// text so that parsing failures surface as InvalidValue after the unit
// checks.
type Request struct {
	Type  string    `json:"type" form:"type"`
	From  string    `json:"from" form:"from"`
	To    string    `json:"to" form:"to"`
	Value ValueText `json:"value" form:"value"`
}

// ValueText holds a numeric input exactly as the caller sent it. In JSON it
// accepts both a number and a string.
type ValueText string

// UnmarshalJSON implements json.Unmarshaler.
func (v *ValueText) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*v = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = ValueText(s)
		return nil
	}
	*v = ValueText(trimmed)
	return nil
}

// Response is serialized back to API consumers.
type Response struct {
	Type   UnitType `json:"type"`
	From   Unit     `json:"from"`
	To     Unit     `json:"to"`
	Value  float64  `json:"value"`
	Result float64  `json:"result"`
}

// UnitGroup lists the codes available for one unit type.
type UnitGroup struct {
	Type  UnitType `json:"type"`
	Units []Unit   `json:"units"`
}
