package http

import "github.com/yanqian/exchanger/internal/domain/unitconv"

var unitLabels = map[unitconv.Unit]string{
	unitconv.Millimeter: "Millimeters",
	unitconv.Centimeter: "Centimeters",
	unitconv.Meter:      "Meters",
	unitconv.Kilometer:  "Kilometers",
	unitconv.Inch:       "Inches",
	unitconv.Foot:       "Feet",
	unitconv.Yard:       "Yards",
	unitconv.Mile:       "Miles",
	unitconv.Milligram:  "Milligrams",
	unitconv.Gram:       "Grams",
	unitconv.Kilogram:   "Kilograms",
	unitconv.Ounce:      "Ounces",
	unitconv.Pound:      "Pounds",
	unitconv.Ton:        "Tons",
	unitconv.Celsius:    "Celsius",
	unitconv.Fahrenheit: "Fahrenheit",
	unitconv.Kelvin:     "Kelvin",
}

func unitLabel(u unitconv.Unit) string {
	if label, ok := unitLabels[u]; ok {
		return label
	}
	return string(u)
}
