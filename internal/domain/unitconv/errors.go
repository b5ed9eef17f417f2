package unitconv

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a rejected conversion.
type ErrorKind string

const (
	KindUnknownUnitType ErrorKind = "unknown_unit_type"
	KindUnknownUnit     ErrorKind = "unknown_unit"
	KindInvalidValue    ErrorKind = "invalid_value"
)

// Error reports which input made a conversion impossible.
type Error struct {
	Kind     ErrorKind
	Field    string
	Input    string
	UnitType UnitType
	Detail   string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("%s: %s %q", e.Kind, e.Field, e.Input)
}

// KindOf returns the kind carried by err, if any.
func KindOf(err error) (ErrorKind, bool) {
	var convErr *Error
	if errors.As(err, &convErr) {
		return convErr.Kind, true
	}
	return "", false
}

func unknownUnitType(raw string) *Error {
	return &Error{
		Kind:   KindUnknownUnitType,
		Field:  "type",
		Input:  raw,
		Detail: fmt.Sprintf("unit type %q is not recognized", raw),
	}
}

func unknownUnit(t UnitType, field string, u Unit) *Error {
	return &Error{
		Kind:     KindUnknownUnit,
		Field:    field,
		Input:    string(u),
		UnitType: t,
		Detail:   fmt.Sprintf("%s unit %q is not recognized", t, u),
	}
}

// unknownUnits names both sides when neither code belongs to t.
func unknownUnits(t UnitType, from, to Unit) *Error {
	return &Error{
		Kind:     KindUnknownUnit,
		Field:    "from,to",
		Input:    string(from) + "," + string(to),
		UnitType: t,
		Detail:   fmt.Sprintf("%s units %q and %q are not recognized", t, from, to),
	}
}

func invalidValue(t UnitType, raw, reason string) *Error {
	return &Error{
		Kind:     KindInvalidValue,
		Field:    "value",
		Input:    raw,
		UnitType: t,
		Detail:   fmt.Sprintf("value %q %s", raw, reason),
	}
}
