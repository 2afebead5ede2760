package ingestion

import (
	"math"
	"strconv"
	"strings"
)

// Value represents a typed cell value produced at the ingestion boundary
type Value struct {
	Type       ValueType `json:"type"`
	StringVal  *string   `json:"string_val,omitempty"`
	NumericVal *float64  `json:"numeric_val,omitempty"`
	BooleanVal *bool     `json:"boolean_val,omitempty"`
}

// ValueType defines the storage type for values
type ValueType string

const (
	ValueTypeString  ValueType = "string"
	ValueTypeNumeric ValueType = "numeric"
	ValueTypeBoolean ValueType = "boolean"
	ValueTypeMissing ValueType = "missing"
)

// MissingString is the display form of a missing value.
const MissingString = "<missing>"

// NewStringValue creates a text value. Empty text is stored as missing.
func NewStringValue(s string) Value {
	if s == "" {
		return NewMissingValue()
	}
	return Value{Type: ValueTypeString, StringVal: &s}
}

// NewNumericValue creates a numeric value
func NewNumericValue(n float64) Value {
	return Value{Type: ValueTypeNumeric, NumericVal: &n}
}

// NewBooleanValue creates a boolean value
func NewBooleanValue(b bool) Value {
	return Value{Type: ValueTypeBoolean, BooleanVal: &b}
}

// NewMissingValue creates a missing value
func NewMissingValue() Value {
	return Value{Type: ValueTypeMissing}
}

// String returns the exact string representation used for display and grouping
func (v Value) String() string {
	switch v.Type {
	case ValueTypeString:
		if v.StringVal != nil {
			return *v.StringVal
		}
	case ValueTypeNumeric:
		if v.NumericVal != nil {
			return strconv.FormatFloat(*v.NumericVal, 'f', -1, 64)
		}
	case ValueTypeBoolean:
		if v.BooleanVal != nil {
			return strconv.FormatBool(*v.BooleanVal)
		}
	}
	return MissingString
}

// IsNumeric returns true if the value represents a valid number
func (v Value) IsNumeric() bool {
	return v.Type == ValueTypeNumeric && v.NumericVal != nil
}

// IsString returns true if the value represents a valid string
func (v Value) IsString() bool {
	return v.Type == ValueTypeString && v.StringVal != nil
}

// IsBoolean returns true if the value represents a valid boolean
func (v Value) IsBoolean() bool {
	return v.Type == ValueTypeBoolean && v.BooleanVal != nil
}

// IsMissing returns true for absent values, including the zero Value
func (v Value) IsMissing() bool {
	return !v.IsNumeric() && !v.IsString() && !v.IsBoolean()
}

// AsFloat64 returns the numeric value as float64, or 0 if not numeric
func (v Value) AsFloat64() float64 {
	if v.NumericVal != nil {
		return *v.NumericVal
	}
	return 0.0
}

// AsString returns the string value, or empty string if not a string
func (v Value) AsString() string {
	if v.StringVal != nil {
		return *v.StringVal
	}
	return ""
}

// AsBoolean returns the boolean value, or false if not a boolean
func (v Value) AsBoolean() bool {
	if v.BooleanVal != nil {
		return *v.BooleanVal
	}
	return false
}

// ToNumber coerces any value to a number for sum and average.
// Booleans count as 1 or 0, numeric text is parsed, and everything else is 0.
func (v Value) ToNumber() float64 {
	switch {
	case v.IsNumeric():
		return finiteOrZero(*v.NumericVal)
	case v.IsBoolean():
		if *v.BooleanVal {
			return 1
		}
		return 0
	case v.IsString():
		s := strings.TrimSpace(*v.StringVal)
		if s == "" {
			return 0
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return finiteOrZero(f)
		}
	}
	return 0
}

func finiteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
