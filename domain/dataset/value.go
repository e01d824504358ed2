package dataset

import (
	"strconv"
	"time"
)

// DateLayout is the canonical display format for timestamp values
const DateLayout = "2006-01-02"

// Value represents a typed cell value
type Value struct {
	Type         ValueType  `json:"type"`
	StringVal    *string    `json:"string_val,omitempty"`
	NumericVal   *float64   `json:"numeric_val,omitempty"`
	TimestampVal *time.Time `json:"timestamp_val,omitempty"`
}

// ValueType defines the storage type for values
type ValueType string

const (
	ValueTypeString    ValueType = "string"
	ValueTypeNumeric   ValueType = "numeric"
	ValueTypeTimestamp ValueType = "timestamp"
	ValueTypeMissing   ValueType = "missing"
)

// NewStringValue creates a string value; the empty string is missing
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

// NewTimestampValue creates a timestamp value
func NewTimestampValue(t time.Time) Value {
	return Value{Type: ValueTypeTimestamp, TimestampVal: &t}
}

// NewMissingValue creates the missing-value marker
func NewMissingValue() Value {
	return Value{Type: ValueTypeMissing}
}

// IsMissing reports whether the value is the missing-value marker
func (v Value) IsMissing() bool {
	return v.Type == ValueTypeMissing || v.Type == ""
}

// IsNumeric returns true if the value represents a valid number
func (v Value) IsNumeric() bool {
	return v.Type == ValueTypeNumeric && v.NumericVal != nil
}

// IsTimestamp returns true if the value represents a valid timestamp
func (v Value) IsTimestamp() bool {
	return v.Type == ValueTypeTimestamp && v.TimestampVal != nil
}

// AsFloat64 returns the numeric value and whether it was numeric
func (v Value) AsFloat64() (float64, bool) {
	if v.IsNumeric() {
		return *v.NumericVal, true
	}
	return 0, false
}

// AsTime returns the timestamp value and whether it was a timestamp
func (v Value) AsTime() (time.Time, bool) {
	if v.IsTimestamp() {
		return *v.TimestampVal, true
	}
	return time.Time{}, false
}

// String formats the value for display; missing values format as ""
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
	case ValueTypeTimestamp:
		if v.TimestampVal != nil {
			if h, m, s := v.TimestampVal.Clock(); h == 0 && m == 0 && s == 0 {
				return v.TimestampVal.Format(DateLayout)
			}
			return v.TimestampVal.Format("2006-01-02 15:04:05")
		}
	}
	return ""
}

// Key returns a comparable identity used for distinct counting and grouping
func (v Value) Key() string {
	if v.IsMissing() {
		return ""
	}
	return string(v.Type) + ":" + v.String()
}

// Interface returns the value as a plain Go value for JSON encoding
func (v Value) Interface() interface{} {
	switch {
	case v.IsNumeric():
		return *v.NumericVal
	case v.IsTimestamp():
		return v.String()
	case v.IsMissing():
		return nil
	default:
		return v.String()
	}
}
