// SPDX-License-Identifier: MIT

package events

import (
	"fmt"
	"math"
	"strconv"
)

// ValueKind tags an attribute value.
type ValueKind int

const (
	// KindMissing is an absent, empty or NaN value.
	KindMissing ValueKind = iota
	// KindNumeric is a finite or infinite float64.
	KindNumeric
	// KindString is a non-empty string.
	KindString
)

// String returns "missing", "numeric" or "string".
func (k ValueKind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindString:
		return "string"
	default:
		return "missing"
	}
}

// Value is a single event attribute. The zero Value is missing.
type Value struct {
	kind ValueKind
	num  float64
	str  string
}

// Missing returns the missing value.
func Missing() Value { return Value{} }

// Num returns a numeric value; NaN is normalized to missing.
func Num(v float64) Value {
	if math.IsNaN(v) {
		return Value{}
	}
	return Value{kind: KindNumeric, num: v}
}

// Str returns a string value; "" is normalized to missing.
func Str(s string) Value {
	if s == "" {
		return Value{}
	}
	return Value{kind: KindString, str: s}
}

// FromAny converts a decoded Go value (JSON/YAML) into a Value.
// nil → missing, numbers → numeric, bool → 0/1, string → string.
// Other types are rendered with fmt and stored as strings.
func FromAny(v interface{}) Value {
	switch x := v.(type) {
	case nil:
		return Missing()
	case Value:
		return x
	case float64:
		return Num(x)
	case float32:
		return Num(float64(x))
	case int:
		return Num(float64(x))
	case int32:
		return Num(float64(x))
	case int64:
		return Num(float64(x))
	case uint:
		return Num(float64(x))
	case uint64:
		return Num(float64(x))
	case bool:
		if x {
			return Num(1)
		}
		return Num(0)
	case string:
		return Str(x)
	default:
		return Str(fmt.Sprint(x))
	}
}

// Kind reports the value kind.
func (v Value) Kind() ValueKind { return v.kind }

// IsMissing reports whether the value is missing.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Float returns the numeric value, or NaN for missing and string values.
func (v Value) Float() float64 {
	if v.kind != KindNumeric {
		return math.NaN()
	}
	return v.num
}

// Text returns the string value; numbers are formatted in shortest form and
// missing values return "".
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumeric:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	default:
		return ""
	}
}

// String implements fmt.Stringer.
func (v Value) String() string {
	if v.kind == KindMissing {
		return "<missing>"
	}
	return v.Text()
}

// Event is one experiment event.
type Event struct {
	Type  string
	Attrs map[string]Value
}

// NewEvent builds an Event from decoded attributes using FromAny.
func NewEvent(typ string, attrs map[string]interface{}) Event {
	out := Event{Type: typ, Attrs: make(map[string]Value, len(attrs))}
	for k, v := range attrs {
		out.Attrs[k] = FromAny(v)
	}
	return out
}
