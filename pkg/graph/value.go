package graph

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/graphdeck/graphdeck/pkg/errors"
)

// Kind discriminates the scalar types an attribute value can hold.
type Kind int

const (
	// KindString is a string-valued attribute.
	KindString Kind = iota
	// KindNumber is a numeric attribute. All JSON numbers decode as float64.
	KindNumber
	// KindBool is a boolean attribute.
	KindBool
)

// Value is a tagged scalar attribute value: string, number, or bool.
// The zero value is the empty string. Values are comparable with Equal
// and have a stable ordering via Less for deterministic output.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
}

// StringValue returns a string-kinded Value.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// NumberValue returns a number-kinded Value.
func NumberValue(f float64) Value { return Value{kind: KindNumber, num: f} }

// BoolValue returns a bool-kinded Value.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// Kind returns the value's scalar kind.
func (v Value) Kind() Kind { return v.kind }

// AsString returns the string content and whether the value is a string.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsNumber returns the numeric content and whether the value is a number.
func (v Value) AsNumber() (float64, bool) { return v.num, v.kind == KindNumber }

// AsBool returns the boolean content and whether the value is a bool.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// Text returns the canonical string form of the value, used for color
// categories, legends, and dropdown labels.
func (v Value) Text() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return v.str
	}
}

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.b == o.b
	default:
		return v.str == o.str
	}
}

// Less defines a total order over values (kind first, then content) so
// distinct-value lists can be sorted deterministically.
func (v Value) Less(o Value) bool {
	if v.kind != o.kind {
		return v.kind < o.kind
	}
	switch v.kind {
	case KindNumber:
		return v.num < o.num
	case KindBool:
		return !v.b && o.b
	default:
		return v.str < o.str
	}
}

// MarshalJSON emits the bare scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	default:
		return json.Marshal(v.str)
	}
}

// UnmarshalJSON accepts a bare string, number, or bool.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ValueOf(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ValueOf converts a decoded JSON scalar (string, float64, bool, or integer
// types) to a Value. Objects, arrays, and nulls are rejected with a
// MALFORMED_GRAPH error.
func ValueOf(raw any) (Value, error) {
	switch x := raw.(type) {
	case string:
		return StringValue(x), nil
	case float64:
		return NumberValue(x), nil
	case int:
		return NumberValue(float64(x)), nil
	case int64:
		return NumberValue(float64(x)), nil
	case bool:
		return BoolValue(x), nil
	default:
		return Value{}, errors.New(errors.ErrCodeMalformedGraph,
			"attribute value must be a scalar, got %s", fmt.Sprintf("%T", raw))
	}
}

// Attrs maps attribute names to scalar values.
type Attrs map[string]Value

// Equal reports whether two attribute maps hold the same keys and values.
func (a Attrs) Equal(o Attrs) bool {
	if len(a) != len(o) {
		return false
	}
	for k, v := range a {
		ov, ok := o[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// clone returns a copy of the attribute map (nil stays nil).
func (a Attrs) clone() Attrs {
	if a == nil {
		return nil
	}
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
