package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a single typed field value. The zero Value is the text "".
type Value struct {
	kind ColumnType
	i    int64
	s    string
	b    bool
}

func IntValue(n int64) Value   { return Value{kind: TypeInt, i: n} }
func TextValue(s string) Value { return Value{kind: TypeStr, s: s} }
func BoolValue(b bool) Value   { return Value{kind: TypeBool, b: b} }

func (v Value) Kind() ColumnType {
	if v.kind == "" {
		return TypeStr
	}
	return v.kind
}

func (v Value) Int() (int64, bool)   { return v.i, v.kind == TypeInt }
func (v Value) Text() (string, bool) { return v.s, v.Kind() == TypeStr }
func (v Value) Bool() (bool, bool)   { return v.b, v.kind == TypeBool }

// String is the textual form used for equality filters.
func (v Value) String() string {
	switch v.kind {
	case TypeInt:
		return strconv.FormatInt(v.i, 10)
	case TypeBool:
		return strconv.FormatBool(v.b)
	default:
		return v.s
	}
}

func (v Value) native() any {
	switch v.kind {
	case TypeInt:
		return v.i
	case TypeBool:
		return v.b
	default:
		return v.s
	}
}

var truthy = map[string]bool{"true": true, "1": true, "yes": true}

// Coerce converts raw command text into a value of the given column type.
// Integers must parse in base 10; booleans are true for true/1/yes in any
// case and false otherwise; text passes through unchanged.
func Coerce(t ColumnType, raw string) (Value, error) {
	switch t {
	case TypeInt:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not an int", ErrTypeCoercion, raw)
		}
		return IntValue(n), nil
	case TypeBool:
		return BoolValue(truthy[strings.ToLower(strings.TrimSpace(raw))]), nil
	case TypeStr:
		return TextValue(raw), nil
	default:
		return Value{}, fmt.Errorf("%w: %q", ErrUnknownColumnType, t)
	}
}
