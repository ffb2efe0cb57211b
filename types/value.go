package types

import (
	"math"
	"strconv"
)

// Value is a runtime scalar: a string or a float64. Registers, buffered
// input, and step outputs all hold values of this shape.
type Value interface{}

// ValueType classifies values and tokens. Pointer, Number and String form
// a subtyping chain (every pointer is a number, every number is a string);
// Name stands apart and is only ever assigned to name tokens.
type ValueType int

const (
	Pointer ValueType = iota
	Number
	String
	Name
)

// String returns the lowercase type name used in diagnostics.
func (t ValueType) String() string {
	switch t {
	case Pointer:
		return "pointer"
	case Number:
		return "number"
	case String:
		return "string"
	case Name:
		return "name"
	default:
		return "unknown"
	}
}

// Is reports whether sub satisfies super on the Pointer ⊂ Number ⊂ String
// chain. Name only satisfies itself.
func Is(sub, super ValueType) bool {
	if sub == super {
		return true
	}
	switch sub {
	case Pointer:
		return super == Number || super == String
	case Number:
		return super == String
	}
	return false
}

// TypeOf determines a value's most specific type by parsing it
// numerically: positive integers are pointers, any other numeric value is
// a number, everything else is a string. TypeOf never returns Name.
func TypeOf(v Value) ValueType {
	switch x := v.(type) {
	case float64:
		return numberType(x)
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return String
		}
		return numberType(f)
	}
	return String
}

func numberType(f float64) ValueType {
	if f > 0 && !math.IsInf(f, 0) && f == math.Trunc(f) {
		return Pointer
	}
	return Number
}

// ToString renders a value in its canonical string form. Numbers print
// without trailing zeros or a spurious decimal point.
func ToString(v Value) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return ""
}

// ToNumber converts a value to a float64, reporting whether the
// conversion succeeded.
func ToNumber(v Value) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
