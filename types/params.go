package types

import (
	"fmt"
	"strings"
)

// Parameter describes one declared argument of a built-in function.
// Fixed parameters must be supplied as literals; the resolver rejects
// retrievals in those positions.
type Parameter struct {
	Type  ValueType
	Fixed bool
}

// ParameterList is the declared argument shape of a built-in: an ordered
// parameter sequence plus the accepted argument count range. Max is -1
// when a trailing variadic parameter accepts any number of arguments.
type ParameterList struct {
	Params []Parameter
	Min    int
	Max    int
}

// At returns the effective parameter for the 1-based argument position i.
// Positions past the end repeat the last parameter, so a variadic
// parameter applies to every trailing argument.
func (pl *ParameterList) At(i int) Parameter {
	if i <= len(pl.Params) {
		return pl.Params[i-1]
	}
	return pl.Params[len(pl.Params)-1]
}

var paramTypes = map[byte]ValueType{
	'p': Pointer,
	'n': Number,
	's': String,
	'N': Name,
}

// ParseParams parses a whitespace-separated parameter spec. Each atom is
// "!? letter [?|*]": '!' marks the parameter fixed, '?' optional, '*'
// variadic. Optional parameters must be trailing and at most one
// variadic parameter is allowed, in the last position.
func ParseParams(spec string) (ParameterList, error) {
	pl := ParameterList{}
	optional := 0
	variadic := false
	sawOptional := false
	for _, atom := range strings.Fields(spec) {
		if variadic {
			return pl, fmt.Errorf("the variadic parameter must be last in %q", spec)
		}
		rest := atom
		fixed := false
		if strings.HasPrefix(rest, "!") {
			fixed = true
			rest = rest[1:]
		}
		suffix := byte(0)
		if strings.HasSuffix(rest, "?") || strings.HasSuffix(rest, "*") {
			suffix = rest[len(rest)-1]
			rest = rest[:len(rest)-1]
		}
		if len(rest) != 1 {
			return pl, fmt.Errorf("malformed parameter %q in %q", atom, spec)
		}
		t, ok := paramTypes[rest[0]]
		if !ok {
			return pl, fmt.Errorf("unknown parameter type %q in %q", rest, spec)
		}
		switch suffix {
		case '?':
			optional++
			sawOptional = true
		case '*':
			variadic = true
		default:
			if sawOptional {
				return pl, fmt.Errorf("optional parameters must be trailing in %q", spec)
			}
		}
		pl.Params = append(pl.Params, Parameter{Type: t, Fixed: fixed})
	}
	total := len(pl.Params)
	pl.Min = total - optional
	pl.Max = total
	if variadic {
		pl.Min--
		pl.Max = -1
	}
	return pl, nil
}

// MustParams is ParseParams for specs known at registration time.
func MustParams(spec string) ParameterList {
	pl, err := ParseParams(spec)
	if err != nil {
		panic(err)
	}
	return pl
}
