package vm

import (
	"fmt"
	"math"
	"strings"

	"bliks/types"
)

// traceLimit bounds how much of a value appears in a retrieval trace.
const traceLimit = 24

// Expand turns resolved arguments into the raw values handed to a run
// behavior: literals pass through, retrievals are chased through the
// register map, and every number-typed argument is converted to a
// float64.
func Expand(args []types.Argument, regs map[int]types.Value) ([]types.Value, error) {
	out := make([]types.Value, len(args))
	for i := range args {
		v, err := expandOne(&args[i], i+1, regs)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func expandOne(arg *types.Argument, n int, regs map[int]types.Value) (types.Value, error) {
	var v types.Value = arg.Value
	if arg.Kind == types.ArgRetrieval {
		var err error
		v, err = retrieve(arg, n, regs)
		if err != nil {
			return nil, err
		}
	}
	if types.Is(arg.Expected, types.Number) {
		f, _ := types.ToNumber(v)
		return f, nil
	}
	return v, nil
}

// retrieve chases a retrieval chain: each hop requires the current value
// to be a pointer and replaces it with that register's content (missing
// registers read as the empty string). The final value must satisfy the
// argument's expected type.
func retrieve(arg *types.Argument, n int, regs map[int]types.Value) (types.Value, error) {
	v := types.Value(arg.Value)
	trace := []string{traceQuote(v)}
	for hop := 0; hop < arg.Depth; hop++ {
		if types.TypeOf(v) != types.Pointer {
			return nil, fmt.Errorf("expected pointer during retrieval, but got %s (a %s)",
				strings.Join(trace, " -> "), types.TypeOf(v))
		}
		f, _ := types.ToNumber(v)
		v = readRegister(regs, f)
		trace = append(trace, traceQuote(v))
	}
	t := types.TypeOf(v)
	if !types.Is(t, arg.Expected) {
		if arg.Expected == types.Pointer {
			return nil, fmt.Errorf("expected pointer during retrieval, but got %s (a %s)",
				strings.Join(trace, " -> "), t)
		}
		return nil, fmt.Errorf("function expects a %s for argument %d, but retrieval expanded to %s (a %s)",
			arg.Expected, n, strings.Join(trace, " -> "), t)
	}
	return v, nil
}

func readRegister(regs map[int]types.Value, idx float64) types.Value {
	if idx > math.MaxInt32 {
		return ""
	}
	v, ok := regs[int(idx)]
	if !ok {
		return ""
	}
	return v
}

func traceQuote(v types.Value) string {
	s := types.ToString(v)
	if len(s) > traceLimit {
		s = s[:traceLimit] + "..."
	}
	return "'" + s + "'"
}

// expandCompile produces the literal values handed to a compile-time
// behavior. Retrieval arguments have no value until run time and expand
// to the empty string; behaviors that read their arguments declare the
// corresponding parameters fixed, so they never see one.
func expandCompile(args []types.Argument) []types.Value {
	out := make([]types.Value, len(args))
	for i := range args {
		a := &args[i]
		if a.Kind == types.ArgRetrieval {
			out[i] = ""
			continue
		}
		if types.Is(a.Expected, types.Number) {
			f, _ := types.ToNumber(a.Value)
			out[i] = f
			continue
		}
		out[i] = a.Value
	}
	return out
}
