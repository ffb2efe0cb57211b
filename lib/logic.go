package lib

import (
	"bliks/types"
)

// The comparison family stores "true" or the empty string, matching the
// true/false macros.

func runEqual(ctx *Context, args []types.Value) error {
	first := types.ToString(args[1])
	eq := true
	for _, v := range args[2:] {
		if types.ToString(v) != first {
			eq = false
			break
		}
	}
	return ctx.Store(args[0].(float64), boolValue(eq))
}

func runNot(ctx *Context, args []types.Value) error {
	return ctx.Store(args[0].(float64), boolValue(!truthy(args[1])))
}

func runAnd(ctx *Context, args []types.Value) error {
	all := true
	for _, v := range args[1:] {
		if !truthy(v) {
			all = false
			break
		}
	}
	return ctx.Store(args[0].(float64), boolValue(all))
}

func runOr(ctx *Context, args []types.Value) error {
	any := false
	for _, v := range args[1:] {
		if truthy(v) {
			any = true
			break
		}
	}
	return ctx.Store(args[0].(float64), boolValue(any))
}

func runGt(ctx *Context, args []types.Value) error {
	return ctx.Store(args[0].(float64), boolValue(args[1].(float64) > args[2].(float64)))
}

func runLt(ctx *Context, args []types.Value) error {
	return ctx.Store(args[0].(float64), boolValue(args[1].(float64) < args[2].(float64)))
}

func runGe(ctx *Context, args []types.Value) error {
	return ctx.Store(args[0].(float64), boolValue(args[1].(float64) >= args[2].(float64)))
}

func runLe(ctx *Context, args []types.Value) error {
	return ctx.Store(args[0].(float64), boolValue(args[1].(float64) <= args[2].(float64)))
}
