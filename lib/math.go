package lib

import (
	"errors"
	"math"
	"math/rand"

	"bliks/types"
)

// The arithmetic family. Every function stores its result in the
// register named by the first argument; operands arrive as float64
// because their parameters are number-typed.

func storeNum(ctx *Context, args []types.Value, v float64) error {
	return ctx.Store(args[0].(float64), v)
}

func runAdd(ctx *Context, args []types.Value) error {
	acc := args[1].(float64)
	for _, v := range args[2:] {
		acc += v.(float64)
	}
	return storeNum(ctx, args, acc)
}

func runSub(ctx *Context, args []types.Value) error {
	acc := args[1].(float64)
	for _, v := range args[2:] {
		acc -= v.(float64)
	}
	return storeNum(ctx, args, acc)
}

func runMul(ctx *Context, args []types.Value) error {
	acc := args[1].(float64)
	for _, v := range args[2:] {
		acc *= v.(float64)
	}
	return storeNum(ctx, args, acc)
}

func runDiv(ctx *Context, args []types.Value) error {
	acc := args[1].(float64)
	for _, v := range args[2:] {
		d := v.(float64)
		if d == 0 {
			return errors.New("division by zero")
		}
		acc /= d
	}
	return storeNum(ctx, args, acc)
}

func runMod(ctx *Context, args []types.Value) error {
	d := args[2].(float64)
	if d == 0 {
		return errors.New("division by zero")
	}
	return storeNum(ctx, args, math.Mod(args[1].(float64), d))
}

func runPow(ctx *Context, args []types.Value) error {
	return storeNum(ctx, args, math.Pow(args[1].(float64), args[2].(float64)))
}

func runNeg(ctx *Context, args []types.Value) error {
	return storeNum(ctx, args, -args[1].(float64))
}

func runAbs(ctx *Context, args []types.Value) error {
	return storeNum(ctx, args, math.Abs(args[1].(float64)))
}

func runFloor(ctx *Context, args []types.Value) error {
	return storeNum(ctx, args, math.Floor(args[1].(float64)))
}

func runCeil(ctx *Context, args []types.Value) error {
	return storeNum(ctx, args, math.Ceil(args[1].(float64)))
}

func runRound(ctx *Context, args []types.Value) error {
	return storeNum(ctx, args, math.Round(args[1].(float64)))
}

func runSqrt(ctx *Context, args []types.Value) error {
	f := args[1].(float64)
	if f < 0 {
		return errors.New("square root of a negative number")
	}
	return storeNum(ctx, args, math.Sqrt(f))
}

func runMin(ctx *Context, args []types.Value) error {
	acc := args[1].(float64)
	for _, v := range args[2:] {
		acc = math.Min(acc, v.(float64))
	}
	return storeNum(ctx, args, acc)
}

func runMax(ctx *Context, args []types.Value) error {
	acc := args[1].(float64)
	for _, v := range args[2:] {
		acc = math.Max(acc, v.(float64))
	}
	return storeNum(ctx, args, acc)
}

// runRandom stores a uniformly random integer in [lo, hi]. This is the
// one explicitly nondeterministic built-in.
func runRandom(ctx *Context, args []types.Value) error {
	lo := args[1].(float64)
	hi := args[2].(float64)
	if lo != math.Trunc(lo) || hi != math.Trunc(hi) {
		return errors.New("random bounds must be whole numbers")
	}
	if hi < lo {
		return errors.New("random range is empty")
	}
	return storeNum(ctx, args, lo+float64(rand.Int63n(int64(hi-lo)+1)))
}

// runTonum converts a string to its numeric value, storing 0 when it
// does not parse.
func runTonum(ctx *Context, args []types.Value) error {
	n, ok := types.ToNumber(args[1])
	if !ok {
		n = 0
	}
	return storeNum(ctx, args, n)
}

func runSet(ctx *Context, args []types.Value) error {
	return ctx.Store(args[0].(float64), args[1])
}
