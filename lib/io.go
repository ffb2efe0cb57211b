package lib

import (
	"errors"
	"fmt"
	"strings"

	"bliks/types"
)

// InputSentinel is the output value a poll emits when the buffer is
// empty: the host must push input and step again.
const InputSentinel = float64(-1)

func runRead(ctx *Context, args []types.Value) error {
	s, ok := ctx.PopBuffer()
	if !ok {
		return errors.New("read from an empty input buffer")
	}
	return ctx.Store(args[0].(float64), s)
}

func runReadnum(ctx *Context, args []types.Value) error {
	s, ok := ctx.PopBuffer()
	if !ok {
		return errors.New("read from an empty input buffer")
	}
	n, ok := types.ToNumber(s)
	if !ok {
		return fmt.Errorf("input '%s' is not a number", s)
	}
	return ctx.Store(args[0].(float64), n)
}

// runPoll suspends instead of failing: with nothing buffered it emits
// the input sentinel and re-points the program counter at the same
// instruction, so the machine retries once the host has pushed input.
func runPoll(ctx *Context, args []types.Value) error {
	s, ok := ctx.PopBuffer()
	if !ok {
		ctx.SetOutput(InputSentinel)
		ctx.Next = ctx.Cur
		return nil
	}
	return ctx.Store(args[0].(float64), s)
}

func runPollnum(ctx *Context, args []types.Value) error {
	s, ok := ctx.PopBuffer()
	if !ok {
		ctx.SetOutput(InputSentinel)
		ctx.Next = ctx.Cur
		return nil
	}
	n, ok := types.ToNumber(s)
	if !ok {
		return fmt.Errorf("input '%s' is not a number", s)
	}
	return ctx.Store(args[0].(float64), n)
}

func runWrite(ctx *Context, args []types.Value) error {
	ctx.SetOutput(args[0])
	return nil
}

// runWritef formats with positional placeholders: "%1" through "%9"
// substitute the corresponding argument, "%%" is a literal percent sign.
func runWritef(ctx *Context, args []types.Value) error {
	format := types.ToString(args[0])
	rest := args[1:]
	var out strings.Builder
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' || i+1 == len(format) {
			out.WriteByte(c)
			continue
		}
		i++
		switch d := format[i]; {
		case d == '%':
			out.WriteByte('%')
		case d >= '1' && d <= '9':
			if idx := int(d - '1'); idx < len(rest) {
				out.WriteString(types.ToString(rest[idx]))
			}
		default:
			out.WriteByte('%')
			out.WriteByte(d)
		}
	}
	ctx.SetOutput(out.String())
	return nil
}
