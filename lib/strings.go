package lib

import (
	"strings"
	"unicode/utf8"

	"bliks/types"
)

// The string family. Positions and lengths count runes, not bytes, so
// multi-byte input behaves the way a script author expects.

func runConcat(ctx *Context, args []types.Value) error {
	var out strings.Builder
	for _, v := range args[1:] {
		out.WriteString(types.ToString(v))
	}
	return ctx.Store(args[0].(float64), out.String())
}

func runUpper(ctx *Context, args []types.Value) error {
	return ctx.Store(args[0].(float64), strings.ToUpper(types.ToString(args[1])))
}

func runLower(ctx *Context, args []types.Value) error {
	return ctx.Store(args[0].(float64), strings.ToLower(types.ToString(args[1])))
}

func runLen(ctx *Context, args []types.Value) error {
	n := utf8.RuneCountInString(types.ToString(args[1]))
	return ctx.Store(args[0].(float64), float64(n))
}

func runTrim(ctx *Context, args []types.Value) error {
	return ctx.Store(args[0].(float64), strings.TrimSpace(types.ToString(args[1])))
}

func runReplace(ctx *Context, args []types.Value) error {
	s := types.ToString(args[1])
	old := types.ToString(args[2])
	repl := types.ToString(args[3])
	return ctx.Store(args[0].(float64), strings.ReplaceAll(s, old, repl))
}

// runSlice stores the 1-based inclusive rune range [from, to] of the
// string, clamped to its bounds; an inverted range yields the empty
// string.
func runSlice(ctx *Context, args []types.Value) error {
	runes := []rune(types.ToString(args[1]))
	from := int(args[2].(float64))
	to := int(args[3].(float64))
	if from < 1 {
		from = 1
	}
	if to > len(runes) {
		to = len(runes)
	}
	if from > to {
		return ctx.Store(args[0].(float64), "")
	}
	return ctx.Store(args[0].(float64), string(runes[from-1:to]))
}

// runFind stores the 1-based rune position of the first occurrence of
// the needle, or 0 when absent.
func runFind(ctx *Context, args []types.Value) error {
	s := types.ToString(args[1])
	needle := types.ToString(args[2])
	idx := strings.Index(s, needle)
	if idx < 0 {
		return ctx.Store(args[0].(float64), float64(0))
	}
	return ctx.Store(args[0].(float64), float64(utf8.RuneCountInString(s[:idx])+1))
}
