package bliks

import (
	"errors"
	"fmt"
	"strings"

	"bliks/types"
)

// windowWidth is the widest source excerpt FormatError will quote; the
// quoted line is windowed around the caret beyond that.
const windowWidth = 60

// FormatError renders a positioned error as a human-readable diagnostic:
// a "name:line:column: message" header followed by the offending source
// line and a caret under the offending character. Errors without a
// position format as "name: message".
func FormatError(err error, source, name string) string {
	var be *types.Error
	if !errors.As(err, &be) {
		return fmt.Sprintf("%s: %s", name, err)
	}

	pos := be.Pos
	if pos < 1 {
		pos = 1
	}
	if pos > len(source)+1 {
		pos = len(source) + 1
	}

	start := strings.LastIndexByte(source[:pos-1], '\n') + 1
	end := strings.IndexByte(source[start:], '\n')
	if end < 0 {
		end = len(source)
	} else {
		end += start
	}
	line := strings.TrimRight(source[start:end], "\r")
	lineNo := strings.Count(source[:start], "\n") + 1

	// Column counts from the line's first non-blank character.
	trimmed := strings.TrimLeft(line, " \t")
	col := pos - 1 - start - (len(line) - len(trimmed))
	if col < 0 {
		col = 0
	}
	if col > len(trimmed) {
		col = len(trimmed)
	}

	display, caret := window(trimmed, col)
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:%d:%d: %s\n", name, lineNo, col+1, be.Message)
	fmt.Fprintf(&sb, "  %s\n", display)
	fmt.Fprintf(&sb, "  %s^", caretIndent(display, caret))
	return sb.String()
}

// window narrows a long line to a fixed-width excerpt centered on the
// caret, marking cut ends with an ellipsis.
func window(line string, col int) (string, int) {
	if len(line) <= windowWidth {
		return line, col
	}
	lo := col - windowWidth/2
	if lo < 0 {
		lo = 0
	}
	hi := lo + windowWidth
	if hi > len(line) {
		hi = len(line)
		lo = hi - windowWidth
	}
	out := line[lo:hi]
	c := col - lo
	if lo > 0 {
		out = "..." + out
		c += 3
	}
	if hi < len(line) {
		out += "..."
	}
	return out, c
}

// caretIndent builds the whitespace run under the quoted line,
// preserving tabs so the caret lines up in a terminal.
func caretIndent(display string, col int) string {
	indent := make([]byte, 0, col)
	for i := 0; i < col && i < len(display); i++ {
		if display[i] == '\t' {
			indent = append(indent, '\t')
		} else {
			indent = append(indent, ' ')
		}
	}
	return string(indent)
}
