package types

import "fmt"

// Error is a diagnostic carrying a 1-based byte offset into the source
// it was produced from. Every parse, resolve and runtime failure is
// reported this way; the host decides how to render it (see
// bliks.FormatError).
type Error struct {
	Message string
	Pos     int
}

func (e *Error) Error() string {
	return e.Message
}

// Errorf builds a positioned error.
func Errorf(pos int, format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Pos: pos}
}
