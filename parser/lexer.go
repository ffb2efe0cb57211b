package parser

import (
	"bliks/types"
)

// Line is one parsed instruction: a head token followed by its argument
// tokens, in source order.
type Line struct {
	Tokens []types.Token
}

// Lexer scans Bliks source byte by byte. Instructions are separated by
// newlines, ';' and ':'; comments run from '#' to end of line. All
// reported positions are 1-based byte offsets.
type Lexer struct {
	input string
	pos   int // byte index of the current character
}

// Parse tokenizes source into instruction lines. It stops at the first
// lexical error and returns it with the offending byte position.
func Parse(source string) ([]Line, error) {
	l := &Lexer{input: source}
	var lines []Line
	var cur []types.Token
	flush := func() {
		if len(cur) > 0 {
			lines = append(lines, Line{Tokens: cur})
			cur = nil
		}
	}
	for {
		l.skipBlank()
		if l.eof() {
			flush()
			return lines, nil
		}
		switch ch := l.ch(); {
		case ch == '#':
			l.skipComment()
		case isSeparator(ch):
			l.pos++
			flush()
		default:
			tok, err := l.next()
			if err != nil {
				return nil, err
			}
			cur = append(cur, tok)
		}
	}
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) ch() byte {
	return l.input[l.pos]
}

// here returns the 1-based offset of the current character.
func (l *Lexer) here() int {
	return l.pos + 1
}

func (l *Lexer) skipBlank() {
	for !l.eof() {
		if c := l.ch(); c == ' ' || c == '\t' || c == '\r' {
			l.pos++
			continue
		}
		return
	}
}

func (l *Lexer) skipComment() {
	for !l.eof() && l.ch() != '\n' {
		l.pos++
	}
}

// next scans one token. The caller has already ruled out separators,
// blanks, comments and end of input.
func (l *Lexer) next() (types.Token, error) {
	switch ch := l.ch(); {
	case ch == '"':
		return l.readString()
	case ch == '@':
		return l.readRetrieval()
	case ch == '<':
		return l.readBackRetrieval()
	case ch == '+' || ch == '-' || isDigit(ch):
		return l.readNumber()
	default:
		return l.readName()
	}
}

func (l *Lexer) readRetrieval() (types.Token, error) {
	start := l.here()
	depth := 0
	for !l.eof() && l.ch() == '@' {
		depth++
		l.pos++
	}
	if l.eof() || isBreak(l.ch()) {
		return types.Token{}, types.Errorf(start, "empty retrieval")
	}
	var inner types.Token
	var err error
	switch ch := l.ch(); {
	case ch == '<':
		return types.Token{}, types.Errorf(l.here(), "a back retrieval cannot be the target of a retrieval")
	case ch == '"':
		inner, err = l.readString()
	case ch == '+' || ch == '-' || isDigit(ch):
		inner, err = l.readNumber()
	default:
		inner, err = l.readName()
	}
	if err != nil {
		return types.Token{}, err
	}
	return types.Token{Type: types.TokenRetrieval, Inner: &inner, Depth: depth, Pos: start}, nil
}

func (l *Lexer) readBackRetrieval() (types.Token, error) {
	start := l.here()
	l.pos++
	if !l.eof() && !isBreak(l.ch()) {
		return types.Token{}, types.Errorf(l.here(), "unexpected character %q after a back retrieval", l.ch())
	}
	return types.Token{Type: types.TokenBackRetrieval, Pos: start}, nil
}

func (l *Lexer) readNumber() (types.Token, error) {
	start := l.pos
	malformed := func() error {
		return types.Errorf(start+1, "malformed number '%s'", l.tokenRun(start))
	}
	if c := l.ch(); c == '+' || c == '-' {
		l.pos++
	}
	if !l.digits() {
		return types.Token{}, malformed()
	}
	if !l.eof() && l.ch() == '.' {
		l.pos++
		if !l.digits() {
			return types.Token{}, malformed()
		}
	}
	if !l.eof() && (l.ch() == 'e' || l.ch() == 'E') {
		l.pos++
		if !l.eof() && (l.ch() == '+' || l.ch() == '-') {
			l.pos++
		}
		if !l.digits() {
			return types.Token{}, malformed()
		}
	}
	if !l.eof() && !isBreak(l.ch()) {
		if l.ch() == '"' {
			return types.Token{}, types.Errorf(l.here(), "a string cannot start in the middle of a token")
		}
		return types.Token{}, malformed()
	}
	return types.Token{Type: types.TokenLiteral, Value: l.input[start:l.pos], Pos: start + 1}, nil
}

// digits consumes a run of decimal digits and reports whether at least
// one was present.
func (l *Lexer) digits() bool {
	seen := false
	for !l.eof() && isDigit(l.ch()) {
		seen = true
		l.pos++
	}
	return seen
}

func (l *Lexer) readName() (types.Token, error) {
	start := l.pos
	for !l.eof() && !isBreak(l.ch()) {
		c := l.ch()
		if isNameChar(c) {
			l.pos++
			continue
		}
		if c == '"' {
			return types.Token{}, types.Errorf(l.here(), "a string cannot start in the middle of a token")
		}
		return types.Token{}, types.Errorf(l.here(), "name '%s' contains an illegal character %q", l.tokenRun(start), c)
	}
	return types.Token{Type: types.TokenName, Value: l.input[start:l.pos], Pos: start + 1}, nil
}

// tokenRun returns the raw text from start up to the next token break,
// for use in diagnostics.
func (l *Lexer) tokenRun(start int) string {
	end := start
	for end < len(l.input) && !isBreak(l.input[end]) {
		end++
	}
	return l.input[start:end]
}

func isSeparator(c byte) bool {
	return c == '\n' || c == ';' || c == ':'
}

func isBreak(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '#' || isSeparator(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNameChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '_', '.', '!', '&', '%', '>', '=':
		return true
	}
	return false
}
