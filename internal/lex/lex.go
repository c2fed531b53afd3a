// Package lex scans the number lists shared by SVG attribute grammars:
// path data, transform lists, viewBox, points and lengths.
package lex

import (
	"github.com/tdewolff/parse/v2/strconv"
)

// Scanner walks a byte slice of comma/whitespace separated numbers.
// It never allocates and tracks the byte offset for error reporting.
type Scanner struct {
	buf []byte
	pos int
}

// NewScanner returns a scanner over s.
func NewScanner(s string) *Scanner {
	return &Scanner{buf: []byte(s)}
}

// Pos returns the current byte offset.
func (s *Scanner) Pos() int { return s.pos }

// Done reports whether only whitespace remains.
func (s *Scanner) Done() bool {
	s.SkipSpace()
	return s.pos >= len(s.buf)
}

// Peek returns the next byte without consuming it, or 0 at the end.
func (s *Scanner) Peek() byte {
	if s.pos >= len(s.buf) {
		return 0
	}
	return s.buf[s.pos]
}

// Next consumes one byte.
func (s *Scanner) Next() byte {
	c := s.Peek()
	if s.pos < len(s.buf) {
		s.pos++
	}
	return c
}

// SkipSpace skips XML whitespace.
func (s *Scanner) SkipSpace() {
	for s.pos < len(s.buf) && IsSpace(s.buf[s.pos]) {
		s.pos++
	}
}

// SkipSeparator skips whitespace and at most one comma.
func (s *Scanner) SkipSeparator() {
	s.SkipSpace()
	if s.pos < len(s.buf) && s.buf[s.pos] == ',' {
		s.pos++
		s.SkipSpace()
	}
}

// AtNumber reports whether a number starts at the current offset.
func (s *Scanner) AtNumber() bool {
	c := s.Peek()
	return IsDigit(c) || c == '.' || c == '-' || c == '+'
}

// Number parses a number at the current offset. ok is false when no number
// could be read, in which case the offset is unchanged.
func (s *Scanner) Number() (v float64, ok bool) {
	if s.pos >= len(s.buf) {
		return 0, false
	}
	v, n := strconv.ParseFloat(s.buf[s.pos:])
	if n == 0 {
		return 0, false
	}
	s.pos += n
	return v, true
}

// Flag parses a single '0' or '1' character as used by arc flags.
func (s *Scanner) Flag() (v, ok bool) {
	switch s.Peek() {
	case '0':
		s.pos++
		return false, true
	case '1':
		s.pos++
		return true, true
	}
	return false, false
}

// Rest returns the unconsumed input.
func (s *Scanner) Rest() string {
	return string(s.buf[s.pos:])
}

// Numbers parses a whole list of numbers. It stops at the first byte that
// does not start a number and reports whether the input was consumed.
func Numbers(str string) ([]float64, bool) {
	s := NewScanner(str)
	var out []float64
	s.SkipSpace()
	for s.pos < len(s.buf) {
		v, ok := s.Number()
		if !ok {
			return out, false
		}
		out = append(out, v)
		s.SkipSeparator()
	}
	return out, true
}

// IsSpace reports whether c is XML whitespace.
func IsSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// IsDigit reports whether c is an ASCII digit.
func IsDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
