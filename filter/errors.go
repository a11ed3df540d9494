package filter

import (
	"errors"
	"fmt"
)

// ErrSyntax is matched by every ParseError via errors.Is.
var ErrSyntax = errors.New("filter syntax error")

// ParseError reports a malformed filter expression.
// Pos is the byte offset in Input where the problem was detected.
type ParseError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at position %d: %s", e.Pos, e.Msg)
}

// Is reports ErrSyntax as the error class.
func (e *ParseError) Is(target error) bool {
	return target == ErrSyntax
}

func newParseError(input string, pos int, format string, args ...interface{}) *ParseError {
	return &ParseError{Input: input, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
