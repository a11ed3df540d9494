package timespec

import (
	"errors"
	"fmt"
)

// ErrSyntax is matched by every ParseError via errors.Is.
var ErrSyntax = errors.New("time spec syntax error")

// ParseError reports malformed ISO-8601 content.
type ParseError struct {
	Input string // the offending fragment
	Msg   string
}

func (e *ParseError) Error() string {
	if e.Input == "" {
		return "invalid time spec: " + e.Msg
	}
	return fmt.Sprintf("invalid time spec %q: %s", e.Input, e.Msg)
}

// Is reports ErrSyntax as the error class.
func (e *ParseError) Is(target error) bool {
	return target == ErrSyntax
}

func parseErrorf(input, format string, args ...interface{}) *ParseError {
	return &ParseError{Input: input, Msg: fmt.Sprintf(format, args...)}
}
