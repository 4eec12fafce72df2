package input

import (
	"errors"
	"fmt"
)

// ErrMalformed is matched by every MalformedError.
var ErrMalformed = errors.New("malformed record")

// MalformedError describes a record that does not fit the expected shape.
type MalformedError struct {
	Line   int // 1-based; 0 when unknown
	Text   string
	Reason string
}

func (e *MalformedError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s (%q)", e.Line, ErrMalformed, e.Reason, e.Text)
	}
	return fmt.Sprintf("%s: %s", ErrMalformed, e.Reason)
}

func (e *MalformedError) Is(target error) bool { return target == ErrMalformed }
