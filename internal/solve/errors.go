package solve

import (
	"errors"
	"strings"
)

// ErrUnsolvable is matched by every UnsolvableError.
var ErrUnsolvable = errors.New("unsolvable system")

// UnsolvableError reports normal equations that cannot be inverted. Files
// lists the under-constrained files when they could be determined.
type UnsolvableError struct {
	Files []string
	Err   error
}

func (e *UnsolvableError) Error() string {
	var b strings.Builder
	b.WriteString(ErrUnsolvable.Error())
	if len(e.Files) > 0 {
		b.WriteString(": insufficient correlation for ")
		b.WriteString(strings.Join(e.Files, ", "))
	} else {
		b.WriteString(": normal equations are singular")
	}
	if e.Err != nil {
		b.WriteString(" (")
		b.WriteString(e.Err.Error())
		b.WriteString(")")
	}
	return b.String()
}

func (e *UnsolvableError) Unwrap() error { return e.Err }

func (e *UnsolvableError) Is(target error) bool { return target == ErrUnsolvable }
