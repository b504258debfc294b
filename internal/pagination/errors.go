package pagination

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks a caller mistake such as a non-positive page size.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidSource marks a source that broke its own contract (e.g. a negative count).
	ErrInvalidSource = errors.New("invalid pagination source")
)

// ArgumentError names the offending parameter and unwraps to ErrInvalidArgument.
type ArgumentError struct {
	Field string
	Value int
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s must be > 0, got %d", ErrInvalidArgument, e.Field, e.Value)
}

func (e *ArgumentError) Unwrap() error { return ErrInvalidArgument }
