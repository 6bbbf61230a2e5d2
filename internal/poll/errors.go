package poll

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches every rejected vote target.
	ErrNotFound       = errors.New("not found")
	ErrPollNotFound   = fmt.Errorf("poll %w", ErrNotFound)
	ErrOptionNotFound = fmt.Errorf("option %w", ErrNotFound)
)

// ValidationError rejects user input. Msg is meant to be shown as is.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
