package core

import (
	"errors"
	"fmt"
)

// ErrEmptyTheme is returned when the theme is blank.
var ErrEmptyTheme = errors.New("theme cannot be empty")

// InvalidRangeError reports a requested day count outside [MinDays, MaxDays].
type InvalidRangeError struct {
	Days int
	Min  int
	Max  int
}

// NewInvalidRangeError builds an InvalidRangeError with the package bounds.
func NewInvalidRangeError(days int) *InvalidRangeError {
	return &InvalidRangeError{Days: days, Min: MinDays, Max: MaxDays}
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("days must be between %d and %d, got %d", e.Min, e.Max, e.Days)
}

// ProviderError wraps a failed call to a text-completion provider.
// The enhancer never returns it as a hard error; it is reported as a warning.
type ProviderError struct {
	Provider string
	Day      int
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Day > 0 {
		return fmt.Sprintf("provider %s failed for day %d: %v", e.Provider, e.Day, e.Err)
	}
	return fmt.Sprintf("provider %s failed: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// IOError reports a failure to read or write an exported plan.
type IOError struct {
	Op   string // "create", "write", "read"...
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
