package methodology

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMode is returned when a scoring mode other than discovery or precise is requested
	ErrInvalidMode = errors.New("invalid matching mode")

	// ErrInvalidCatalog is returned when catalog records fail validation
	ErrInvalidCatalog = errors.New("invalid methodology catalog")

	// ErrUnknownStandard is returned when a standard name cannot be resolved
	ErrUnknownStandard = errors.New("unknown standard")
)

// UnknownStandardError carries the unresolved standard name
type UnknownStandardError struct {
	Value string
}

func (e *UnknownStandardError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownStandard, e.Value)
}

func (e *UnknownStandardError) Unwrap() error {
	return ErrUnknownStandard
}
