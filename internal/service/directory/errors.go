package directory

import (
	"errors"
	"fmt"
)

// Sentinel errors for the directory service layer.
var (
	ErrNotFound = errors.New("record not found")
)

// ValidationError reports a mutation input that failed an invariant.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}
