package trajectory

import (
	"errors"
	"fmt"
)

// Domain errors for run construction. Numeric instability during a run
// is never an error; it is recorded on the snapshots themselves.
var (
	// ErrNegativeSteps indicates a requested step count below zero.
	ErrNegativeSteps = errors.New("trajectory: step count must be non-negative")
)

// ConfigError wraps a construction-time validation failure with the
// field that caused it.
type ConfigError struct {
	Field   string
	Wrapped error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("trajectory: invalid config field %q: %v", e.Field, e.Wrapped)
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}
