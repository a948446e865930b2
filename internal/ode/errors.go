package ode

import (
	"errors"
	"fmt"
)

// Domain errors for integration runs.
var (
	// ErrNonPositiveStep indicates dt <= 0 or a NaN step size.
	ErrNonPositiveStep = errors.New("ode: step size must be positive")

	// ErrNegativeSteps indicates a negative step count.
	ErrNegativeSteps = errors.New("ode: step count must be non-negative")

	// ErrDimensionMismatch indicates mismatched state/system dimensions.
	ErrDimensionMismatch = errors.New("ode: dimension mismatch between state and system")

	// ErrNilSystem indicates a driver built without a system or integrator.
	ErrNilSystem = errors.New("ode: system and integrator must be non-nil")
)

// ConfigError reports an invalid run configuration, detected before the
// first step is taken.
type ConfigError struct {
	Field   string
	Wrapped error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config (%s): %v", e.Field, e.Wrapped)
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}

// StepError wraps an error raised during tendency evaluation with the
// step at which it occurred. The underlying error, typically from a
// user-supplied closure, is preserved for errors.Is/As.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
