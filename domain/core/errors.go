package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Scenario validation errors. Every pre-sampling rejection wraps
	// ErrInvalidScenario and names the offending field.
	ErrInvalidScenario = errors.New("invalid scenario")

	// Sampling errors
	ErrDimensionLimit = errors.New("sobol dimension limit exceeded")
	ErrEmptySampleSet = errors.New("sample set is empty")

	// Loader errors
	ErrMissingControl = errors.New("missing control column")
	ErrEmptyBatch     = errors.New("batch input contains no rows")
)

// NewScenarioError reports a scenario field that failed validation.
func NewScenarioError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidScenario, field, reason)
}

// NewMissingControlError reports a batch row lacking the columns for a
// control index.
func NewMissingControlError(row, control int) error {
	return fmt.Errorf("%w: row %d control %d", ErrMissingControl, row, control)
}

// Error checking helpers
func IsScenarioError(err error) bool {
	return errors.Is(err, ErrInvalidScenario)
}

func IsMissingControlError(err error) bool {
	return errors.Is(err, ErrMissingControl)
}
