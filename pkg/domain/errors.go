package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMachine is returned when tapes, heads and rules disagree at construction.
var ErrInvalidMachine = errors.New("invalid machine")

// ErrInvalidRuleSet is returned when a rule set cannot be encoded.
var ErrInvalidRuleSet = errors.New("invalid rule set")

// ErrInvalidDefinition is returned when a machine document cannot be compiled.
var ErrInvalidDefinition = errors.New("invalid definition")

// ErrInvalidBudget is returned when a run is requested with a non-positive step budget.
var ErrInvalidBudget = errors.New("step budget must be positive")

// ErrMachineSpent is returned when Run is called on a machine that already ran.
var ErrMachineSpent = errors.New("machine already ran")

// ErrRunNotFound is returned when a run ID cannot be found in the store.
var ErrRunNotFound = errors.New("run not found")

// ValidationError represents a single configuration failure.
type ValidationError struct {
	Key    string // Offending element, e.g. "rules[2].actions"
	Reason string // Human-readable reason for failure
	Value  any    // The value that failed validation
	Kind   error  // Sentinel the failure belongs to
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%s: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("%s: %s (got %v)", e.Key, e.Reason, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}

// Aggregate returns nil for no errors and an *AggregateError otherwise.
func Aggregate(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return &AggregateError{Errors: errs}
}
