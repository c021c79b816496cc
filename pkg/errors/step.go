// Package errors carries context for failures at the edges of the library:
// scenario steps run by the CLI and the test harness. Behaviors themselves
// never return errors.
package errors

import (
	"fmt"
	"time"
)

// StepError wraps a failure with the scenario step that produced it.
type StepError struct {
	Scenario   string         // Scenario name
	Step       int            // Zero-based step index
	Action     string         // Step action, e.g. "key" or "expect"
	Timestamp  time.Time      // When the step failed
	Attributes map[string]any // Additional context (optional)
	Cause      error          // Underlying error
}

// NewStepError wraps cause. It returns nil when cause is nil.
//
// Example:
//
//	if err := driver.Do(step); err != nil {
//	    return NewStepError(sc.Name, i, step.Action, err)
//	}
func NewStepError(scenario string, step int, action string, cause error) *StepError {
	if cause == nil {
		return nil
	}
	return &StepError{
		Scenario:  scenario,
		Step:      step,
		Action:    action,
		Timestamp: time.Now(),
		Cause:     cause,
	}
}

// NewStepErrorWithAttrs is NewStepError with additional attributes.
func NewStepErrorWithAttrs(scenario string, step int, action string, cause error, attrs map[string]any) *StepError {
	e := NewStepError(scenario, step, action, cause)
	if e != nil {
		e.Attributes = attrs
	}
	return e
}

// Error implements the error interface.
//
// Format: "[timestamp] action: scenario={name} step={n}: {cause}"
// An empty action is omitted.
func (e *StepError) Error() string {
	if e == nil {
		return "<nil StepError>"
	}
	timestamp := e.Timestamp.Format(time.RFC3339)
	if e.Action == "" {
		return fmt.Sprintf("[%s] scenario=%s step=%d: %v", timestamp, e.Scenario, e.Step, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: scenario=%s step=%d: %v", timestamp, e.Action, e.Scenario, e.Step, e.Cause)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *StepError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}
