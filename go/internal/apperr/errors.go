// Package apperr defines the error kinds surfaced by the draft core.
package apperr

import (
	"errors"
	"fmt"
)

// ValidationError is a rejected, user-correctable input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// NotFoundError reports an unresolved session token or share code.
type NotFoundError struct {
	Resource string
	Key      string
	// Message replaces the default text when set.
	Message string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// StateError reports an operation that is invalid for the current session state.
type StateError struct {
	Reason string
}

func (e *StateError) Error() string { return e.Reason }

// ExhaustionError is returned when share code generation runs out of attempts.
type ExhaustionError struct {
	Attempts int
}

func (e *ExhaustionError) Error() string {
	return fmt.Sprintf("could not generate a unique share code after %d attempts", e.Attempts)
}

// CapacityError is returned when more teams are requested than the pool holds.
type CapacityError struct {
	Requested int
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("cannot draw %d teams from %d", e.Requested, e.Available)
}

func Validation(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func NotFound(resource, key string) error {
	return &NotFoundError{Resource: resource, Key: key}
}

func State(format string, args ...any) error {
	return &StateError{Reason: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsState(err error) bool {
	var target *StateError
	return errors.As(err, &target)
}

func IsExhaustion(err error) bool {
	var target *ExhaustionError
	return errors.As(err, &target)
}

func IsCapacity(err error) bool {
	var target *CapacityError
	return errors.As(err, &target)
}
