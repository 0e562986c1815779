package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrParcelNotFound  = errors.New("parcel not found")
	ErrDuplicateParcel = errors.New("parcel already exists")
	ErrValidation      = errors.New("validation failed")
	ErrStore           = errors.New("parcel store failure")
)

// FieldViolation describes one rejected input field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned before any persistence attempt when the
// booking input is incomplete or malformed. It matches ErrValidation.
type ValidationError struct {
	Violations []FieldViolation
}

func NewValidationError(violations ...FieldViolation) *ValidationError {
	return &ValidationError{Violations: violations}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	if len(msgs) == 0 {
		return ErrValidation.Error()
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// StoreError wraps an underlying persistence failure. It matches ErrStore
// and unwraps to the driver error.
type StoreError struct {
	Op  string
	Err error
}

func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool {
	return target == ErrStore
}
