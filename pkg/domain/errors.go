package domain

import "errors"

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
	// ErrInvalidArgs is returned when an operation receives arguments it cannot act on
	ErrInvalidArgs = errors.New("invalid arguments")
)

// Aggregate specific errors. Each wraps the generic one it refines so callers
// can match on either.
var (
	ErrCustomerNotFound    = wrap(ErrNotFound, "customer not found")
	ErrAccountNotFound     = wrap(ErrNotFound, "account not found")
	ErrInsufficientBalance = wrap(ErrValidation, "insufficient balance")
	// ErrIntegration is returned when a call to another service fails or
	// answers with a non-success code.
	ErrIntegration = errors.New("rest client error")
)

type refinedError struct {
	parent error
	msg    string
}

func (e *refinedError) Error() string { return e.msg }
func (e *refinedError) Unwrap() error { return e.parent }

func wrap(parent error, msg string) error {
	return &refinedError{parent: parent, msg: msg}
}
