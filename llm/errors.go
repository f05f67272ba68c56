package llm

import (
	"errors"
)

// Error classification for oracle requests. Transport hiccups and rate
// limits retry; auth and malformed-request failures abort the conversion.

// TransientError is a temporary failure that may succeed on retry.
type TransientError struct {
	err error
}

func (e *TransientError) Error() string {
	return e.err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.err
}

// NewTransientError marks an error as retryable.
func NewTransientError(err error) error {
	return &TransientError{err: err}
}

// FatalError is a permanent failure that retrying cannot fix.
type FatalError struct {
	err error
}

func (e *FatalError) Error() string {
	return e.err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.err
}

// NewFatalError marks an error as non-retryable.
func NewFatalError(err error) error {
	return &FatalError{err: err}
}

// IsTransient reports whether err should be retried.
func IsTransient(err error) bool {
	var transient *TransientError
	return errors.As(err, &transient)
}

// IsFatal reports whether err should abort the request.
func IsFatal(err error) bool {
	var fatal *FatalError
	return errors.As(err, &fatal)
}
