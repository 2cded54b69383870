package repository

import "errors"

// ErrUnknownFailure stands in for a Failure constructed without a cause.
var ErrUnknownFailure = errors.New("unknown failure")

// Result is the outcome of a repository operation: exactly one of value or error.
type Result[T any] struct {
	value T
	err   error
}

// Success wraps a value.
func Success[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Failure wraps an error. A nil err becomes ErrUnknownFailure.
func Failure[T any](err error) Result[T] {
	if err == nil {
		err = ErrUnknownFailure
	}
	return Result[T]{err: err}
}

// OK reports whether the result is a success.
func (r Result[T]) OK() bool {
	return r.err == nil
}

// Value returns the wrapped value, the zero value on failure.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the failure cause, nil on success.
func (r Result[T]) Err() error {
	return r.err
}

// Unwrap returns value and error in the usual Go shape.
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.err
}
