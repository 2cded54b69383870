package mealdb

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork covers connection failures, timeouts and non-success statuses.
	ErrNetwork = errors.New("network error")
	// ErrDecode covers response bodies that are not the expected JSON shape.
	ErrDecode = errors.New("decode error")
)

// StatusError records a non-2xx response. It is always wrapped together with ErrNetwork.
type StatusError struct {
	Endpoint   Endpoint
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned %d", e.Endpoint, e.StatusCode)
}
