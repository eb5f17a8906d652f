package batchdata

import (
	"fmt"
	"strings"
)

// ValidationError is returned for a lookup that was never sent because its
// input is invalid, it is never retried.
type ValidationError struct {
	// Index is the offending address, -1 if the list itself is the problem.
	Index   int
	Missing []string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return "lookup requires at least one address"
	}
	return fmt.Sprintf("address %d is missing %s", e.Index, strings.Join(e.Missing, ", "))
}

// StatusError is a non-2xx response.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %s: %s", e.Status, e.Body)
}

// LookupExhaustedError is returned when every attempt of a lookup failed, Err
// is the failure of the last attempt.
type LookupExhaustedError struct {
	Attempts int
	Err      error
}

func (e *LookupExhaustedError) Error() string {
	return fmt.Sprintf("lookup failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *LookupExhaustedError) Unwrap() error {
	return e.Err
}
