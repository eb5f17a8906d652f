package judiciary

import (
	"errors"
	"fmt"
)

var (
	// ErrSearchControlsMissing means the search page no longer has the town
	// input or the submit button, the page layout has most likely changed.
	ErrSearchControlsMissing = errors.New("search controls missing")
	// ErrWaitTimeout is returned by a Session when a page or element did not
	// show up within the request's timeout.
	ErrWaitTimeout = errors.New("wait timed out")
	// ErrElementMissing is returned by a Session when an element it had to
	// interact with could not be found.
	ErrElementMissing = errors.New("element missing")
)

type FailureReason string

const (
	FAILURE_TIMEOUT FailureReason = "TIMEOUT"
	FAILURE_RENDER  FailureReason = "RENDER"
)

// DetailFetchFailure is returned when the detail page of a case could not be loaded.
type DetailFetchFailure struct {
	Docket string
	Reason FailureReason
	Err    error
}

func (e *DetailFetchFailure) Error() string {
	return fmt.Sprintf("fetch detail %s: %s: %v", e.Docket, e.Reason, e.Err)
}

func (e *DetailFetchFailure) Unwrap() error {
	return e.Err
}

// RunError is a failure that ended a run, State is the state the run was in.
type RunError struct {
	State State
	Err   error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("scrape run failed in %s: %v", e.State, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}
