package judiciary

import (
	"context"
	"time"
)

type FormInput struct {
	Id    string
	Value string
}

// RenderRequest is a single page load. Inputs are typed into their elements
// in order, then SubmitId (if set) is clicked, then the session waits up to
// Timeout for WaitForId (if set) to be present.
type RenderRequest struct {
	Url      string
	Inputs   []FormInput
	SubmitId string

	WaitForId string
	// WaitOptional makes the session return the current markup instead of
	// ErrWaitTimeout when WaitForId never shows up.
	WaitOptional bool
	Timeout      time.Duration
}

// Session is a single browsing session, it holds navigation state so it
// must not be used concurrently.
//
// Render returns the full markup of the page after the request is done.
// Errors wrap ErrElementMissing when an input or the submit button cannot be
// found and ErrWaitTimeout when the page or WaitForId takes too long.
type Session interface {
	Render(ctx context.Context, req RenderRequest) (string, error)
	Close() error
}

// Renderer hands out sessions, every acquired session must be closed.
//
// note: fault injection point
type Renderer interface {
	Acquire(ctx context.Context) (Session, error)
}
