package chrono

import (
	"context"
	"time"
)

// TimeAPI is the interface that anything depending on the system clock should use.
type TimeAPI interface {
	Now() time.Time
}

// SleepAPI is the interface that anything that needs to block for a duration should use.
//
// note: fault injection point
type SleepAPI interface {
	// Sleep blocks for d, it returns early with ctx.Err() if ctx is done first.
	Sleep(ctx context.Context, d time.Duration) error
}

// StandardImpl is the standard implementation of TimeAPI and SleepAPI using the standard library.
type StandardImpl struct{}

func NewStandardImpl() StandardImpl {
	return StandardImpl{}
}

func (StandardImpl) Now() time.Time {
	return time.Now()
}

func (StandardImpl) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
