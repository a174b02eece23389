package helpers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"blood-connect/internal/domain"
)

// Runtime bundles the collaborators every workflow needs besides its
// repositories: a logger, a clock and the simulated store latency.
type Runtime struct {
	Logger  *zap.Logger
	Now     domain.Clock
	Latency time.Duration
}

func NewRuntime(logger *zap.Logger, now domain.Clock, latency time.Duration) Runtime {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return Runtime{Logger: logger, Now: now, Latency: latency}
}

// Today is the current calendar day at midnight UTC.
func (r Runtime) Today() time.Time {
	return domain.DateOf(r.clock()())
}

func (r Runtime) Timestamp() time.Time {
	return r.clock()().UTC()
}

// Delay waits out the simulated latency. It returns early with ctx's error
// if the context ends first.
func (r Runtime) Delay(ctx context.Context) error {
	if r.Latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(r.Latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (r Runtime) Log() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

func (r Runtime) clock() domain.Clock {
	if r.Now == nil {
		return time.Now
	}
	return r.Now
}

func NewID() string {
	return uuid.NewString()
}
