package service

import (
	"time"

	"github.com/google/uuid"
)

type options struct {
	latency  time.Duration
	now      func() time.Time
	newID    func() string
	observer UseCaseObserver
	coord    *Coordinator
}

// Option tunes a service constructor.
type Option func(*options)

// WithLatency delays every mutation after its project lock is taken and
// before the store is read.
func WithLatency(d time.Duration) Option {
	return func(o *options) { o.latency = d }
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

func WithObserver(obs UseCaseObserver) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithCoordinator shares write locks and read flights between services that
// work on the same collections. Services built without one each get their
// own.
func WithCoordinator(c *Coordinator) Option {
	return func(o *options) {
		if c != nil {
			o.coord = c
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		now:      func() time.Time { return time.Now().UTC() },
		newID:    func() string { return uuid.New().String() },
		observer: NoopUseCaseObserver{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.coord == nil {
		o.coord = NewCoordinator()
	}
	return o
}
