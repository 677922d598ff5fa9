package client

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultPollInterval is the refresh period for orders and notifications.
const DefaultPollInterval = 5 * time.Second

// loop runs tick immediately and then every interval until stopped. Stop
// cancels the in-flight request; commitErr lets tick drop results that race it.
type loop struct {
	interval time.Duration
	tick     func(ctx context.Context)

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	stopped atomic.Bool
}

func (l *loop) start(parent context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		return
	}

	interval := l.interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ctx, cancel := context.WithCancel(parent)
	l.cancel = cancel
	l.done = make(chan struct{})
	l.stopped.Store(false)

	go func(done chan struct{}) {
		defer close(done)
		t := time.NewTicker(interval)
		defer t.Stop()

		l.tick(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				l.tick(ctx)
			}
		}
	}(l.done)
}

func (l *loop) stop() {
	l.mu.Lock()
	cancel, done := l.cancel, l.done
	l.cancel, l.done = nil, nil
	l.stopped.Store(true)
	l.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// commitErr reports why a result fetched under ctx may no longer be
// committed, or nil when it may.
func (l *loop) commitErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if l.stopped.Load() {
		return ErrStopped
	}
	return nil
}
