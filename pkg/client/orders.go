package client

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// OrderSource fetches the active order list.
type OrderSource interface {
	ActiveOrders(ctx context.Context) ([]Order, error)
}

// OrderSnapshot is the watcher's cached view after the last successful poll.
type OrderSnapshot struct {
	Orders    []Order
	Pending   int
	Badge     int
	FetchedAt time.Time
}

// OrderWatcher keeps a cached order list and new-order badge fresh by
// polling. A failed poll leaves the previous snapshot in place and is not
// retried before the next tick.
type OrderWatcher struct {
	source   OrderSource
	tracker  BadgeTracker
	log      zerolog.Logger
	onUpdate func(OrderSnapshot)

	loop loop

	mu   sync.RWMutex
	snap OrderSnapshot
}

// NewOrderWatcher polls source every interval (DefaultPollInterval when
// zero). onUpdate, if set, runs after every committed poll and acknowledgement.
// It must not call Stop.
func NewOrderWatcher(source OrderSource, interval time.Duration, onUpdate func(OrderSnapshot), log zerolog.Logger) *OrderWatcher {
	w := &OrderWatcher{source: source, log: log, onUpdate: onUpdate}
	w.loop = loop{interval: interval, tick: func(ctx context.Context) { _ = w.Refresh(ctx) }}
	return w
}

func (w *OrderWatcher) Start(ctx context.Context) { w.loop.start(ctx) }

// Stop halts polling and cancels any request in flight. Responses that
// arrive afterwards are discarded.
func (w *OrderWatcher) Stop() { w.loop.stop() }

// Refresh polls once and commits the result unless the watcher was stopped
// meanwhile.
func (w *OrderWatcher) Refresh(ctx context.Context) error {
	orders, err := w.source.ActiveOrders(ctx)
	if err != nil {
		w.log.Debug().Err(err).Msg("order poll failed")
		return err
	}
	if err := w.loop.commitErr(ctx); err != nil {
		return err
	}

	pending := CountPending(orders)
	badge := w.tracker.Observe(pending)

	w.mu.Lock()
	w.snap = OrderSnapshot{Orders: orders, Pending: pending, Badge: badge, FetchedAt: time.Now()}
	snap := w.snap
	w.mu.Unlock()

	w.notify(snap)
	return nil
}

// Acknowledge marks the order list as viewed.
func (w *OrderWatcher) Acknowledge() {
	badge := w.tracker.Acknowledge()

	w.mu.Lock()
	w.snap.Badge = badge
	snap := w.snap
	w.mu.Unlock()

	w.notify(snap)
}

// Snapshot returns the last committed state.
func (w *OrderWatcher) Snapshot() OrderSnapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.snap
}

func (w *OrderWatcher) notify(snap OrderSnapshot) {
	if w.onUpdate != nil {
		w.onUpdate(snap)
	}
}
