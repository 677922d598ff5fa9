package queue

import (
	"context"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mesapos/restaurant-pos/internal/api/metrics"
	"github.com/mesapos/restaurant-pos/internal/core/domain"
	"github.com/mesapos/restaurant-pos/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes order events to a fixed set of workers by table number,
// so notifications for one table are published in the order they happened.
type Dispatcher struct {
	workers []chan domain.OrderEvent
	service ports.NotificationService
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.NotificationService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.OrderEvent, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.OrderEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers drain what is already queued
// and stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() { d.wg.Wait() }

// Enqueue hands ev to the worker owning its table. It never blocks the
// caller: when that worker's buffer is full the event is dropped and logged.
func (d *Dispatcher) Enqueue(ev domain.OrderEvent) {
	idx := d.shardIndex(ev.TableNumber)
	select {
	case d.workers[idx] <- ev:
		metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.NotificationsDroppedTotal.Inc()
		d.log.Warn().
			Str("order_id", ev.OrderID).
			Int("table", ev.TableNumber).
			Int("worker_id", idx).
			Msg("notification queue full, event dropped")
	}
}

// shardIndex maps a table number deterministically to a worker index.
func (d *Dispatcher) shardIndex(tableNumber int) int {
	if tableNumber < 0 {
		tableNumber = -tableNumber
	}
	return tableNumber % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.OrderEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			d.drain(id, label, ch)
			return
		case ev := <-ch:
			d.process(ctx, id, label, ev)
		}
	}
}

// drain publishes whatever is still buffered using a fresh context, so a
// shutdown does not lose events that were accepted.
func (d *Dispatcher) drain(id int, label string, ch <-chan domain.OrderEvent) {
	for {
		select {
		case ev := <-ch:
			d.process(context.Background(), id, label, ev)
		default:
			return
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, id int, label string, ev domain.OrderEvent) {
	metrics.NotificationQueueDepth.WithLabelValues(label).Dec()
	if err := d.service.Process(ctx, ev); err != nil {
		metrics.NotificationsPublishedTotal.WithLabelValues("error").Inc()
		d.log.Error().Err(err).
			Str("order_id", ev.OrderID).
			Int("worker_id", id).
			Msg("notification publish failed")
		return
	}
	metrics.NotificationsPublishedTotal.WithLabelValues(string(ev.Kind)).Inc()
}
