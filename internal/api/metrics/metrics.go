// Package metrics defines and registers the custom Prometheus metrics of the
// restaurant POS API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry on
// package init through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pos"

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts order submissions.
// Label:
//   - result: "created" or "replayed" (matched an Idempotency-Key)
var OrdersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of order submissions, by result.",
	},
	[]string{"result"},
)

// OrderStatusTransitionsTotal counts successful kitchen status changes.
// Label:
//   - to: the status the order moved into (e.g. "ready")
var OrderStatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_status_transitions_total",
		Help:      "Total number of order status transitions, by target status.",
	},
	[]string{"to"},
)

// OrderValue observes order totals in the restaurant currency.
var OrderValue = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "order_value",
		Help:      "Distribution of order totals.",
		Buckets:   []float64{5, 10, 20, 35, 50, 75, 100, 150, 250},
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsPublishedTotal counts order events turned into notifications.
// Label:
//   - kind: order event kind ("created", "status_changed") or "error"
var NotificationsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_published_total",
		Help:      "Total number of notifications published to the stream.",
	},
	[]string{"kind"},
)

// NotificationsDroppedTotal counts events dropped because a worker queue was full.
var NotificationsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dropped_total",
		Help:      "Total number of order events dropped by the dispatcher.",
	},
)

// NotificationQueueDepth tracks events waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of order events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// NotificationsCorruptTotal counts stream entries skipped because their
// payload did not decode.
var NotificationsCorruptTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_corrupt_total",
		Help:      "Total number of notification stream entries that failed to decode.",
	},
)

// NotificationPollsTotal counts staff polls, split by whether anything was returned.
// Label:
//   - result: "empty" or "delivered"
var NotificationPollsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_polls_total",
		Help:      "Total number of notification polls served.",
	},
	[]string{"result"},
)
