package client

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// NotificationSource fetches queued notifications.
type NotificationSource interface {
	PollNotifications(ctx context.Context) ([]Notification, error)
}

// NotificationPoller surfaces each fetched notification once as an alert.
// Nothing is acknowledged back to the server: once fetched, a notification
// is considered consumed.
type NotificationPoller struct {
	source  NotificationSource
	alerter Alerter
	log     zerolog.Logger

	loop loop
}

func NewNotificationPoller(source NotificationSource, alerter Alerter, interval time.Duration, log zerolog.Logger) *NotificationPoller {
	p := &NotificationPoller{source: source, alerter: alerter, log: log}
	p.loop = loop{interval: interval, tick: func(ctx context.Context) { _, _ = p.Poll(ctx) }}
	return p
}

func (p *NotificationPoller) Start(ctx context.Context) { p.loop.start(ctx) }

func (p *NotificationPoller) Stop() { p.loop.stop() }

// Poll fetches once and alerts each notification. It returns how many were shown.
func (p *NotificationPoller) Poll(ctx context.Context) (int, error) {
	ns, err := p.source.PollNotifications(ctx)
	if err != nil {
		p.log.Debug().Err(err).Msg("notification poll failed")
		return 0, err
	}
	if err := p.loop.commitErr(ctx); err != nil {
		return 0, err
	}
	for _, n := range ns {
		p.alerter.Alert(alertKindFor(n.Type), n.Message)
	}
	return len(ns), nil
}

func alertKindFor(notificationType string) AlertKind {
	switch notificationType {
	case "order_ready", "order_completed":
		return AlertSuccess
	case "error":
		return AlertError
	default:
		return AlertInfo
	}
}
