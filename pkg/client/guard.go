package client

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultLogoutDelay leaves the session-expired alert on screen briefly
	// before the session is dropped.
	DefaultLogoutDelay = 1500 * time.Millisecond

	sessionExpiredMessage = "Your session has expired. Please log in again."
)

// AuthGuard turns 401/403 responses from any request into a single forced
// logout. Signals arriving while a logout is pending are ignored.
type AuthGuard struct {
	session *Session
	alerter Alerter
	delay   time.Duration
	log     zerolog.Logger

	pending atomic.Bool
}

func NewAuthGuard(session *Session, alerter Alerter, delay time.Duration, log zerolog.Logger) *AuthGuard {
	if delay < 0 {
		delay = DefaultLogoutDelay
	}
	return &AuthGuard{session: session, alerter: alerter, delay: delay, log: log}
}

// Attach subscribes the guard to c's auth failures.
func (g *AuthGuard) Attach(c *Client) {
	c.OnAuthFailure(g.Notify)
}

// Notify reports an auth failure. The first one while a session is held
// raises the session-expired alert and schedules the logout.
func (g *AuthGuard) Notify(err *APIError) {
	if err == nil || !err.IsAuthFailure() {
		return
	}
	if !g.session.Authenticated() {
		return
	}
	if !g.pending.CompareAndSwap(false, true) {
		return
	}

	g.log.Warn().Int("status", err.Status).Str("path", err.Path).Msg("auth failure, forcing logout")
	g.alerter.Alert(AlertSessionExpired, sessionExpiredMessage)

	time.AfterFunc(g.delay, func() {
		defer g.pending.Store(false)
		if lerr := g.session.Logout(); lerr != nil {
			g.log.Error().Err(lerr).Msg("forced logout failed")
		}
	})
}

// Pending reports whether a forced logout is scheduled.
func (g *AuthGuard) Pending() bool { return g.pending.Load() }
