package client

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type recordingAlerter struct {
	mu     sync.Mutex
	alerts []AlertKind
	msgs   []string
}

func (a *recordingAlerter) Alert(kind AlertKind, message string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.alerts = append(a.alerts, kind)
	a.msgs = append(a.msgs, message)
}

func (a *recordingAlerter) count(kind AlertKind) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, k := range a.alerts {
		if k == kind {
			n++
		}
	}
	return n
}

func TestAuthGuard_BurstOf403sLogsOutOnce(t *testing.T) {
	c, s := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"token expired"}`))
	}))
	_ = s.Set("tok", User{Username: "ana", Role: "employee"})

	var logouts atomic.Int32
	loggedOut := make(chan struct{}, 4)
	s.OnLogout(func() {
		logouts.Add(1)
		loggedOut <- struct{}{}
	})

	alerter := &recordingAlerter{}
	guard := NewAuthGuard(s, alerter, 150*time.Millisecond, zerolog.Nop())
	guard.Attach(c)

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.ActiveOrders(context.Background())
		}()
	}
	wg.Wait()

	if !guard.Pending() {
		t.Fatal("expected a logout to be pending")
	}

	select {
	case <-loggedOut:
	case <-time.After(2 * time.Second):
		t.Fatal("forced logout never happened")
	}
	time.Sleep(100 * time.Millisecond)

	if n := logouts.Load(); n != 1 {
		t.Fatalf("expected exactly one logout, got %d", n)
	}
	if n := alerter.count(AlertSessionExpired); n != 1 {
		t.Fatalf("expected exactly one session-expired alert, got %d", n)
	}
	if s.Authenticated() {
		t.Fatal("session should be cleared")
	}
	if guard.Pending() {
		t.Fatal("guard should re-arm after logout")
	}
}

func TestAuthGuard_IgnoresWhenLoggedOut(t *testing.T) {
	s, _ := NewSession(NewMemoryStore())
	alerter := &recordingAlerter{}
	guard := NewAuthGuard(s, alerter, time.Millisecond, zerolog.Nop())

	guard.Notify(&APIError{Status: http.StatusUnauthorized})

	if guard.Pending() || alerter.count(AlertSessionExpired) != 0 {
		t.Fatal("no session held, guard must stay idle")
	}
}

func TestAuthGuard_IgnoresOtherStatuses(t *testing.T) {
	s, _ := NewSession(NewMemoryStore())
	_ = s.Set("tok", User{Username: "ana"})
	alerter := &recordingAlerter{}
	guard := NewAuthGuard(s, alerter, time.Millisecond, zerolog.Nop())

	guard.Notify(&APIError{Status: http.StatusUnprocessableEntity})
	guard.Notify(nil)

	if guard.Pending() || !s.Authenticated() {
		t.Fatal("non-auth errors must not trigger logout")
	}
}
