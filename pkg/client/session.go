package client

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/mesapos/restaurant-pos/pkg/permission"
)

// Session is the explicit auth context handed to everything that issues
// requests. It is initialised from a Store, mutated by login/register and
// Logout, and Logout clears the Store.
type Session struct {
	store Store

	mu       sync.RWMutex
	token    string
	user     User
	onLogout []func()
}

// NewSession restores any persisted session. An unreadable or half-written
// record is discarded rather than trusted.
func NewSession(store Store) (*Session, error) {
	s := &Session{store: store}
	rec, err := store.Load()
	if err != nil {
		if cerr := store.Clear(); cerr != nil {
			return nil, fmt.Errorf("session: discard unreadable record: %w", cerr)
		}
		return s, nil
	}
	if rec != nil && rec.Token != "" && rec.User.Username != "" {
		s.token, s.user = rec.Token, rec.User
	}
	return s, nil
}

// Set persists token and user, then exposes them. Nothing changes in memory
// if persisting fails.
func (s *Session) Set(token string, user User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Save(Record{Token: token, User: user}); err != nil {
		return fmt.Errorf("session: persist: %w", err)
	}
	s.token, s.user = token, user
	return nil
}

// Logout clears the stored and in-memory session and runs the logout hooks.
func (s *Session) Logout() error {
	s.mu.Lock()
	err := s.store.Clear()
	s.token, s.user = "", User{}
	hooks := append([]func(){}, s.onLogout...)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	if err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}

// OnLogout registers fn to run after every Logout, e.g. to return to a login view.
func (s *Session) OnLogout(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLogout = append(s.onLogout, fn)
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the current user and whether a session is held.
func (s *Session) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.token != ""
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// AuthHeaders returns the headers for an API request, with a bearer token
// when a session is held.
func (s *Session) AuthHeaders() http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	if token := s.Token(); token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// Permissions returns the grants of the current user's role.
func (s *Session) Permissions() []permission.Permission {
	u, ok := s.User()
	if !ok {
		return nil
	}
	return permission.ForRole(u.Role)
}

// Can reports whether the current user's role grants p.
func (s *Session) Can(p permission.Permission) bool {
	return permission.Has(s.Permissions(), p)
}
