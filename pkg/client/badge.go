package client

import "sync"

// BadgeTracker derives the "new orders" badge from successive pending counts.
//
// The first observation only sets the baseline. Afterwards a count above the
// baseline shows the current pending count on the badge, and a count of zero
// resets both. The baseline always follows the last observed count, so a
// drop and a rise between two polls that net out are invisible.
type BadgeTracker struct {
	mu          sync.Mutex
	initialized bool
	baseline    int
	pending     int
	badge       int
}

// Observe records a successful poll and returns the badge value.
func (t *BadgeTracker) Observe(pending int) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if pending < 0 {
		pending = 0
	}
	t.pending = pending

	switch {
	case !t.initialized:
		t.initialized = true
		t.baseline = pending
		t.badge = 0
	case pending == 0:
		t.baseline = 0
		t.badge = 0
	case pending > t.baseline:
		t.baseline = pending
		t.badge = pending
	default:
		t.baseline = pending
		if t.badge > pending {
			t.badge = pending
		}
	}
	return t.badge
}

// Acknowledge marks the current list as seen. The badge clears only when
// nothing is pending; otherwise it stays up for the unhandled orders.
func (t *BadgeTracker) Acknowledge() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.baseline = t.pending
	if t.pending == 0 {
		t.badge = 0
	}
	return t.badge
}

func (t *BadgeTracker) Badge() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.badge
}

func (t *BadgeTracker) Baseline() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.baseline
}
