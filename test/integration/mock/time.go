package mock

import (
	"sync"
	"time"
)

// Time is a clock frozen at a settable instant.
type Time struct {
	mu  sync.RWMutex
	now time.Time
}

// NewTime returns a clock frozen at the current time.
func NewTime() *Time {
	return &Time{now: time.Now().UTC()}
}

// SetCurrentTime freezes the clock at currentTime.
func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.now = currentTime.UTC()
}

// Advance moves the clock forward by d.
func (t *Time) Advance(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.now = t.now.Add(d)
}

// Now returns the frozen instant.
func (t *Time) Now() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.now
}
