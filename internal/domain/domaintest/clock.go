// Package domaintest provides test doubles for the domain package.
package domaintest

import (
	"sync"
	"time"

	"github.com/metacatalog/timefmt/internal/domain"
)

// FakeClock is a manually driven domain.Clock. It is safe for concurrent
// use so handlers under test may read it while the test moves it.
type FakeClock struct {
	mu  sync.RWMutex
	now time.Time
}

var _ domain.Clock = (*FakeClock)(nil)

// NewFakeClock returns a clock stopped at now.
func NewFakeClock(now time.Time) *FakeClock {
	return &FakeClock{now: now}
}

// Now returns the stopped time.
func (c *FakeClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Advance moves the clock by d. A negative d moves it back.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// AdvanceDays moves the clock by n calendar days in its own location,
// keeping the wall-clock time.
func (c *FakeClock) AdvanceDays(n int) {
	c.mu.Lock()
	c.now = c.now.AddDate(0, 0, n)
	c.mu.Unlock()
}
