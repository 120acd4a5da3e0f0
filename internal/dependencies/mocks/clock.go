package mocks

import (
	"time"

	"github.com/mfreeman/gridledger/internal/dependencies/clock"
)

// FixedClock is a Clock pinned to a settable instant for tests
type FixedClock struct {
	CurrentTime time.Time
}

// Ensure FixedClock implements Clock
var _ clock.Clock = (*FixedClock)(nil)

// NewFixedClock creates a FixedClock set to the given time
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{CurrentTime: t}
}

// Now returns the pinned time
func (c *FixedClock) Now() time.Time {
	return c.CurrentTime
}

// Advance moves the clock forward by d
func (c *FixedClock) Advance(d time.Duration) {
	c.CurrentTime = c.CurrentTime.Add(d)
}
