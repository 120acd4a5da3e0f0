package clock

import "time"

// Clock supplies the current time and can be mocked in tests
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real system clock
type SystemClock struct{}

// New creates a SystemClock
func New() *SystemClock {
	return &SystemClock{}
}

// Now returns the current time
func (c *SystemClock) Now() time.Time {
	return time.Now()
}
