package domain

import "time"

// Clock is the source of "now" for relative phrasing, day offsets and KPI
// date rules. Inject domaintest.FakeClock in tests.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

// Now returns time.Now().
func (RealClock) Now() time.Time {
	return time.Now()
}

var _ Clock = RealClock{}

// ValidMillis reports whether ms lies inside the representable instant range
// of ±100,000,000 days around the epoch.
func ValidMillis(ms int64) bool {
	return ms >= -MaxEpochMillis && ms <= MaxEpochMillis
}
