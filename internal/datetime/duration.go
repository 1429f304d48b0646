package datetime

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/metacatalog/timefmt/internal/domain"
)

// Interval is a non-negative span split into whole days and the remaining
// whole hours.
type Interval struct {
	Days  int64 `json:"days"`
	Hours int64 `json:"hours"`
}

// String renders the interval as "<days> Days, <hours> Hours".
func (i Interval) String() string {
	return fmt.Sprintf("%d Days, %d Hours", i.Days, i.Hours)
}

// IntervalInMilliseconds returns end - start. The result is negative when
// end precedes start.
func IntervalInMilliseconds(start, end int64) (int64, error) {
	if !domain.ValidMillis(start) {
		return 0, fmt.Errorf("%w: start %d", domain.ErrInvalidInstant, start)
	}
	if !domain.ValidMillis(end) {
		return 0, fmt.Errorf("%w: end %d", domain.ErrInvalidInstant, end)
	}
	return end - start, nil
}

// IntervalBetween splits the span from start to end into days and hours.
// A span where end precedes start is domain.ErrInvalidInterval.
func IntervalBetween(start, end int64) (Interval, error) {
	ms, err := IntervalInMilliseconds(start, end)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: %w", domain.ErrInvalidInterval, err)
	}
	if ms < 0 {
		return Interval{}, fmt.Errorf("%w: end precedes start by %d ms", domain.ErrInvalidInterval, -ms)
	}
	return Interval{
		Days:  ms / domain.MillisPerDay,
		Hours: (ms / domain.MillisPerHour) % 24,
	}, nil
}

// CalculateInterval is IntervalBetween rendered for display. Any failure
// renders as domain.InvalidInterval.
func CalculateInterval(start, end int64) string {
	iv, err := IntervalBetween(start, end)
	if err != nil {
		return domain.InvalidInterval
	}
	return iv.String()
}

var compactUnits = []struct {
	suffix string
	millis int64
}{
	{"Y", domain.MillisPer360DayYear},
	{"M", domain.MillisPer30DayMonth},
	{"d", domain.MillisPerDay},
	{"h", domain.MillisPerHour},
	{"m", domain.MillisPerMinute},
	{"s", domain.MillisPerSecond},
}

// HumanReadableDuration renders ms compactly, largest unit first, skipping
// zero units: 3661000 → "1h 1m 1s". Years are 360 days and months 30 days.
// A non-positive ms renders as "0s"; a positive one under a second has no
// non-zero unit and renders as "".
func HumanReadableDuration(ms int64) string {
	if ms <= 0 {
		return "0s"
	}
	parts := make([]string, 0, len(compactUnits))
	rem := ms
	for _, u := range compactUnits {
		if rem < u.millis {
			continue
		}
		parts = append(parts, strconv.FormatInt(rem/u.millis, 10)+u.suffix)
		rem %= u.millis
	}
	return strings.Join(parts, " ")
}

// FormatDuration renders ms in seconds below a minute, minutes below an
// hour, and hours otherwise, always with two decimals: "1.00 second",
// "1.50 minutes".
func FormatDuration(ms int64) string {
	seconds := float64(ms) / 1000
	minutes := seconds / 60
	hours := minutes / 60

	switch {
	case seconds < 60:
		return pluralize(seconds, "second")
	case minutes < 60:
		return pluralize(minutes, "minute")
	default:
		return pluralize(hours, "hour")
	}
}

func pluralize(v float64, unit string) string {
	s := strconv.FormatFloat(v, 'f', 2, 64) + " " + unit
	if v != 1 {
		s += "s"
	}
	return s
}

// FormatTimeDurationFromSeconds renders seconds as "HH:MM:SS"; hours grow
// past two digits as needed and negative spans carry a leading "-".
func FormatTimeDurationFromSeconds(seconds *int64) string {
	if seconds == nil {
		return ""
	}
	sign := ""
	v := *seconds
	var u uint64
	if v < 0 {
		sign = "-"
		u = uint64(-(v + 1)) + 1
	} else {
		u = uint64(v)
	}
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, u/3600, u%3600/60, u%60)
}
