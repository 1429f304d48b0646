package datetime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metacatalog/timefmt/internal/datetime"
	"github.com/metacatalog/timefmt/internal/domain"
)

func TestHumanReadableDuration(t *testing.T) {
	tests := []struct {
		name string
		ms   int64
		want string
	}{
		{name: "hour minute second", ms: 3661000, want: "1h 1m 1s"},
		{name: "zero", ms: 0, want: "0s"},
		{name: "negative", ms: -5000, want: "0s"},
		{name: "sub-second", ms: 999, want: ""},
		{name: "one millisecond", ms: 1, want: ""},
		{name: "one day", ms: domain.MillisPerDay, want: "1d"},
		{name: "skips zero units", ms: domain.MillisPerDay + 5*domain.MillisPerSecond, want: "1d 5s"},
		{name: "360-day year", ms: 360 * domain.MillisPerDay, want: "1Y"},
		{
			name: "every unit",
			ms:   domain.MillisPer360DayYear + domain.MillisPer30DayMonth + domain.MillisPerDay + domain.MillisPerHour + domain.MillisPerMinute + domain.MillisPerSecond + 999,
			want: "1Y 1M 1d 1h 1m 1s",
		},
		{name: "35 days", ms: 35 * domain.MillisPerDay, want: "1M 5d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, datetime.HumanReadableDuration(tt.ms))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{ms: 1000, want: "1.00 second"},
		{ms: 30000, want: "30.00 seconds"},
		{ms: 0, want: "0.00 seconds"},
		{ms: 59999, want: "60.00 seconds"},
		{ms: 60000, want: "1.00 minute"},
		{ms: 90000, want: "1.50 minutes"},
		{ms: 3600000, want: "1.00 hour"},
		{ms: 5400000, want: "1.50 hours"},
		{ms: 36 * 3600000, want: "36.00 hours"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, datetime.FormatDuration(tt.ms))
		})
	}
}

func TestFormatTimeDurationFromSeconds(t *testing.T) {
	tests := []struct {
		name    string
		seconds *int64
		want    string
	}{
		{name: "minutes and seconds", seconds: ptr(571), want: "00:09:31"},
		{name: "zero", seconds: ptr(0), want: "00:00:00"},
		{name: "over a day", seconds: ptr(90061), want: "25:01:01"},
		{name: "hundreds of hours", seconds: ptr(360000), want: "100:00:00"},
		{name: "negative", seconds: ptr(-571), want: "-00:09:31"},
		{name: "missing", seconds: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, datetime.FormatTimeDurationFromSeconds(tt.seconds))
		})
	}
}

func TestIntervalInMilliseconds(t *testing.T) {
	got, err := datetime.IntervalInMilliseconds(refMillis, refMillis+1500)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), got)

	got, err = datetime.IntervalInMilliseconds(10, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(-6), got)

	_, err = datetime.IntervalInMilliseconds(domain.MaxEpochMillis+1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInstant)

	_, err = datetime.IntervalInMilliseconds(0, -domain.MaxEpochMillis-1)
	assert.ErrorIs(t, err, domain.ErrInvalidInstant)
}

func TestIntervalBetween(t *testing.T) {
	start := refMillis
	end := start + 2*domain.MillisPerDay + 3*domain.MillisPerHour + 59*domain.MillisPerMinute

	iv, err := datetime.IntervalBetween(start, end)

	require.NoError(t, err)
	assert.Equal(t, datetime.Interval{Days: 2, Hours: 3}, iv)
	assert.Equal(t, "2 Days, 3 Hours", iv.String())

	_, err = datetime.IntervalBetween(end, start)
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)

	_, err = datetime.IntervalBetween(0, domain.MaxEpochMillis+1)
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)
	assert.ErrorIs(t, err, domain.ErrInvalidInstant)
}

func TestCalculateInterval(t *testing.T) {
	tests := []struct {
		name       string
		start, end int64
		want       string
	}{
		{name: "days and hours", start: 0, end: 2*domain.MillisPerDay + 3*domain.MillisPerHour, want: "2 Days, 3 Hours"},
		{name: "empty", start: refMillis, end: refMillis, want: "0 Days, 0 Hours"},
		{name: "hours only", start: 0, end: 23 * domain.MillisPerHour, want: "0 Days, 23 Hours"},
		{name: "end before start", start: refMillis, end: refMillis - 1, want: domain.InvalidInterval},
		{name: "out of range", start: -domain.MaxEpochMillis - 1, end: 0, want: domain.InvalidInterval},
		{name: "full range", start: -domain.MaxEpochMillis, end: domain.MaxEpochMillis, want: "200000000 Days, 0 Hours"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, datetime.CalculateInterval(tt.start, tt.end))
		})
	}
}
