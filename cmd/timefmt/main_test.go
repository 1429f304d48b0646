package main

import (
	"bytes"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metacatalog/timefmt/internal/domain"
	"github.com/metacatalog/timefmt/internal/domain/domaintest"
)

var (
	refTime   = time.Date(2024, time.January, 5, 15, 45, 0, 0, time.UTC)
	refMillis = refTime.UnixMilli()
)

func ms(v int64) string {
	return strconv.FormatInt(v, 10)
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd(domaintest.NewFakeClock(refTime))
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--tz", "UTC"}, args...))

	err := cmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "format", args: []string{"format", ms(refMillis)}, want: "Jan 5, 2024, 3:45 PM"},
		{name: "date", args: []string{"date", ms(refMillis)}, want: "Jan 5, 2024"},
		{name: "long", args: []string{"long", ms(refMillis)}, want: "Fri 5th January, 2024, 03:45 PM"},
		{name: "long ignores locale", args: []string{"--locale", "de-DE", "long", ms(refMillis)}, want: "Fri 5th January, 2024, 03:45 PM"},
		{name: "custom", args: []string{"custom", "--pattern", "yyyy-MM-dd HH:mm", ms(refMillis)}, want: "2024-01-05 15:45"},
		{name: "custom without pattern", args: []string{"custom", ms(refMillis)}, want: "Jan 5, 2024, 3:45 PM"},
		{name: "relative", args: []string{"relative", ms(refMillis - 3*domain.MillisPerHour)}, want: "3 hours ago"},
		{name: "relative german", args: []string{"-l", "de-DE", "relative", ms(refMillis + 2*domain.MillisPerHour)}, want: "in 2 Stunden"},
		{name: "calendar", args: []string{"calendar", ms(refMillis - domain.MillisPerDay)}, want: "Yesterday"},
		{name: "calendar french", args: []string{"--locale", "fr_fr", "calendar", ms(refMillis - domain.MillisPerDay)}, want: "Hier"},
		{name: "calendar with base", args: []string{"calendar", "--base", ms(refMillis - 2*domain.MillisPerDay), ms(refMillis - domain.MillisPerDay)}, want: "Tomorrow"},
		{name: "interval", args: []string{"interval", "0", ms(domain.MillisPerDay + 2*domain.MillisPerHour)}, want: "1 Days, 2 Hours"},
		{name: "interval reversed", args: []string{"interval", "10", "0"}, want: domain.InvalidInterval},
		{name: "duration", args: []string{"duration", "30000"}, want: "30.00 seconds"},
		{name: "duration human", args: []string{"duration", "human", "3661000"}, want: "1h 1m 1s"},
		{name: "duration clock", args: []string{"duration", "clock", "571"}, want: "00:09:31"},
		{name: "days remaining", args: []string{"days", "remaining", ms(refMillis + 5*domain.MillisPerDay)}, want: "5"},
		{name: "days offset past", args: []string{"days", "offset", "2"}, want: ms(refMillis - 2*domain.MillisPerDay)},
		{name: "days offset future", args: []string{"days", "offset", "--future", "2"}, want: ms(refMillis + 2*domain.MillisPerDay)},
		{name: "pattern validate", args: []string{"pattern", "validate", "yyyy-MM-dd"}, want: "valid"},
		{name: "pattern parse", args: []string{"pattern", "parse", "2024-01-05", "yyyy-MM-dd"}, want: ms(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC).UnixMilli())},
		{name: "timezone", args: []string{"timezone"}, want: "CUT"},
		{name: "now", args: []string{"now"}, want: "2024-01-05T15:45:00.000 " + ms(refMillis)},
		{name: "now unix", args: []string{"now", "--unix"}, want: ms(refMillis / 1000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)

			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestLocalesCommand(t *testing.T) {
	out, err := run(t, "locales")

	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	assert.Contains(t, lines, "en-US")
	assert.Contains(t, lines, "ja-JP")
	assert.NotContains(t, lines, "ko-KR")
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "unsupported locale", args: []string{"--locale", "ko-KR", "format", "0"}, wantErr: domain.ErrUnsupportedLocale},
		{name: "unknown zone", args: []string{"--tz", "Mars/Olympus", "format", "0"}, wantErr: domain.ErrInvalidTimezone},
		{name: "non-numeric instant", args: []string{"format", "yesterday"}, wantErr: domain.ErrInvalidInput},
		{name: "long out of range", args: []string{"long", ms(domain.MaxEpochMillis + 1)}, wantErr: domain.ErrInvalidInstant},
		{name: "empty pattern", args: []string{"pattern", "validate", ""}, wantErr: domain.ErrInvalidPattern},
		{name: "parse mismatch", args: []string{"pattern", "parse", "not a date", "yyyy-MM-dd"}, wantErr: domain.ErrInvalidPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCommandArgs(t *testing.T) {
	_, err := run(t, "format")
	assert.Error(t, err)

	_, err = run(t, "interval", "1")
	assert.Error(t, err)
}
