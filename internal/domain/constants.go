package domain

import "time"

// Millisecond unit sizes used by duration and interval arithmetic.
// Month and year are the fixed 30-day and 360-day spans of the compact
// duration format, not calendar units.
const (
	MillisPerSecond     int64 = 1000
	MillisPerMinute           = 60 * MillisPerSecond
	MillisPerHour             = 60 * MillisPerMinute
	MillisPerDay              = 24 * MillisPerHour
	MillisPer30DayMonth       = 30 * MillisPerDay
	MillisPer360DayYear       = 360 * MillisPerDay

	// MaxEpochMillis bounds a valid instant: 100,000,000 days either side
	// of the epoch.
	MaxEpochMillis int64 = 8_640_000_000_000_000
)

// Formatting defaults.
const (
	// DefaultLocale is used whenever no other locale source resolves.
	DefaultLocale = "en-US"

	// LongDateTimePattern is the fixed en-US pattern of FormatDateTimeLong.
	LongDateTimePattern = "ccc d'th' MMMM, yyyy, hh:mm a"

	// ISOLocalLayout renders an instant as ISO-8601 without a UTC offset.
	ISOLocalLayout = "2006-01-02T15:04:05.000"

	// InvalidInterval is returned by the string form of interval calculation
	// when the interval cannot be computed.
	InvalidInterval = "Invalid interval"
)

// Locale preference storage.
const (
	LocalePreferenceTTL   = 90 * 24 * time.Hour // Idle preferences expire after 90 days
	MaxUserIDLength       = 128

	// PreferenceWriteLimit caps writes per user within PreferenceWriteWindow.
	PreferenceWriteLimit  = 10
	PreferenceWriteWindow = time.Minute
)

// Timeout contracts.
const (
	RedisTimeout = 2 * time.Second // Max time for Redis operations
)

// Graceful shutdown.
const (
	GracefulShutdownTimeout = 30 * time.Second       // Max time to drain connections on shutdown
	ShutdownDrainDelay      = 500 * time.Millisecond // Let load balancers observe 503 before draining
	ShutdownHTTPTimeout     = 10 * time.Second
	ShutdownGRPCTimeout     = 5 * time.Second
	ShutdownOTELTimeout     = 5 * time.Second
)
