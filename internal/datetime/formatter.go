// Package datetime formats epoch instants and durations into locale-aware
// display strings and performs the epoch arithmetic the console needs
// (day boundaries, day offsets, intervals).
//
// A Formatter is immutable. The locale is bound when the Formatter is built
// or by WithLocale, so every call made through one value renders with the
// same locale. Optional instants are *int64; nil renders as "".
package datetime

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/metacatalog/timefmt/internal/domain"
	"github.com/metacatalog/timefmt/internal/locale"
)

// Formatter renders instants for one locale in one time zone.
type Formatter struct {
	clock domain.Clock
	loc   *time.Location
	tag   locale.Tag
	cal   *locale.Calendar
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithClock sets the clock used for every "now"-relative operation.
func WithClock(c domain.Clock) Option {
	return func(f *Formatter) {
		if c != nil {
			f.clock = c
		}
	}
}

// WithLocation sets the zone instants are rendered in.
func WithLocation(loc *time.Location) Option {
	return func(f *Formatter) {
		if loc != nil {
			f.loc = loc
		}
	}
}

// WithLocale sets the initial locale. Unsupported tags fall back to
// locale.Default.
func WithLocale(tag locale.Tag) Option {
	return func(f *Formatter) {
		f.setLocale(tag)
	}
}

// New creates a Formatter using the system clock, the local zone and
// locale.Default unless overridden.
func New(opts ...Option) *Formatter {
	f := &Formatter{
		clock: domain.RealClock{},
		loc:   time.Local,
	}
	f.setLocale(locale.Default)
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Formatter) setLocale(tag locale.Tag) {
	f.cal = locale.CalendarFor(tag)
	f.tag = f.cal.Tag
}

// WithLocale returns a copy of f bound to tag. f is unchanged.
func (f *Formatter) WithLocale(tag locale.Tag) *Formatter {
	c := *f
	c.setLocale(tag)
	return &c
}

// Locale returns the bound locale.
func (f *Formatter) Locale() locale.Tag {
	return f.tag
}

// Location returns the zone instants are rendered in.
func (f *Formatter) Location() *time.Location {
	return f.loc
}

func (f *Formatter) now() time.Time {
	return f.clock.Now().In(f.loc)
}

// instant converts ms to a time in f's zone. ok is false when ms is nil or
// outside the representable range.
func (f *Formatter) instant(ms *int64) (time.Time, bool) {
	if ms == nil || !domain.ValidMillis(*ms) {
		return time.Time{}, false
	}
	return time.UnixMilli(*ms).In(f.loc), true
}

// FormatDateTime renders ms as the locale's medium date and short time,
// e.g. "Jan 5, 2024, 3:45 PM".
func (f *Formatter) FormatDateTime(ms *int64) string {
	t, ok := f.instant(ms)
	if !ok {
		return ""
	}
	return formatPattern(t, "ff", f.cal)
}

// FormatDate renders ms as the locale's medium date, e.g. "Jan 5, 2024".
func (f *Formatter) FormatDate(ms *int64) string {
	t, ok := f.instant(ms)
	if !ok {
		return ""
	}
	return formatPattern(t, "DD", f.cal)
}

// FormatDateTimeWithTimezone renders exactly like FormatDateTime; no zone
// is appended.
func (f *Formatter) FormatDateTimeWithTimezone(ms *int64) string {
	// TODO: append TimeZone() once the console confirms the expected layout.
	return f.FormatDateTime(ms)
}

// FormatDateTimeLong renders ms with pattern in en-US regardless of the
// bound locale. An empty pattern uses domain.LongDateTimePattern.
func (f *Formatter) FormatDateTimeLong(ms int64, pattern string) (string, error) {
	if !domain.ValidMillis(ms) {
		return "", fmt.Errorf("%w: %d", domain.ErrInvalidInstant, ms)
	}
	if pattern == "" {
		pattern = domain.LongDateTimePattern
	}
	return formatPattern(time.UnixMilli(ms).In(f.loc), pattern, locale.CalendarFor(locale.EnUS)), nil
}

// CustomFormatDateTime renders ms with pattern in the bound locale. An empty
// pattern behaves like FormatDateTime.
func (f *Formatter) CustomFormatDateTime(ms *int64, pattern string) string {
	if pattern == "" {
		return f.FormatDateTime(ms)
	}
	t, ok := f.instant(ms)
	if !ok {
		return ""
	}
	return formatPattern(t, pattern, f.cal)
}

var zoneInitials = regexp.MustCompile(`\b[A-Z]+`)

// TimeZone abbreviates the long name of f's zone at the current instant to
// its upper-case word initials: "Gulf Standard Time" → "GST", "Central
// European Summer Time" → "CEST". Zones without a known long name fall back
// to their tzdata abbreviation; a numeric one ("+04") yields "".
func (f *Formatter) TimeZone() string {
	now := f.now()
	name, ok := locale.ZoneLongName(zoneID(f.loc), now.IsDST())
	if !ok {
		name, _ = now.Zone()
	}
	return strings.Join(zoneInitials.FindAllString(name, -1), "")
}

// zoneID returns the IANA name of loc. time.Local reports "Local", so its
// name comes from TZ or the /etc/localtime symlink.
func zoneID(loc *time.Location) string {
	if loc != time.Local {
		return loc.String()
	}
	if tz := strings.TrimPrefix(os.Getenv("TZ"), ":"); tz != "" {
		return tz
	}
	target, err := os.Readlink("/etc/localtime")
	if err != nil {
		return loc.String()
	}
	if _, zone, ok := strings.Cut(filepath.ToSlash(target), "zoneinfo/"); ok {
		return zone
	}
	return loc.String()
}

// CurrentISODate returns now as ISO-8601 without a UTC offset,
// e.g. "2024-01-05T15:45:00.000".
func (f *Formatter) CurrentISODate() string {
	return f.now().Format(domain.ISOLocalLayout)
}

// CurrentMillis returns now as epoch milliseconds.
func (f *Formatter) CurrentMillis() int64 {
	return f.clock.Now().UnixMilli()
}

// CurrentUnixInteger returns now as whole epoch seconds.
func (f *Formatter) CurrentUnixInteger() int64 {
	return f.clock.Now().Unix()
}

// ValidateDateFormat formats now with pattern and parses the result back.
// It returns an error wrapping domain.ErrInvalidPattern when either step
// fails.
func (f *Formatter) ValidateDateFormat(pattern string) error {
	if pattern == "" {
		return fmt.Errorf("%w: empty pattern", domain.ErrInvalidPattern)
	}
	now := f.now()
	_, err := parsePattern(formatPattern(now, pattern, f.cal), pattern, f.cal, f.loc, now)
	return err
}

// IsValidDateFormat reports whether ValidateDateFormat accepts pattern.
func (f *Formatter) IsValidDateFormat(pattern string) bool {
	return f.ValidateDateFormat(pattern) == nil
}

// Parse reads value written with pattern in the bound locale and returns
// it as epoch milliseconds. Omitted fields default to the current year,
// January, day 1 and midnight.
func (f *Formatter) Parse(value, pattern string) (int64, error) {
	if pattern == "" {
		return 0, fmt.Errorf("%w: empty pattern", domain.ErrInvalidPattern)
	}
	t, err := parsePattern(value, pattern, f.cal, f.loc, f.now())
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}
