package datetime

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/metacatalog/timefmt/internal/domain"
	"github.com/metacatalog/timefmt/internal/locale"
)

// twoDigitYearCutoff splits two-digit years: above it is 19xx, else 20xx.
const twoDigitYearCutoff = 60

type field uint32

const (
	fYear field = 1 << iota
	fMonth
	fDay
	fHour
	fHour12
	fMinute
	fSecond
	fMilli
	fMeridiem
	fWeekday
	fOrdinal
	fQuarter
	fWeek
	fOffset
	fZone
	fUnixSeconds
	fUnixMillis
)

// fields collects the values captured while parsing.
type fields struct {
	set field

	year, month, day    int
	hour, minute, sec   int
	milli               int
	pm                  bool
	weekday             int // ISO, 1-7
	ordinal, qtr, week  int
	offset              int // seconds east of UTC
	zone                *time.Location
	unixSec, unixMillis int64
}

type setter func(f *fields, s string) error

type parser struct {
	re      *regexp.Regexp
	setters []setter
}

// compileParser builds a matcher for the expanded tokens. Letter runs with
// no parse rule make the pattern invalid.
func compileParser(tokens []token, cal *locale.Calendar) (*parser, error) {
	var (
		expr    strings.Builder
		setters []setter
	)
	expr.WriteString("^")
	for _, tok := range tokens {
		if tok.literal {
			expr.WriteString(regexp.QuoteMeta(tok.val))
			continue
		}
		frag, set, ok := tokenRule(tok.val, cal)
		if !ok {
			return nil, fmt.Errorf("%w: unsupported token %q", domain.ErrInvalidPattern, tok.val)
		}
		expr.WriteString("(" + frag + ")")
		setters = append(setters, set)
	}
	expr.WriteString("$")

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidPattern, err)
	}
	return &parser{re: re, setters: setters}, nil
}

func tokenRule(tok string, cal *locale.Calendar) (string, setter, bool) {
	switch tok {
	case "y":
		return `\d{1,6}`, intField(fYear, func(f *fields, n int) { f.year = n }), true
	case "yy":
		return `\d{2}`, intField(fYear, func(f *fields, n int) { f.year = untruncateYear(n) }), true
	case "yyyy":
		return `\d{4}`, intField(fYear, func(f *fields, n int) { f.year = n }), true

	case "M", "L":
		return `\d{1,2}`, intField(fMonth, func(f *fields, n int) { f.month = n }), true
	case "MM", "LL":
		return `\d{2}`, intField(fMonth, func(f *fields, n int) { f.month = n }), true
	case "MMM", "LLL", "MMMM", "LLLL":
		short := len(tok) == 3
		name := cal.MonthName
		if tok[0] == 'L' {
			name = cal.StandaloneMonthName
		}
		names := make([]string, 12)
		for m := time.January; m <= time.December; m++ {
			names[m-1] = name(m, short)
		}
		return alternation(names), nameField(names, fMonth, func(f *fields, i int) { f.month = i + 1 }), true

	case "d":
		return `\d{1,2}`, intField(fDay, func(f *fields, n int) { f.day = n }), true
	case "dd":
		return `\d{2}`, intField(fDay, func(f *fields, n int) { f.day = n }), true

	case "c", "E":
		return `[1-7]`, intField(fWeekday, func(f *fields, n int) { f.weekday = n }), true
	case "ccc", "EEE", "cccc", "EEEE":
		short := len(tok) == 3
		names := make([]string, 7)
		for i := range names {
			// index 0 is Monday
			names[i] = cal.WeekdayName(time.Weekday((i+1)%7), short)
		}
		return alternation(names), nameField(names, fWeekday, func(f *fields, i int) { f.weekday = i + 1 }), true

	case "H", "h":
		return `\d{1,2}`, hourField(tok == "h"), true
	case "HH", "hh":
		return `\d{2}`, hourField(tok == "hh"), true
	case "m":
		return `\d{1,2}`, intField(fMinute, func(f *fields, n int) { f.minute = n }), true
	case "mm":
		return `\d{2}`, intField(fMinute, func(f *fields, n int) { f.minute = n }), true
	case "s":
		return `\d{1,2}`, intField(fSecond, func(f *fields, n int) { f.sec = n }), true
	case "ss":
		return `\d{2}`, intField(fSecond, func(f *fields, n int) { f.sec = n }), true
	case "S":
		return `\d{1,3}`, intField(fMilli, func(f *fields, n int) { f.milli = n }), true
	case "SSS":
		return `\d{3}`, intField(fMilli, func(f *fields, n int) { f.milli = n }), true
	case "a":
		names := cal.Meridiem[:]
		return alternation(names), nameField(names, fMeridiem, func(f *fields, i int) { f.pm = i == 1 }), true

	case "Z":
		return `[+-]\d{1,2}(?::\d{2})?`, offsetField, true
	case "ZZ":
		return `[+-]\d{2}:\d{2}`, offsetField, true
	case "ZZZ":
		return `[+-]\d{4}`, offsetField, true
	case "z":
		return `[A-Za-z][A-Za-z0-9_+\-]*(?:/[A-Za-z0-9_+\-]+)*`, zoneField, true

	case "o":
		return `\d{1,3}`, intField(fOrdinal, func(f *fields, n int) { f.ordinal = n }), true
	case "ooo":
		return `\d{3}`, intField(fOrdinal, func(f *fields, n int) { f.ordinal = n }), true
	case "q":
		return `\d`, intField(fQuarter, func(f *fields, n int) { f.qtr = n }), true
	case "qq":
		return `\d{2}`, intField(fQuarter, func(f *fields, n int) { f.qtr = n }), true
	case "W":
		return `\d{1,2}`, intField(fWeek, func(f *fields, n int) { f.week = n }), true
	case "WW":
		return `\d{2}`, intField(fWeek, func(f *fields, n int) { f.week = n }), true

	case "X":
		return `-?\d+`, int64Field(fUnixSeconds, func(f *fields, n int64) { f.unixSec = n }), true
	case "x":
		return `-?\d+`, int64Field(fUnixMillis, func(f *fields, n int64) { f.unixMillis = n }), true
	}
	// ZZZZ (zone abbreviation) is ambiguous and has no parse rule.
	return "", nil, false
}

func intField(flag field, assign func(*fields, int)) setter {
	return func(f *fields, s string) error {
		n, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		f.set |= flag
		assign(f, n)
		return nil
	}
}

func int64Field(flag field, assign func(*fields, int64)) setter {
	return func(f *fields, s string) error {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		f.set |= flag
		assign(f, n)
		return nil
	}
}

func nameField(names []string, flag field, assign func(*fields, int)) setter {
	return func(f *fields, s string) error {
		for i, name := range names {
			if strings.EqualFold(name, s) {
				f.set |= flag
				assign(f, i)
				return nil
			}
		}
		return fmt.Errorf("unknown name %q", s)
	}
}

func hourField(twelve bool) setter {
	return func(f *fields, s string) error {
		n, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		f.hour = n
		if twelve {
			f.set |= fHour12
		} else {
			f.set |= fHour
		}
		return nil
	}
}

func offsetField(f *fields, s string) error {
	sign := 1
	if s[0] == '-' {
		sign = -1
	}
	s = strings.ReplaceAll(s[1:], ":", "")
	var h, m int
	var err error
	switch len(s) {
	case 1, 2:
		h, err = strconv.Atoi(s)
	case 3, 4:
		if h, err = strconv.Atoi(s[:len(s)-2]); err == nil {
			m, err = strconv.Atoi(s[len(s)-2:])
		}
	default:
		return fmt.Errorf("malformed offset %q", s)
	}
	if err != nil {
		return err
	}
	if h > 23 || m > 59 {
		return fmt.Errorf("offset out of range")
	}
	f.set |= fOffset
	f.offset = sign * (h*3600 + m*60)
	return nil
}

func zoneField(f *fields, s string) error {
	loc, err := time.LoadLocation(s)
	if err != nil {
		return fmt.Errorf("%w: %q", domain.ErrInvalidTimezone, s)
	}
	f.set |= fZone
	f.zone = loc
	return nil
}

// alternation matches any of names, longest first, case-insensitively.
func alternation(names []string) string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	quoted := make([]string, len(sorted))
	for i, n := range sorted {
		quoted[i] = regexp.QuoteMeta(n)
	}
	return "(?i:" + strings.Join(quoted, "|") + ")"
}

func untruncateYear(yy int) int {
	if yy > twoDigitYearCutoff {
		return 1900 + yy
	}
	return 2000 + yy
}

// parsePattern parses value with pattern. Fields the pattern omits default
// to ref's year, January, day 1 and midnight in loc.
func parsePattern(value, pattern string, cal *locale.Calendar, loc *time.Location, ref time.Time) (time.Time, error) {
	p, err := compileParser(expandMacros(tokenize(pattern), cal), cal)
	if err != nil {
		return time.Time{}, err
	}
	m := p.re.FindStringSubmatch(value)
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: %q does not match %q", domain.ErrInvalidPattern, value, pattern)
	}

	var f fields
	for i, set := range p.setters {
		if err := set(&f, m[i+1]); err != nil {
			return time.Time{}, fmt.Errorf("%w: %w", domain.ErrInvalidPattern, err)
		}
	}
	t, err := f.resolve(loc, ref)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", domain.ErrInvalidPattern, err)
	}
	return t, nil
}

func (f *fields) has(flag field) bool {
	return f.set&flag != 0
}

func (f *fields) resolve(loc *time.Location, ref time.Time) (time.Time, error) {
	switch {
	case f.has(fZone):
		loc = f.zone
	case f.has(fOffset):
		loc = time.FixedZone("", f.offset)
	}

	if f.has(fUnixMillis) {
		return time.UnixMilli(f.unixMillis).In(loc), nil
	}
	if f.has(fUnixSeconds) {
		return time.Unix(f.unixSec, 0).In(loc), nil
	}

	year := ref.In(loc).Year()
	if f.has(fYear) {
		year = f.year
	}

	hour, err := f.resolveHour()
	if err != nil {
		return time.Time{}, err
	}
	if f.minute > 59 || f.sec > 59 || f.milli > 999 {
		return time.Time{}, fmt.Errorf("time of day out of range")
	}

	var date time.Time
	switch {
	case f.has(fOrdinal):
		if f.has(fMonth) || f.has(fDay) || f.has(fWeek) {
			return time.Time{}, fmt.Errorf("ordinal day mixed with month, day or week")
		}
		if f.ordinal < 1 || f.ordinal > daysInYear(year) {
			return time.Time{}, fmt.Errorf("ordinal day %d out of range", f.ordinal)
		}
		date = time.Date(year, time.January, f.ordinal, 0, 0, 0, 0, loc)
	case f.has(fWeek):
		if f.has(fMonth) || f.has(fDay) {
			return time.Time{}, fmt.Errorf("week number mixed with month or day")
		}
		wd := 1
		if f.has(fWeekday) {
			wd = f.weekday
		}
		date = isoWeekDate(year, f.week, wd, loc)
		if y, w := date.ISOWeek(); y != year || w != f.week {
			return time.Time{}, fmt.Errorf("week %d out of range for %d", f.week, year)
		}
	default:
		month := 1
		if f.has(fQuarter) {
			if f.qtr < 1 || f.qtr > 4 {
				return time.Time{}, fmt.Errorf("quarter %d out of range", f.qtr)
			}
			month = (f.qtr-1)*3 + 1
		}
		if f.has(fMonth) {
			if f.has(fQuarter) && quarter(time.Month(f.month)) != f.qtr {
				return time.Time{}, fmt.Errorf("month %d not in quarter %d", f.month, f.qtr)
			}
			month = f.month
		}
		day := 1
		if f.has(fDay) {
			day = f.day
		}
		if month < 1 || month > 12 || day < 1 || day > 31 {
			return time.Time{}, fmt.Errorf("date %d-%d out of range", month, day)
		}
		date = time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
		if date.Year() != year || int(date.Month()) != month || date.Day() != day {
			return time.Time{}, fmt.Errorf("no such date %04d-%02d-%02d", year, month, day)
		}
	}

	if f.has(fWeekday) && (f.has(fDay) || f.has(fOrdinal)) && isoWeekday(date.Weekday()) != f.weekday {
		return time.Time{}, fmt.Errorf("weekday does not match date")
	}

	return time.Date(date.Year(), date.Month(), date.Day(), hour, f.minute, f.sec, f.milli*int(time.Millisecond), loc), nil
}

func (f *fields) resolveHour() (int, error) {
	switch {
	case f.has(fHour12):
		if f.hour < 1 || f.hour > 12 {
			return 0, fmt.Errorf("hour %d out of range", f.hour)
		}
		if !f.has(fMeridiem) {
			return f.hour, nil
		}
		h := f.hour % 12
		if f.pm {
			h += 12
		}
		return h, nil
	case f.has(fHour):
		if f.hour > 23 {
			return 0, fmt.Errorf("hour %d out of range", f.hour)
		}
		return f.hour, nil
	}
	if f.has(fMeridiem) && f.pm {
		return 12, nil
	}
	return 0, nil
}

func daysInYear(year int) int {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
}

// isoWeekDate returns the date of ISO weekday wd in week of year.
func isoWeekDate(year, week, wd int, loc *time.Location) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, loc)
	monday := jan4.AddDate(0, 0, 1-isoWeekday(jan4.Weekday()))
	return monday.AddDate(0, 0, (week-1)*7+wd-1)
}
