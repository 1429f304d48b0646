package datetime

import (
	"time"

	"github.com/metacatalog/timefmt/internal/domain"
	"github.com/metacatalog/timefmt/internal/locale"
)

var (
	relativeUnits = []locale.Unit{locale.Year, locale.Month, locale.Day, locale.Hour, locale.Minute, locale.Second}
	calendarUnits = []locale.Unit{locale.Year, locale.Month, locale.Day}
)

// RelativeTime phrases ms against now using the largest unit with at least
// one whole step, e.g. "3 hours ago" or "in 2 days". Partial units are
// truncated.
func (f *Formatter) RelativeTime(ms *int64) string {
	t, ok := f.instant(ms)
	if !ok {
		return ""
	}
	now := f.now()
	for _, u := range relativeUnits {
		if n := diffUnit(now, t, u); n != 0 {
			return f.cal.Phrase(n, false, u, false)
		}
	}
	return f.cal.Phrase(0, t.Before(now), locale.Second, false)
}

// RelativeCalendar phrases the calendar distance from base (now when nil)
// to ms in years, months or days, naming the nearest ones ("Yesterday",
// "Next month") and capitalizing the result.
func (f *Formatter) RelativeCalendar(ms int64, base *int64) string {
	if !domain.ValidMillis(ms) {
		return ""
	}
	t := time.UnixMilli(ms).In(f.loc)
	from := f.now()
	if base != nil {
		b, ok := f.instant(base)
		if !ok {
			return ""
		}
		from = b
	}

	for _, u := range calendarUnits {
		if n := calendarDiff(from, t, u); n != 0 {
			return f.cal.Capitalize(f.cal.Phrase(n, false, u, true))
		}
	}
	return f.cal.Capitalize(f.cal.Phrase(0, t.Before(from), locale.Day, true))
}

// calendarDiff counts unit boundaries crossed between from and to,
// ignoring everything below unit.
func calendarDiff(from, to time.Time, u locale.Unit) int64 {
	switch u {
	case locale.Year:
		return int64(to.Year() - from.Year())
	case locale.Month:
		return monthIndex(to) - monthIndex(from)
	default:
		return civilDays(to) - civilDays(from)
	}
}

// diffUnit returns the whole units elapsed from from to to, negative when
// to precedes from. Years, months and days follow the calendar; a month
// added to Jan 31 lands on the last day of February.
func diffUnit(from, to time.Time, u locale.Unit) int64 {
	if to.Before(from) {
		return -diffUnit(to, from, u)
	}
	switch u {
	case locale.Year:
		return diffMonths(from, to) / 12
	case locale.Month:
		return diffMonths(from, to)
	case locale.Day:
		return diffUnitDays(from, to)
	case locale.Hour:
		return (to.UnixMilli() - from.UnixMilli()) / domain.MillisPerHour
	case locale.Minute:
		return (to.UnixMilli() - from.UnixMilli()) / domain.MillisPerMinute
	default:
		return (to.UnixMilli() - from.UnixMilli()) / domain.MillisPerSecond
	}
}

func diffUnitDays(from, to time.Time) int64 {
	if to.Before(from) {
		return -diffUnitDays(to, from)
	}
	n := civilDays(to) - civilDays(from.In(to.Location()))
	if n > 0 && from.AddDate(0, 0, int(n)).After(to) {
		n--
	}
	return n
}

func diffMonths(from, to time.Time) int64 {
	n := monthIndex(to) - monthIndex(from)
	if n > 0 && addMonthsClamped(from, n).After(to) {
		n--
	}
	return n
}

func monthIndex(t time.Time) int64 {
	return int64(t.Year())*12 + int64(t.Month()) - 1
}

// addMonthsClamped adds n months keeping the day of month when it exists
// and using the last day of the target month otherwise.
func addMonthsClamped(t time.Time, n int64) time.Time {
	idx := monthIndex(t) + n
	year := idx / 12
	month := idx%12 + 1
	if idx < 0 && idx%12 != 0 {
		year--
		month += 12
	}
	day := t.Day()
	if last := daysIn(int(year), time.Month(month)); day > last {
		day = last
	}
	return time.Date(int(year), time.Month(month), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, m time.Month) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
