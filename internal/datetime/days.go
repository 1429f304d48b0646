package datetime

import (
	"time"

	"github.com/metacatalog/timefmt/internal/domain"
)

// StartOfDayInMillis floors ms to 00:00:00.000 UTC of its day.
func StartOfDayInMillis(ms int64) int64 {
	return ms - floorMod(ms, domain.MillisPerDay)
}

// EndOfDayInMillis raises ms to 23:59:59.999 UTC of its day.
func EndOfDayInMillis(ms int64) int64 {
	return StartOfDayInMillis(ms) + domain.MillisPerDay - 1
}

// StartOfLocalDay floors ms to midnight of its calendar day in f's zone.
func (f *Formatter) StartOfLocalDay(ms int64) int64 {
	y, m, d := time.UnixMilli(ms).In(f.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, f.loc).UnixMilli()
}

// EndOfLocalDay raises ms to the last millisecond of its calendar day in
// f's zone.
func (f *Formatter) EndOfLocalDay(ms int64) int64 {
	y, m, d := time.UnixMilli(ms).In(f.loc).Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, f.loc).UnixMilli() - 1
}

// StartOfToday is StartOfLocalDay of now.
func (f *Formatter) StartOfToday() int64 {
	return f.StartOfLocalDay(f.clock.Now().UnixMilli())
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// EpochMillisForPastDays returns now minus n calendar days in f's zone.
func (f *Formatter) EpochMillisForPastDays(n int) int64 {
	return f.now().AddDate(0, 0, -n).UnixMilli()
}

// EpochMillisForFutureDays returns now plus n calendar days in f's zone.
func (f *Formatter) EpochMillisForFutureDays(n int) int64 {
	return f.now().AddDate(0, 0, n).UnixMilli()
}

// UnixSecondsForPastDays is EpochMillisForPastDays in whole seconds.
func (f *Formatter) UnixSecondsForPastDays(n int) int64 {
	return f.now().AddDate(0, 0, -n).Unix()
}

// DaysRemaining returns the whole days from now until ms, negative for past
// instants and truncated toward zero.
func (f *Formatter) DaysRemaining(ms int64) int64 {
	return diffUnitDays(f.now(), time.UnixMilli(ms).In(f.loc))
}

// civilDays numbers t's calendar date in its own zone as days since
// 1970-01-01.
func civilDays(t time.Time) int64 {
	y, m, d := t.Date()
	return daysFromCivil(int64(y), int64(m), int64(d))
}

// daysFromCivil is the proleptic Gregorian day number of y-m-d relative to
// 1970-01-01.
func daysFromCivil(y, m, d int64) int64 {
	if m <= 2 {
		y--
	}
	era := y / 400
	if y < 0 && y%400 != 0 {
		era--
	}
	yoe := y - era*400
	mp := (m + 9) % 12
	doy := (153*mp+2)/5 + d - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}
