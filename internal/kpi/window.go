// Package kpi holds the date-window and request rules of KPI target
// definitions: start dates snap to the start of a day, end dates to its
// end, and new targets cannot start in the past.
package kpi

import (
	"github.com/go-playground/validator/v10"

	"github.com/metacatalog/timefmt/internal/datetime"
)

// Window is the start/end pair of a KPI target in epoch milliseconds.
// A nil bound is unset.
type Window struct {
	Start *int64 `json:"startDate,omitempty"`
	End   *int64 `json:"endDate,omitempty"`
}

// Planner applies window rules in the formatter's zone.
type Planner struct {
	dt       *datetime.Formatter
	validate *validator.Validate
}

// NewPlanner creates a Planner that reads days and "today" from f.
func NewPlanner(f *datetime.Formatter) *Planner {
	return &Planner{dt: f, validate: newValidator()}
}

// ApplyStart sets the start to the beginning of ms's day. An end that now
// precedes the start is cleared.
func (p *Planner) ApplyStart(w Window, ms int64) Window {
	start := p.dt.StartOfLocalDay(ms)
	w.Start = &start
	if w.End != nil && start > *w.End {
		w.End = nil
	}
	return w
}

// ApplyEnd sets the end to the last millisecond of ms's day. When that day
// precedes the start, the start moves to the beginning of the end's day.
func (p *Planner) ApplyEnd(w Window, ms int64) Window {
	end := p.dt.EndOfLocalDay(ms)
	w.End = &end
	if w.Start != nil && ms < *w.Start {
		start := p.dt.StartOfLocalDay(ms)
		w.Start = &start
	}
	return w
}

// IsSelectableDate reports whether ms may be picked as a window bound:
// any instant from the start of today on.
func (p *Planner) IsSelectableDate(ms int64) bool {
	return ms >= p.dt.StartOfToday()
}
