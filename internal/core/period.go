package core

import (
	"fmt"
	"time"
)

// Scope selects the period granularity for the events view.
type Scope string

const (
	ScopeWeek  Scope = "W"
	ScopeMonth Scope = "M"
	ScopeYear  Scope = "Y"
	ScopeAll   Scope = "ALL"
)

// windowDays is the fixed trailing/forward window used by the category,
// workday and weekly reports.
const windowDays = 90

// epochFloor is the lower bound of the ALL scope.
var epochFloor = NewDate(1970, 1, 1)

// Period is an inclusive date window: Start <= date <= End.
type Period struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

// Contains reports whether the date falls inside the period, bounds included.
func (p Period) Contains(d Date) bool {
	return !d.Before(p.Start) && !d.After(p.End)
}

// ResolvePeriod computes the window for a reference date and scope.
//
//	W   — Monday of the reference week through Sunday.
//	M   — first day of the reference month through the reference date.
//	Y   — January 1st of the reference year through the reference date.
//	ALL — 1970-01-01 through the reference date.
func ResolvePeriod(ref Date, scope Scope) (Period, error) {
	switch scope {
	case ScopeWeek:
		// time.Weekday is Sunday-based; shift to Monday-first.
		offset := (int(ref.Weekday()) + 6) % 7
		start := ref.AddDays(-offset)
		return Period{Start: start, End: start.AddDays(6)}, nil
	case ScopeMonth:
		return Period{Start: NewDate(ref.Year(), int(ref.Month()), 1), End: ref}, nil
	case ScopeYear:
		return Period{Start: NewDate(ref.Year(), 1, 1), End: ref}, nil
	case ScopeAll:
		return Period{Start: epochFloor, End: ref}, nil
	default:
		return Period{}, fmt.Errorf("%w: got %q", ErrInvalidScope, scope)
	}
}

// ForwardWindow is the 90-day window starting at an explicit date, used by the
// category and workday reports.
func ForwardWindow(start Date) Period {
	return Period{Start: start, End: start.AddDays(windowDays)}
}

// TrailingWindow is the 90-day window ending at the given date, used by the
// weekly distribution report.
func TrailingWindow(end Date) Period {
	return Period{Start: end.AddDays(-windowDays), End: end}
}

// Today returns the current calendar date in UTC.
func Today() Date {
	return DateOf(time.Now().UTC())
}
