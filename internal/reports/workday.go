package reports

import (
	"time"

	"finreport/internal/core"
)

// HolidayCalendar is an optional capability that knows public holidays.
// Implementations may be absent (nil) or fail; both resolve to the
// permissive default.
type HolidayCalendar interface {
	IsWorkingDay(t time.Time) (bool, error)
}

// IsBusinessDay reports whether the date is a business day.
//
// Saturdays and Sundays are never business days, regardless of the calendar.
// For weekdays the calendar decides; a nil or failing calendar counts the day
// as working (fail-open), so calendar unavailability never blocks a report.
func IsBusinessDay(d core.Date, cal HolidayCalendar) bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	if cal == nil {
		return true
	}
	working, err := cal.IsWorkingDay(d.Time)
	if err != nil {
		return true
	}
	return working
}
