// Package calendar provides holiday calendars injectable into the workday
// classifier.
package calendar

import "time"

// Russia is a holiday calendar covering the fixed-date federal holidays of
// the Russian Federation. Regional holidays and year-specific transfers of
// days off are out of scope.
type Russia struct{}

// federal holidays by MM-DD.
var ruHolidays = map[string]struct{}{
	"01-01": {}, "01-02": {}, "01-03": {}, "01-04": {},
	"01-05": {}, "01-06": {}, "01-07": {}, "01-08": {},
	"02-23": {},
	"03-08": {},
	"05-01": {},
	"05-09": {},
	"06-12": {},
	"11-04": {},
}

// IsWorkingDay reports whether the date is a working day: a weekday that is
// not a federal holiday.
func (Russia) IsWorkingDay(t time.Time) (bool, error) {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false, nil
	}
	if _, holiday := ruHolidays[t.Format("01-02")]; holiday {
		return false, nil
	}
	return true, nil
}
