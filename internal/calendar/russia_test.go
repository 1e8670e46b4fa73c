package calendar

import (
	"testing"
	"time"
)

func TestRussiaIsWorkingDay(t *testing.T) {
	cal := Russia{}

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{name: "regular weekday", date: time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC), want: true},
		{name: "saturday", date: time.Date(2024, 4, 13, 0, 0, 0, 0, time.UTC), want: false},
		{name: "new year holiday", date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), want: false},
		{name: "victory day", date: time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC), want: false},
		{name: "defender of the fatherland day", date: time.Date(2024, 2, 23, 0, 0, 0, 0, time.UTC), want: false},
		{name: "day after a holiday", date: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cal.IsWorkingDay(tt.date)
			if err != nil {
				t.Fatalf("IsWorkingDay error: %v", err)
			}
			if got != tt.want {
				t.Errorf("IsWorkingDay(%s) = %v, want %v", tt.date.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}
