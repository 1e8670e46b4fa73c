package core

import (
	"errors"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var (
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidScope = errors.New("scope must be one of W, M, Y, ALL")
)

type (
	// Date is a calendar date at day granularity. It marshals as YYYY-MM-DD.
	Date struct {
		time.Time
	}

	// Transaction is a single ledger row. The sign convention of Amount is
	// report-specific: the events view treats positive amounts as expenses,
	// category reports sum whatever matches the category.
	Transaction struct {
		Date        Date    `json:"date"`
		Category    string  `json:"category"`
		Amount      float64 `json:"amount"`
		Description string  `json:"description,omitempty"`
	}
)

// NewDate creates a Date from year, month and day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// DateOf truncates an arbitrary timestamp to its calendar date in UTC.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// AddDays returns the date shifted by the given number of days.
func (d Date) AddDays(days int) Date {
	return Date{Time: d.AddDate(0, 0, days)}
}

// Before reports whether d is strictly before other, at day granularity.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d is strictly after other, at day granularity.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// YearMonth returns the YYYY-MM label of the date.
func (d Date) YearMonth() string {
	return d.Format("2006-01")
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return errors.New("empty category")
	}
	return nil
}
