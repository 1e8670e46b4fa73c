// Package reports implements the period-based aggregation reports: weekly
// spending distribution, category spending and workday/weekend split.
//
// Report functions are pure: they take an immutable transaction snapshot and
// return a fresh result. Data absence is a typed, recoverable error
// (NoDataError) converted to the {"error": ...} payload at the boundary.
package reports

import (
	"errors"
	"fmt"
	"sort"

	"finreport/internal/core"
)

// ruWeekdays are the localized weekday labels, Monday-first. They are part of
// the external report contract.
var ruWeekdays = [7]string{
	"Понедельник",
	"Вторник",
	"Среда",
	"Четверг",
	"Пятница",
	"Суббота",
	"Воскресенье",
}

// internalError is the message reported when an unexpected failure is
// recovered at the report boundary.
const internalError = "Internal Server Error"

// NoDataError signals that the filtered window holds no transactions. It is a
// user-visible outcome, not a failure.
type NoDataError struct {
	Message string
}

func (e *NoDataError) Error() string { return e.Message }

// ErrorPayload is the structured form a report takes when no data is
// available or an internal failure was recovered.
type ErrorPayload struct {
	Error string `json:"error"`
}

// Payload converts a report result and its error into the external payload:
// data as-is on success, {"error": <message>} for NoDataError, and a generic
// internal error otherwise.
func Payload(v any, err error) any {
	if err == nil {
		return v
	}
	var nd *NoDataError
	if errors.As(err, &nd) {
		return ErrorPayload{Error: nd.Message}
	}
	return ErrorPayload{Error: internalError}
}

// InternalErrorPayload is the payload used when a report panics or its data
// source fails.
func InternalErrorPayload() ErrorPayload {
	return ErrorPayload{Error: internalError}
}

type (
	// WeeklyReport is the spending distribution across weekdays over the
	// trailing 90-day window.
	WeeklyReport struct {
		Period             core.Period        `json:"period"`
		Total              float64            `json:"total"`
		WeeklyDistribution map[string]float64 `json:"weekly_distribution"`
		DaysDetails        []DayDetail        `json:"days_details"`
	}

	// DayDetail is the per-date sum feeding the weekly distribution.
	DayDetail struct {
		Date      core.Date `json:"date"`
		DayOfWeek string    `json:"day_of_week"`
		Amount    float64   `json:"amount"`
	}

	// CategoryReport aggregates one category over a forward 90-day window.
	CategoryReport struct {
		Category         string              `json:"category"`
		Period           core.Period         `json:"period"`
		Total            float64             `json:"total"`
		MonthlyBreakdown map[string]float64  `json:"monthly_breakdown"`
		Transactions     []TransactionDetail `json:"transactions"`
	}

	// TransactionDetail is one matching row with its date normalized.
	TransactionDetail struct {
		Date   core.Date `json:"date"`
		Amount float64   `json:"amount"`
	}

	// WorkdayReport splits category spending between business days and
	// weekends/holidays.
	WorkdayReport struct {
		Category      string        `json:"category"`
		Period        core.Period   `json:"period"`
		TotalWorkdays float64       `json:"total_workdays"`
		TotalWeekends float64       `json:"total_weekends"`
		DailyDetails  []DailyDetail `json:"daily_details"`
	}

	// DailyDetail is the per-date sum with its business-day classification.
	DailyDetail struct {
		Date      core.Date `json:"date"`
		IsWorkday bool      `json:"is_workday"`
		Amount    float64   `json:"amount"`
	}
)

// weekdayLabel maps a date to its Monday-first localized label.
func weekdayLabel(d core.Date) string {
	return ruWeekdays[(int(d.Weekday())+6)%7]
}

// sumByDate groups transactions by calendar date and sums amounts, returning
// the dates in ascending order.
func sumByDate(txs []core.Transaction) ([]core.Date, map[core.Date]float64) {
	sums := make(map[core.Date]float64, len(txs))
	dates := make([]core.Date, 0, len(txs))
	for _, t := range txs {
		if _, seen := sums[t.Date]; !seen {
			dates = append(dates, t.Date)
		}
		sums[t.Date] += t.Amount
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, sums
}

// Weekly builds the weekday spending distribution for the 90 days ending at
// end. All seven weekday labels are always present; an empty window yields
// zero amounts and no day details.
func Weekly(txs []core.Transaction, end core.Date) (WeeklyReport, error) {
	period := core.TrailingWindow(end)
	filtered := core.FilterByPeriod(txs, period)

	distribution := make(map[string]float64, len(ruWeekdays))
	for _, day := range ruWeekdays {
		distribution[day] = 0
	}

	report := WeeklyReport{
		Period:             period,
		WeeklyDistribution: distribution,
		DaysDetails:        make([]DayDetail, 0, len(filtered)),
	}
	if len(filtered) == 0 {
		return report, nil
	}

	// Group by date first so several transactions on one day collapse into a
	// single daily sum before the weekday rollup.
	dates, daily := sumByDate(filtered)
	for _, d := range dates {
		label := weekdayLabel(d)
		amount := daily[d]
		distribution[label] += amount
		report.Total += amount
		report.DaysDetails = append(report.DaysDetails, DayDetail{
			Date:      d,
			DayOfWeek: label,
			Amount:    amount,
		})
	}
	return report, nil
}

// CategorySpending aggregates the category's transactions over the 90 days
// starting at start, keyed by YYYY-MM month labels.
func CategorySpending(txs []core.Transaction, category string, start core.Date) (CategoryReport, error) {
	period := core.ForwardWindow(start)
	filtered := core.FilterByCategoryPeriod(txs, category, period)
	if len(filtered) == 0 {
		return CategoryReport{}, &NoDataError{
			Message: fmt.Sprintf("Нет данных по категории '%s'", category),
		}
	}

	report := CategoryReport{
		Category:         category,
		Period:           period,
		MonthlyBreakdown: make(map[string]float64),
		Transactions:     make([]TransactionDetail, 0, len(filtered)),
	}
	for _, t := range filtered {
		report.Total += t.Amount
		report.MonthlyBreakdown[t.Date.YearMonth()] += t.Amount
		report.Transactions = append(report.Transactions, TransactionDetail{
			Date:   t.Date,
			Amount: t.Amount,
		})
	}
	return report, nil
}

// WorkdayWeekend splits the category's daily sums between business days and
// weekends over the 90 days starting at start. The holiday calendar is
// optional; see IsBusinessDay for the fail-open rule.
func WorkdayWeekend(txs []core.Transaction, category string, start core.Date, cal HolidayCalendar) (WorkdayReport, error) {
	period := core.ForwardWindow(start)
	filtered := core.FilterByCategoryPeriod(txs, category, period)
	if len(filtered) == 0 {
		return WorkdayReport{}, &NoDataError{Message: "Нет данных за указанный период"}
	}

	report := WorkdayReport{
		Category:     category,
		Period:       period,
		DailyDetails: make([]DailyDetail, 0, len(filtered)),
	}
	dates, daily := sumByDate(filtered)
	for _, d := range dates {
		amount := daily[d]
		workday := IsBusinessDay(d, cal)
		if workday {
			report.TotalWorkdays += amount
		} else {
			report.TotalWeekends += amount
		}
		report.DailyDetails = append(report.DailyDetails, DailyDetail{
			Date:      d,
			IsWorkday: workday,
			Amount:    amount,
		})
	}
	return report, nil
}
