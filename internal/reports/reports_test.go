package reports

import (
	"errors"
	"math"
	"testing"

	"finreport/internal/core"
)

// fixtureTransactions covers 2024-01-01 (Monday) through 2024-01-10.
func fixtureTransactions() []core.Transaction {
	return []core.Transaction{
		{Date: core.NewDate(2024, 1, 1), Category: "Еда", Amount: 1000},
		{Date: core.NewDate(2024, 1, 2), Category: "Еда", Amount: 1500},
		{Date: core.NewDate(2024, 1, 3), Category: "Еда", Amount: 2000},
		{Date: core.NewDate(2024, 1, 4), Category: "Еда", Amount: 500},
		{Date: core.NewDate(2024, 1, 5), Category: "Еда", Amount: 3000},
		{Date: core.NewDate(2024, 1, 6), Category: "Транспорт", Amount: 200},
		{Date: core.NewDate(2024, 1, 7), Category: "Транспорт", Amount: 200},
		{Date: core.NewDate(2024, 1, 8), Category: "Транспорт", Amount: 200},
		{Date: core.NewDate(2024, 1, 9), Category: "Транспорт", Amount: 200},
		{Date: core.NewDate(2024, 1, 10), Category: "Транспорт", Amount: 200},
	}
}

func TestWeekly(t *testing.T) {
	report, err := Weekly(fixtureTransactions(), core.NewDate(2024, 1, 10))
	if err != nil {
		t.Fatalf("Weekly error: %v", err)
	}

	if len(report.WeeklyDistribution) != 7 {
		t.Errorf("distribution has %d keys, want 7", len(report.WeeklyDistribution))
	}
	for _, label := range ruWeekdays {
		if _, ok := report.WeeklyDistribution[label]; !ok {
			t.Errorf("distribution is missing %q", label)
		}
	}

	if report.Total != 9000 {
		t.Errorf("total = %v, want 9000", report.Total)
	}
	var distSum float64
	for _, v := range report.WeeklyDistribution {
		distSum += v
	}
	if math.Abs(distSum-report.Total) > 1e-9 {
		t.Errorf("distribution sums to %v, total is %v", distSum, report.Total)
	}

	if len(report.DaysDetails) != 10 {
		t.Fatalf("got %d day details, want 10", len(report.DaysDetails))
	}
	// 2024-01-01 was a Monday.
	if report.DaysDetails[0].DayOfWeek != "Понедельник" {
		t.Errorf("first day label = %q, want Понедельник", report.DaysDetails[0].DayOfWeek)
	}
	// Mondays in the window: Jan 1 and Jan 8.
	if got := report.WeeklyDistribution["Понедельник"]; got != 1200 {
		t.Errorf("Monday sum = %v, want 1200", got)
	}
}

func TestWeeklyEmptyWindow(t *testing.T) {
	report, err := Weekly(fixtureTransactions(), core.NewDate(2030, 1, 1))
	if err != nil {
		t.Fatalf("Weekly error: %v", err)
	}
	if report.Total != 0 {
		t.Errorf("total = %v, want 0", report.Total)
	}
	if len(report.DaysDetails) != 0 {
		t.Errorf("got %d day details, want 0", len(report.DaysDetails))
	}
	if len(report.WeeklyDistribution) != 7 {
		t.Errorf("distribution has %d keys, want 7", len(report.WeeklyDistribution))
	}
	for label, v := range report.WeeklyDistribution {
		if v != 0 {
			t.Errorf("%s = %v, want 0", label, v)
		}
	}
}

func TestWeeklyGroupsSameDay(t *testing.T) {
	txs := []core.Transaction{
		{Date: core.NewDate(2024, 1, 1), Category: "Еда", Amount: 100},
		{Date: core.NewDate(2024, 1, 1), Category: "Кино", Amount: 250},
	}
	report, err := Weekly(txs, core.NewDate(2024, 1, 10))
	if err != nil {
		t.Fatalf("Weekly error: %v", err)
	}
	if len(report.DaysDetails) != 1 {
		t.Fatalf("got %d day details, want 1", len(report.DaysDetails))
	}
	if report.DaysDetails[0].Amount != 350 {
		t.Errorf("daily amount = %v, want 350", report.DaysDetails[0].Amount)
	}
}

func TestCategorySpending(t *testing.T) {
	report, err := CategorySpending(fixtureTransactions(), "Еда", core.NewDate(2024, 1, 1))
	if err != nil {
		t.Fatalf("CategorySpending error: %v", err)
	}

	if report.Category != "Еда" {
		t.Errorf("category = %q, want Еда", report.Category)
	}
	if report.Total != 8000 {
		t.Errorf("total = %v, want 8000", report.Total)
	}
	if got := report.MonthlyBreakdown["2024-01"]; got != 8000 {
		t.Errorf("January breakdown = %v, want 8000", got)
	}
	if len(report.Transactions) != 5 {
		t.Errorf("got %d transactions, want 5", len(report.Transactions))
	}
}

func TestCategorySpendingNoData(t *testing.T) {
	_, err := CategorySpending(fixtureTransactions(), "Кино", core.NewDate(2024, 1, 1))
	var nd *NoDataError
	if !errors.As(err, &nd) {
		t.Fatalf("error = %v, want NoDataError", err)
	}
	if want := "Нет данных по категории 'Кино'"; nd.Message != want {
		t.Errorf("message = %q, want %q", nd.Message, want)
	}
}

func TestWorkdayWeekend(t *testing.T) {
	// Without a holiday calendar only Saturdays and Sundays count as weekends.
	report, err := WorkdayWeekend(fixtureTransactions(), "Транспорт", core.NewDate(2024, 1, 1), nil)
	if err != nil {
		t.Fatalf("WorkdayWeekend error: %v", err)
	}

	// Jan 6 and 7 of 2024 were a weekend; Jan 8, 9, 10 were weekdays.
	if report.TotalWeekends != 400 {
		t.Errorf("weekend total = %v, want 400", report.TotalWeekends)
	}
	if report.TotalWorkdays != 600 {
		t.Errorf("workday total = %v, want 600", report.TotalWorkdays)
	}
	if len(report.DailyDetails) != 5 {
		t.Fatalf("got %d daily details, want 5", len(report.DailyDetails))
	}
	if report.DailyDetails[0].IsWorkday {
		t.Error("Jan 6 (Saturday) classified as a workday")
	}
}

func TestWorkdayWeekendNoData(t *testing.T) {
	_, err := WorkdayWeekend(fixtureTransactions(), "Транспорт", core.NewDate(2030, 1, 1), nil)
	var nd *NoDataError
	if !errors.As(err, &nd) {
		t.Fatalf("error = %v, want NoDataError", err)
	}
	if want := "Нет данных за указанный период"; nd.Message != want {
		t.Errorf("message = %q, want %q", nd.Message, want)
	}
}

func TestPayload(t *testing.T) {
	report := WeeklyReport{Total: 1}

	if got := Payload(report, nil); got.(WeeklyReport).Total != 1 {
		t.Error("successful payload was not passed through")
	}

	got := Payload(WeeklyReport{}, &NoDataError{Message: "Нет данных за указанный период"})
	ep, ok := got.(ErrorPayload)
	if !ok {
		t.Fatalf("payload type = %T, want ErrorPayload", got)
	}
	if ep.Error != "Нет данных за указанный период" {
		t.Errorf("error = %q", ep.Error)
	}

	got = Payload(WeeklyReport{}, errors.New("boom"))
	ep, ok = got.(ErrorPayload)
	if !ok {
		t.Fatalf("payload type = %T, want ErrorPayload", got)
	}
	if ep.Error != "Internal Server Error" {
		t.Errorf("error = %q, want Internal Server Error", ep.Error)
	}
}
