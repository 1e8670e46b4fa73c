package savings

import (
	"errors"
	"testing"
)

func TestInvestment(t *testing.T) {
	ops := []Operation{{Date: "2024-03-07", Amount: 123}}

	tests := []struct {
		step int
		want float64
	}{
		{step: 10, want: 7.0},
		{step: 50, want: 27.0},
		{step: 100, want: 77.0},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			got, err := Investment("2024-03", ops, tt.step)
			if err != nil {
				t.Fatalf("Investment error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Investment(step=%d) = %v, want %v", tt.step, got, tt.want)
			}
		})
	}
}

func TestInvestmentExactMultiple(t *testing.T) {
	ops := []Operation{{Date: "2024-03-07", Amount: 200}}
	got, err := Investment("2024-03", ops, 100)
	if err != nil {
		t.Fatalf("Investment error: %v", err)
	}
	if got != 0 {
		t.Errorf("exact multiple contributed %v, want 0", got)
	}
}

func TestInvestmentSkipsNonQualifyingRows(t *testing.T) {
	ops := []Operation{
		{Date: "2024-03-07", Amount: 123},
		{Date: "2024-04-01", Amount: 999},  // wrong month
		{Date: "07.03.2024", Amount: 999},  // unparseable date
		{Date: "2024-03-08", Amount: -500}, // refund
		{Date: "2024-03-09", Amount: 0},    // not a purchase
	}

	got, err := Investment("2024-03", ops, 10)
	if err != nil {
		t.Fatalf("Investment error: %v", err)
	}
	if got != 7.0 {
		t.Errorf("Investment = %v, want 7.0", got)
	}
}

func TestInvestmentRounding(t *testing.T) {
	ops := []Operation{
		{Date: "2024-03-07", Amount: 1.15},
		{Date: "2024-03-08", Amount: 2.25},
	}
	got, err := Investment("2024-03", ops, 10)
	if err != nil {
		t.Fatalf("Investment error: %v", err)
	}
	if got != 16.6 {
		t.Errorf("Investment = %v, want 16.6", got)
	}
}

func TestInvestmentInvalidArguments(t *testing.T) {
	if _, err := Investment("2024-03", nil, 25); !errors.Is(err, ErrInvalidStep) {
		t.Errorf("step error = %v, want ErrInvalidStep", err)
	}
	if _, err := Investment("март 2024", nil, 10); !errors.Is(err, ErrInvalidMonth) {
		t.Errorf("month error = %v, want ErrInvalidMonth", err)
	}
	if _, err := Investment("2024-3", nil, 10); !errors.Is(err, ErrInvalidMonth) {
		t.Errorf("month error = %v, want ErrInvalidMonth", err)
	}
}

func TestInvestmentEmptyOperations(t *testing.T) {
	got, err := Investment("2024-03", nil, 10)
	if err != nil {
		t.Fatalf("Investment error: %v", err)
	}
	if got != 0 {
		t.Errorf("Investment = %v, want 0", got)
	}
}
