// Package savings implements the round-up ("инвесткопилка") calculation:
// for every qualifying purchase in a target month, the gap between the
// amount and the next multiple of the rounding step is set aside.
package savings

import (
	"errors"
	"math"
	"time"
)

var (
	ErrInvalidStep  = errors.New("step must be one of 10, 50, 100")
	ErrInvalidMonth = errors.New("month must be in YYYY-MM format")
)

// Operation is a raw bank-export record. Field names follow the export
// format, so malformed rows unmarshal without failing the whole batch.
type Operation struct {
	Date   string  `json:"Дата операции"`
	Amount float64 `json:"Сумма операции"`
}

// Investment sums round-up increments for the target month.
//
// The step and month are validated before any row is touched. Rows with an
// unparseable date, a date outside the target month, or a non-positive
// amount are skipped silently: a single corrupt record never aborts the
// computation. The result is rounded to 2 decimal places.
func Investment(month string, ops []Operation, step int) (float64, error) {
	switch step {
	case 10, 50, 100:
	default:
		return 0, ErrInvalidStep
	}
	target, err := time.Parse("2006-01", month)
	if err != nil {
		return 0, ErrInvalidMonth
	}

	var total float64
	for _, op := range ops {
		date, err := time.Parse("2006-01-02", op.Date)
		if err != nil {
			continue
		}
		if date.Year() != target.Year() || date.Month() != target.Month() {
			continue
		}
		// Only strictly positive purchase amounts qualify.
		if op.Amount <= 0 {
			continue
		}
		remainder := math.Mod(op.Amount, float64(step))
		if remainder != 0 {
			total += float64(step) - remainder
		}
	}
	return math.Round(total*100) / 100, nil
}
