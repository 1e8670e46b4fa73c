// Package events builds the dashboard "events" view: expense and income
// aggregates over a scope-selected window with a top-N category breakdown.
package events

import (
	"math"
	"sort"

	"finreport/internal/core"
)

// topN is the number of leading categories shown before the overflow bucket.
const topN = 7

// overflowLabel is the synthetic category holding everything past the top-N
// cutoff.
const overflowLabel = "Остальное"

// transferCategories are the transfer/cash-like categories reported
// separately within expenses.
var transferCategories = map[string]struct{}{
	"Наличные": {},
	"Переводы": {},
}

type (
	// Entry is one category with its rounded amount.
	Entry struct {
		Category string `json:"category"`
		Amount   int64  `json:"amount"`
	}

	// Expenses is the spending side of the view.
	Expenses struct {
		TotalAmount      int64   `json:"total_amount"`
		Main             []Entry `json:"main"`
		TransfersAndCash []Entry `json:"transfers_and_cash"`
	}

	// Income is the earning side of the view.
	Income struct {
		TotalAmount int64   `json:"total_amount"`
		Main        []Entry `json:"main"`
	}

	// Summary is the aggregate part of the events view. Market data is
	// attached by the caller, outside the pure computation.
	Summary struct {
		Expenses Expenses `json:"expenses"`
		Income   Income   `json:"income"`
	}
)

// Compose aggregates the events view for the window resolved from the
// reference date and scope. Positive amounts are expenses; non-positive
// amounts are income, sign-flipped to positive.
func Compose(txs []core.Transaction, ref core.Date, scope core.Scope) (Summary, error) {
	period, err := core.ResolvePeriod(ref, scope)
	if err != nil {
		return Summary{}, err
	}
	window := core.FilterByPeriod(txs, period)

	var expenses, income []core.Transaction
	for _, t := range window {
		if t.Amount > 0 {
			expenses = append(expenses, t)
		} else {
			t.Amount = -t.Amount
			income = append(income, t)
		}
	}

	return Summary{
		Expenses: Expenses{
			TotalAmount:      roundedTotal(expenses),
			Main:             topMain(expenses),
			TransfersAndCash: transfersAndCash(expenses),
		},
		Income: Income{
			TotalAmount: roundedTotal(income),
			Main:        topMain(income),
		},
	}, nil
}

func roundedTotal(txs []core.Transaction) int64 {
	if len(txs) == 0 {
		return 0
	}
	return roundAmount(core.SumAmounts(txs))
}

func roundAmount(v float64) int64 {
	return int64(math.Round(v))
}

// sumByCategory groups amounts by category, keeping first-seen order so that
// equal sums stay deterministic after the stable sort.
func sumByCategory(txs []core.Transaction) ([]string, map[string]float64) {
	sums := make(map[string]float64, len(txs))
	order := make([]string, 0, len(txs))
	for _, t := range txs {
		if _, seen := sums[t.Category]; !seen {
			order = append(order, t.Category)
		}
		sums[t.Category] += t.Amount
	}
	return order, sums
}

// topMain returns the top-N categories by summed amount, descending, plus an
// overflow entry when the remaining tail is strictly positive.
func topMain(txs []core.Transaction) []Entry {
	entries := make([]Entry, 0, topN+1)
	if len(txs) == 0 {
		return entries
	}

	order, sums := sumByCategory(txs)
	sort.SliceStable(order, func(i, j int) bool {
		return sums[order[i]] > sums[order[j]]
	})

	head := order
	if len(head) > topN {
		head = head[:topN]
	}
	for _, cat := range head {
		entries = append(entries, Entry{Category: cat, Amount: roundAmount(sums[cat])})
	}

	var tail float64
	for _, cat := range order[len(head):] {
		tail += sums[cat]
	}
	if tail > 0 {
		entries = append(entries, Entry{Category: overflowLabel, Amount: roundAmount(tail)})
	}
	return entries
}

// transfersAndCash aggregates the transfer/cash categories among expenses,
// descending by amount, without a cutoff.
func transfersAndCash(expenses []core.Transaction) []Entry {
	subset := make([]core.Transaction, 0, len(expenses))
	for _, t := range expenses {
		if _, ok := transferCategories[t.Category]; ok {
			subset = append(subset, t)
		}
	}

	entries := make([]Entry, 0, len(transferCategories))
	if len(subset) == 0 {
		return entries
	}
	order, sums := sumByCategory(subset)
	sort.SliceStable(order, func(i, j int) bool {
		return sums[order[i]] > sums[order[j]]
	})
	for _, cat := range order {
		entries = append(entries, Entry{Category: cat, Amount: roundAmount(sums[cat])})
	}
	return entries
}
