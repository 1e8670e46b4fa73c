package core

// FilterByPeriod returns the transactions whose date falls inside the period.
// The input slice is never mutated; the result is a fresh slice.
func FilterByPeriod(txs []Transaction, p Period) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if p.Contains(t.Date) {
			out = append(out, t)
		}
	}
	return out
}

// FilterByCategoryPeriod narrows to a single category inside the period.
func FilterByCategoryPeriod(txs []Transaction, category string, p Period) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if t.Category == category && p.Contains(t.Date) {
			out = append(out, t)
		}
	}
	return out
}

// SumAmounts adds up the amounts of the given transactions.
func SumAmounts(txs []Transaction) float64 {
	var total float64
	for _, t := range txs {
		total += t.Amount
	}
	return total
}
