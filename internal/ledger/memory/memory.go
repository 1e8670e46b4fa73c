// Package memory provides an in-memory transaction store, used as the
// default backend and in tests. It can be seeded from a CSV export.
package memory

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"

	"finreport/internal/core"
)

// Store keeps transactions in memory. Safe for concurrent use.
type Store struct {
	mu  sync.RWMutex
	txs []core.Transaction
}

// New returns an empty store preloaded with the given transactions.
func New(txs ...core.Transaction) *Store {
	s := &Store{txs: make([]core.Transaction, len(txs))}
	copy(s.txs, txs)
	return s
}

// NewFromFile loads a store from a CSV file with rows of the form
// date,category,amount,description. A header row is skipped when its first
// field does not parse as a date.
func NewFromFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 4
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	s := New()
	for i, rec := range records {
		date, err := core.ParseDate(rec[0])
		if err != nil {
			if i == 0 {
				continue // header
			}
			return nil, fmt.Errorf("seed row %d: %w", i+1, err)
		}
		amount, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, fmt.Errorf("seed row %d: parse amount: %w", i+1, err)
		}
		s.txs = append(s.txs, core.Transaction{
			Date:        date,
			Category:    rec[1],
			Amount:      amount,
			Description: rec[3],
		})
	}
	return s, nil
}

// ListTransactions returns a copy of the stored transactions.
func (s *Store) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Transaction, len(s.txs))
	copy(out, s.txs)
	return out, nil
}

// Append stores a transaction after validating it.
func (s *Store) Append(ctx context.Context, tx core.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = append(s.txs, tx)
	return nil
}
