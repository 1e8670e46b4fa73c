package storage

import (
	"context"
	"path/filepath"
	"testing"

	"finreport/internal/core"
)

func newTestRepository(t *testing.T) *SQLiteRepository {
	t.Helper()

	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository error: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestRepositoryAppendAndList(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	txs := []core.Transaction{
		{Date: core.NewDate(2024, 6, 12), Category: "Еда", Amount: 500.5, Description: "обед"},
		{Date: core.NewDate(2024, 6, 1), Category: "Транспорт", Amount: 120},
	}
	for _, tx := range txs {
		if err := repo.Append(ctx, tx); err != nil {
			t.Fatalf("Append error: %v", err)
		}
	}

	got, err := repo.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("ListTransactions error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d transactions, want 2", len(got))
	}
	// Ordered by date.
	if got[0].Category != "Транспорт" {
		t.Errorf("first transaction = %+v, want the June 1st one", got[0])
	}
	if got[1].Amount != 500.5 || got[1].Description != "обед" {
		t.Errorf("second transaction = %+v", got[1])
	}
}

func TestRepositoryListByPeriod(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	dates := []core.Date{
		core.NewDate(2024, 5, 31),
		core.NewDate(2024, 6, 1),
		core.NewDate(2024, 6, 30),
		core.NewDate(2024, 7, 1),
	}
	for _, d := range dates {
		if err := repo.Append(ctx, core.Transaction{Date: d, Category: "Еда", Amount: 100}); err != nil {
			t.Fatalf("Append error: %v", err)
		}
	}

	got, err := repo.ListByPeriod(ctx, core.Period{
		Start: core.NewDate(2024, 6, 1),
		End:   core.NewDate(2024, 6, 30),
	})
	if err != nil {
		t.Fatalf("ListByPeriod error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d transactions, want 2", len(got))
	}
	for _, tx := range got {
		if tx.Date.Before(core.NewDate(2024, 6, 1)) || tx.Date.After(core.NewDate(2024, 6, 30)) {
			t.Errorf("transaction dated %s is outside the period", tx.Date)
		}
	}
}

func TestRepositoryAppendRejectsInvalid(t *testing.T) {
	repo := newTestRepository(t)
	if err := repo.Append(context.Background(), core.Transaction{Category: "Еда"}); err == nil {
		t.Error("expected a validation error for a zero date")
	}
}
