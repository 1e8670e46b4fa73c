// Package ledger defines the ports through which transaction data enters and
// leaves the application. Implementations live in subpackages and in
// internal/storage.
package ledger

import (
	"context"

	"finreport/internal/core"
)

// TransactionReader lists the transactions known to a backend.
type TransactionReader interface {
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
}

// TransactionWriter appends a transaction to a backend.
type TransactionWriter interface {
	Append(ctx context.Context, tx core.Transaction) error
}
