// Package ledger defines the ports implemented by the monthly ledger
// storage adapters.
package ledger

import (
	"context"
	"errors"

	"fintrack/internal/core"
)

// Ports for outbound adapters.
type (
	// TransactionAppender persists one transaction into the monthly
	// container derived from the transaction's own date, creating the
	// container on first write.
	TransactionAppender interface {
		Append(ctx context.Context, tx core.Transaction) (rowRef string, err error)
	}

	// TransactionLister reads all transactions of one period's container.
	// A period that was never written to yields an empty slice, not an
	// error.
	TransactionLister interface {
		ListMonth(ctx context.Context, p core.Period) ([]core.Transaction, error)
	}
)

var (
	// ErrStorageUnavailable marks failures of the backing store itself:
	// unreachable service, rejected credentials, failed writes.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrMalformedRow marks a stored row that cannot be decoded into a
	// transaction.
	ErrMalformedRow = errors.New("malformed row")
)

// Header is the fixed column order of every monthly container. Changing it
// would corrupt reads of historical containers.
var Header = []string{"Date", "Name", "Type", "Category", "Amount", "Description"}
