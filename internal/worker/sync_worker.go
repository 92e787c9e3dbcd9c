// Package worker replays locally stored transactions into the spreadsheet.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/ledger"
	"fintrack/internal/storage"
)

// SyncWorker moves pending transactions from SQLite into the ledger
// backend, driven by queue messages with a periodic sweep as backup.
type SyncWorker struct {
	storage   *storage.SQLiteRepository
	ledger    ledger.TransactionAppender
	batchSize int
}

func NewSyncWorker(repo *storage.SQLiteRepository, appender ledger.TransactionAppender, batchSize int) *SyncWorker {
	return &SyncWorker{
		storage:   repo,
		ledger:    appender,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes a single sync message from the queue.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message", "id", msg.ID)

	pending, err := w.storage.GetTransaction(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get transaction from storage: %w", err)
	}

	if err := w.syncToLedger(ctx, pending.ID, pending.Tx); err != nil {
		return fmt.Errorf("sync transaction to ledger: %w", err)
	}

	return nil
}

// ProcessPending sweeps transactions that never got a queue message, for
// example after a broker outage with the circuit breaker open.
func (w *SyncWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.storage.GetPendingSync(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending transactions: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending transactions", "count", len(pending))

	for _, p := range pending {
		if err := w.syncToLedger(ctx, p.ID, p.Tx); err != nil {
			slog.ErrorContext(ctx, "Failed to sync transaction", "id", p.ID, "error", err)
			continue
		}
	}

	return nil
}

// StartupSyncCheck drains the backlog accumulated during worker downtime.
// It uses a larger batch than the periodic sweep.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	pending, err := w.storage.GetPendingSync(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending transactions for startup check: %w", err)
	}

	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending transactions found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending transactions on startup, processing...",
		"count", len(pending))

	successCount := 0
	errorCount := 0

	for _, p := range pending {
		if err := w.syncToLedger(ctx, p.ID, p.Tx); err != nil {
			slog.ErrorContext(ctx, "Failed to sync transaction during startup",
				"id", p.ID, "error", err)
			errorCount++
			continue
		}
		successCount++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(pending),
		"synced", successCount,
		"errors", errorCount)

	return nil
}

func (w *SyncWorker) syncToLedger(ctx context.Context, id int64, tx core.Transaction) error {
	ref, err := w.ledger.Append(ctx, tx)
	if err != nil {
		if markErr := w.storage.MarkSyncError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", id, "error", markErr)
		}
		return fmt.Errorf("append to ledger: %w", err)
	}

	// The sync already succeeded; a failed status update is only logged.
	if err := w.storage.MarkSynced(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to mark as synced", "id", id, "error", err)
	}

	slog.InfoContext(ctx, "Successfully synced transaction",
		"id", id,
		"ledger_ref", ref,
		"date", tx.Date,
		"amount_cents", tx.Amount.Cents)

	return nil
}
