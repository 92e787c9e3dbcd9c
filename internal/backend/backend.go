// Package backend builds the configured ledger backend.
package backend

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"fintrack/internal/amqp"
	"fintrack/internal/config"
	"fintrack/internal/core"
	"fintrack/internal/ledger"
	gsheet "fintrack/internal/ledger/google"
	"fintrack/internal/ledger/memory"
	"fintrack/internal/storage"
)

// Backend is the full ledger surface a configured store provides.
type Backend interface {
	ledger.TransactionAppender
	ledger.TransactionLister
}

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Result bundles a backend with its cleanup.
type Result struct {
	Backend Backend
	Cleanup CleanupFunc
}

// New builds the backend selected by cfg.DataBackend: "sheets" talks to
// the spreadsheet directly, "sqlite" buffers writes locally for the sync
// worker, anything else is the in-memory store.
func New(ctx context.Context, cfg *config.Config) (*Result, error) {
	switch cfg.DataBackend {
	case "sheets":
		return newSheetsBackend(ctx, cfg)
	case "sqlite":
		return newSQLiteBackend(cfg)
	default:
		slog.Info("Initialized memory backend")
		return &Result{
			Backend: memory.New(),
			Cleanup: func() error { return nil },
		}, nil
	}
}

func newSheetsBackend(ctx context.Context, cfg *config.Config) (*Result, error) {
	cli, err := gsheet.New(ctx, gsheet.Config{
		SpreadsheetID:       cfg.SpreadsheetID,
		ServiceAccountEmail: cfg.ServiceAccountEmail,
		PrivateKey:          cfg.PrivateKey,
		CredentialsJSON:     cfg.CredentialsJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize Google Sheets client: %w", err)
	}

	slog.Info("Initialized Google Sheets backend", "spreadsheet_id", cfg.SpreadsheetID)
	return &Result{
		Backend: cli,
		Cleanup: func() error { return nil },
	}, nil
}

func newSQLiteBackend(cfg *config.Config) (*Result, error) {
	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize SQLite repository: %w", err)
	}

	// AMQP is optional: without it pending rows wait for the worker's
	// periodic sweep instead of being pushed.
	var publisher *amqp.Client
	if cfg.AMQPURL != "" {
		publisher, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			repo.Close()
			return nil, fmt.Errorf("initialize AMQP client: %w", err)
		}
	} else {
		slog.Info("AMQP disabled - pending transactions rely on periodic sync")
	}

	slog.Info("Initialized SQLite backend", "path", cfg.SQLiteDBPath)
	return &Result{
		Backend: &syncingStore{repo: repo, publisher: publisher},
		Cleanup: func() error {
			if publisher != nil {
				publisher.Close()
			}
			return repo.Close()
		},
	}, nil
}

// syncingStore stores transactions locally and nudges the sync worker over
// AMQP. Publish failures are logged, not returned: the write already
// succeeded and the periodic sweep will pick the row up.
type syncingStore struct {
	repo      *storage.SQLiteRepository
	publisher *amqp.Client
}

var _ Backend = (*syncingStore)(nil)

func (s *syncingStore) Append(ctx context.Context, tx core.Transaction) (string, error) {
	ref, err := s.repo.Append(ctx, tx)
	if err != nil {
		return "", err
	}

	if s.publisher != nil {
		if id, convErr := strconv.ParseInt(ref, 10, 64); convErr == nil {
			if pubErr := s.publisher.PublishTransactionSync(ctx, id); pubErr != nil {
				slog.WarnContext(ctx, "Failed to publish sync message", "id", id, "error", pubErr)
			}
		}
	}

	return ref, nil
}

func (s *syncingStore) ListMonth(ctx context.Context, p core.Period) ([]core.Transaction, error) {
	return s.repo.ListMonth(ctx, p)
}
