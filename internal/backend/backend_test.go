package backend

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"fintrack/internal/config"
	"fintrack/internal/core"
)

func TestNewMemoryBackend(t *testing.T) {
	res, err := New(context.Background(), &config.Config{DataBackend: "memory"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer res.Cleanup()

	if res.Backend == nil {
		t.Fatal("backend is nil")
	}
}

func TestNewSQLiteBackendWithoutAMQP(t *testing.T) {
	cfg := &config.Config{
		DataBackend:  "sqlite",
		SQLiteDBPath: filepath.Join(t.TempDir(), "fintrack.db"),
	}

	res, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer res.Cleanup()

	ctx := context.Background()
	tx := core.Transaction{
		Date:     "2025-05-12",
		Type:     core.Expense,
		Amount:   core.Money{Cents: 1000},
		Name:     "Groceries",
		Category: "Food",
	}
	if _, err := res.Backend.Append(ctx, tx); err != nil {
		t.Fatalf("Append: %v", err)
	}

	txs, err := res.Backend.ListMonth(ctx, core.Period{Month: time.May, Year: 2025})
	if err != nil {
		t.Fatalf("ListMonth: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txs))
	}
}

func TestNewSheetsBackendInvalidCredentials(t *testing.T) {
	cfg := &config.Config{
		DataBackend:     "sheets",
		SpreadsheetID:   "spreadsheet-id",
		CredentialsJSON: "{not-json",
	}

	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatal("expected error for invalid credentials")
	}
}
