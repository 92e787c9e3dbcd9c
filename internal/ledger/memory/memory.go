// Package memory is an in-process ledger store used for development and
// tests. It mirrors the sheet adapter's ensure-then-append behavior,
// including the lazily created header row, so container lifecycle is
// observable without a spreadsheet.
package memory

import (
	"context"
	"fmt"
	"sync"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

type container struct {
	header []string
	rows   []core.Transaction
}

type Store struct {
	mu         sync.Mutex
	containers map[string]*container
}

// Ensure interface conformance
var (
	_ ledger.TransactionAppender = (*Store)(nil)
	_ ledger.TransactionLister   = (*Store)(nil)
)

func New() *Store {
	return &Store{containers: make(map[string]*container)}
}

// Append validates, finds or creates the monthly container for the
// transaction's date, and stores one row.
func (s *Store) Append(_ context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}
	p, err := tx.Period()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	name := p.SheetName()
	c, ok := s.containers[name]
	if !ok {
		c = &container{header: append([]string(nil), ledger.Header...)}
		s.containers[name] = c
	}
	c.rows = append(c.rows, tx)
	return fmt.Sprintf("%s!%d", name, len(c.rows)+1), nil
}

// ListMonth returns a copy of the period's rows with 1-based ordinal IDs.
// An unknown period reads as empty.
func (s *Store) ListMonth(_ context.Context, p core.Period) ([]core.Transaction, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.containers[p.SheetName()]
	if !ok {
		return []core.Transaction{}, nil
	}
	out := make([]core.Transaction, len(c.rows))
	for i, tx := range c.rows {
		tx.ID = i + 1
		out[i] = tx
	}
	return out, nil
}

// Header returns the header row of the period's container, or nil if the
// container was never created. Only used by tests.
func (s *Store) Header(p core.Period) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.containers[p.SheetName()]
	if !ok {
		return nil
	}
	return append([]string(nil), c.header...)
}
