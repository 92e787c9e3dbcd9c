package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Expense TransactionType = "Expense"
	Income  TransactionType = "Income"
)

// DateLayout is the wire and storage format for transaction dates.
const DateLayout = "2006-01-02"

type (
	TransactionType string

	// Transaction is the unit of persisted financial activity. ID is an
	// ordinal assigned at read time and is not stable across reads.
	Transaction struct {
		ID          int             `json:"id"`
		Date        string          `json:"date"`
		Type        TransactionType `json:"type"`
		Amount      Money           `json:"amount"`
		Name        string          `json:"name"`
		Category    string          `json:"category"`
		Description string          `json:"description"`
	}

	// Period identifies one monthly ledger container.
	Period struct {
		Month time.Month
		Year  int
	}
)

var (
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvalidType    = errors.New("invalid transaction type")
	ErrNegativeAmount = errors.New("negative amount")
	ErrEmptyName      = errors.New("empty name")
	ErrEmptyCategory  = errors.New("empty category")
)

func (t TransactionType) Valid() bool {
	return t == Expense || t == Income
}

func (tx Transaction) Validate() error {
	if _, err := time.Parse(DateLayout, tx.Date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, tx.Date)
	}
	if !tx.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, tx.Type)
	}
	if tx.Amount.Cents < 0 {
		return ErrNegativeAmount
	}
	if strings.TrimSpace(tx.Name) == "" {
		return ErrEmptyName
	}
	if len(tx.Name) > 200 {
		return errors.New("name too long (max 200 characters)")
	}
	if strings.TrimSpace(tx.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// Period returns the monthly container the transaction belongs to,
// derived from its own date. Callers must validate first.
func (tx Transaction) Period() (Period, error) {
	t, err := time.Parse(DateLayout, tx.Date)
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidDate, tx.Date)
	}
	return Period{Month: t.Month(), Year: t.Year()}, nil
}

// CurrentPeriod returns the period for the current calendar month.
func CurrentPeriod() Period {
	now := time.Now()
	return Period{Month: now.Month(), Year: now.Year()}
}

func (p Period) Validate() error {
	if p.Month < time.January || p.Month > time.December {
		return fmt.Errorf("invalid month: %d", p.Month)
	}
	if p.Year < 1 {
		return fmt.Errorf("invalid year: %d", p.Year)
	}
	return nil
}

// SheetName is the human-readable container key, e.g. "May 2025".
// The naming convention is a storage contract: historical containers
// already use it.
func (p Period) SheetName() string {
	return fmt.Sprintf("%s %d", p.Month.String()[:3], p.Year)
}

// Start returns the first instant of the period's month in UTC.
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the first instant of the following month in UTC.
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, 0)
}

// Suggested categories per transaction type, mirrored by the entry form.
var (
	ExpenseCategories = []string{
		"Groceries",
		"Dining Out",
		"Transportation",
		"Housing",
		"Utilities",
		"Entertainment",
		"Shopping",
		"Healthcare",
		"Personal",
		"Education",
		"Travel",
		"Other",
	}

	IncomeCategories = []string{
		"Salary",
		"Freelance",
		"Business",
		"Investment",
		"Gift",
		"Refund",
		"Other",
	}
)
