package core

import (
	"errors"
	"testing"
	"time"
)

func validTransaction() Transaction {
	return Transaction{
		Date:     "2025-05-14",
		Type:     Expense,
		Amount:   Money{Cents: 1250},
		Name:     "Groceries run",
		Category: "Groceries",
	}
}

func TestTransactionValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{name: "Valid", mutate: func(tx *Transaction) {}},
		{name: "ZeroAmountValid", mutate: func(tx *Transaction) { tx.Amount = Money{} }},
		{name: "EmptyDescriptionValid", mutate: func(tx *Transaction) { tx.Description = "" }},
		{name: "BadDateFormat", mutate: func(tx *Transaction) { tx.Date = "14/05/2025" }, wantErr: ErrInvalidDate},
		{name: "ImpossibleDate", mutate: func(tx *Transaction) { tx.Date = "2025-02-30" }, wantErr: ErrInvalidDate},
		{name: "EmptyDate", mutate: func(tx *Transaction) { tx.Date = "" }, wantErr: ErrInvalidDate},
		{name: "UnknownType", mutate: func(tx *Transaction) { tx.Type = "Transfer" }, wantErr: ErrInvalidType},
		{name: "LowercaseType", mutate: func(tx *Transaction) { tx.Type = "expense" }, wantErr: ErrInvalidType},
		{name: "NegativeAmount", mutate: func(tx *Transaction) { tx.Amount = Money{Cents: -1} }, wantErr: ErrNegativeAmount},
		{name: "EmptyName", mutate: func(tx *Transaction) { tx.Name = "   " }, wantErr: ErrEmptyName},
		{name: "EmptyCategory", mutate: func(tx *Transaction) { tx.Category = "" }, wantErr: ErrEmptyCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction()
			tt.mutate(&tx)
			err := tx.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTransactionPeriod(t *testing.T) {
	tx := validTransaction()
	p, err := tx.Period()
	if err != nil {
		t.Fatalf("Period() error: %v", err)
	}
	if p.Month != time.May || p.Year != 2025 {
		t.Errorf("Period() = %v, want May 2025", p)
	}

	tx.Date = "not-a-date"
	if _, err := tx.Period(); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("Period() on bad date = %v, want ErrInvalidDate", err)
	}
}

func TestPeriodSheetName(t *testing.T) {
	tests := []struct {
		period Period
		want   string
	}{
		{Period{Month: time.May, Year: 2025}, "May 2025"},
		{Period{Month: time.January, Year: 2099}, "Jan 2099"},
		{Period{Month: time.December, Year: 1999}, "Dec 1999"},
	}
	for _, tt := range tests {
		if got := tt.period.SheetName(); got != tt.want {
			t.Errorf("SheetName() = %q, want %q", got, tt.want)
		}
	}
}

func TestPeriodBounds(t *testing.T) {
	p := Period{Month: time.February, Year: 2024} // leap year
	if got := p.Start().Format(DateLayout); got != "2024-02-01" {
		t.Errorf("Start() = %s", got)
	}
	if got := p.End().Format(DateLayout); got != "2024-03-01" {
		t.Errorf("End() = %s", got)
	}
}

func TestPeriodValidate(t *testing.T) {
	if err := (Period{Month: time.May, Year: 2025}).Validate(); err != nil {
		t.Errorf("valid period: %v", err)
	}
	if err := (Period{Month: 13, Year: 2025}).Validate(); err == nil {
		t.Error("month 13 accepted")
	}
	if err := (Period{Month: time.May, Year: 0}).Validate(); err == nil {
		t.Error("year 0 accepted")
	}
}
