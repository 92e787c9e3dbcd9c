package core

import (
	"reflect"
	"testing"
)

func tx(typ TransactionType, cents int64, category string) Transaction {
	return Transaction{
		Date:     "2025-05-10",
		Type:     typ,
		Amount:   Money{Cents: cents},
		Name:     "n",
		Category: category,
	}
}

func TestSummarize(t *testing.T) {
	input := []Transaction{
		tx(Income, 10000, "Salary"),
		tx(Expense, 4000, "Food"),
		tx(Expense, 1000, "Food"),
	}

	got := Summarize(input)

	if got.Income.Cents != 10000 {
		t.Errorf("income = %d, want 10000", got.Income.Cents)
	}
	if got.Expenses.Cents != 5000 {
		t.Errorf("expenses = %d, want 5000", got.Expenses.Cents)
	}
	if got.Net.Cents != 5000 {
		t.Errorf("net = %d, want 5000", got.Net.Cents)
	}
	wantTop := []CategoryAmount{{Category: "Food", Amount: Money{Cents: 5000}}}
	if !reflect.DeepEqual(got.TopExpenseCategories, wantTop) {
		t.Errorf("topExpenseCategories = %+v, want %+v", got.TopExpenseCategories, wantTop)
	}
	wantIncomeTop := []CategoryAmount{{Category: "Salary", Amount: Money{Cents: 10000}}}
	if !reflect.DeepEqual(got.TopIncomeCategories, wantIncomeTop) {
		t.Errorf("topIncomeCategories = %+v, want %+v", got.TopIncomeCategories, wantIncomeTop)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(nil)
	if got.Income.Cents != 0 || got.Expenses.Cents != 0 || got.Net.Cents != 0 {
		t.Errorf("empty summarize totals = %+v, want zeroes", got)
	}
	if len(got.TopExpenseCategories) != 0 || len(got.TopIncomeCategories) != 0 {
		t.Errorf("empty summarize categories = %+v, want none", got)
	}
}

func TestSummarizeNegativeNet(t *testing.T) {
	got := Summarize([]Transaction{
		tx(Income, 1000, "Salary"),
		tx(Expense, 2500, "Housing"),
	})
	if got.Net.Cents != -1500 {
		t.Errorf("net = %d, want -1500", got.Net.Cents)
	}
}

func TestSummarizeTopThreeOnly(t *testing.T) {
	got := Summarize([]Transaction{
		tx(Expense, 100, "A"),
		tx(Expense, 400, "B"),
		tx(Expense, 300, "C"),
		tx(Expense, 200, "D"),
		tx(Expense, 50, "E"),
	})
	want := []CategoryAmount{
		{Category: "B", Amount: Money{Cents: 400}},
		{Category: "C", Amount: Money{Cents: 300}},
		{Category: "D", Amount: Money{Cents: 200}},
	}
	if !reflect.DeepEqual(got.TopExpenseCategories, want) {
		t.Errorf("topExpenseCategories = %+v, want %+v", got.TopExpenseCategories, want)
	}
}

// Equal sums keep first-encountered category order.
func TestSummarizeTieBreakIsStable(t *testing.T) {
	got := Summarize([]Transaction{
		tx(Expense, 100, "Zulu"),
		tx(Expense, 100, "Alpha"),
		tx(Expense, 100, "Mike"),
	})
	want := []CategoryAmount{
		{Category: "Zulu", Amount: Money{Cents: 100}},
		{Category: "Alpha", Amount: Money{Cents: 100}},
		{Category: "Mike", Amount: Money{Cents: 100}},
	}
	if !reflect.DeepEqual(got.TopExpenseCategories, want) {
		t.Errorf("topExpenseCategories = %+v, want %+v", got.TopExpenseCategories, want)
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	input := []Transaction{
		tx(Income, 10000, "Salary"),
		tx(Expense, 4000, "Food"),
		tx(Expense, 1000, "Travel"),
	}
	first := Summarize(input)
	second := Summarize(input)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("summarize not idempotent: %+v vs %+v", first, second)
	}
}
