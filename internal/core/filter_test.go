package core

import (
	"reflect"
	"testing"
	"time"
)

func dated(date string) Transaction {
	return Transaction{Date: date, Type: Expense, Amount: Money{Cents: 100}, Name: "n", Category: "c"}
}

func datesOf(txs []Transaction) []string {
	out := make([]string, len(txs))
	for i, tx := range txs {
		out[i] = tx.Date
	}
	return out
}

func TestFilterByPeriodBoundaries(t *testing.T) {
	p := Period{Month: time.May, Year: 2025}
	input := []Transaction{
		dated("2025-04-30"), // day before
		dated("2025-05-01"), // first day
		dated("2025-05-17"),
		dated("2025-05-31"), // last day
		dated("2025-06-01"), // day after
	}

	got := FilterByPeriod(input, p)
	want := []string{"2025-05-01", "2025-05-17", "2025-05-31"}
	if !reflect.DeepEqual(datesOf(got), want) {
		t.Errorf("FilterByPeriod = %v, want %v", datesOf(got), want)
	}
}

func TestFilterByPeriodLeapFebruary(t *testing.T) {
	p := Period{Month: time.February, Year: 2024}
	got := FilterByPeriod([]Transaction{dated("2024-02-29"), dated("2024-03-01")}, p)
	if want := []string{"2024-02-29"}; !reflect.DeepEqual(datesOf(got), want) {
		t.Errorf("FilterByPeriod = %v, want %v", datesOf(got), want)
	}
}

// Dates that fail calendar parsing are retried as legacy MM-DD-YYYY.
func TestFilterByPeriodLegacyFormatFallback(t *testing.T) {
	p := Period{Month: time.May, Year: 2025}
	input := []Transaction{
		dated("05-14-2025"), // legacy, in period
		dated("04-14-2025"), // legacy, wrong month
		dated("05-14-2024"), // legacy, wrong year
		dated("garbage"),
	}
	got := FilterByPeriod(input, p)
	if want := []string{"05-14-2025"}; !reflect.DeepEqual(datesOf(got), want) {
		t.Errorf("FilterByPeriod = %v, want %v", datesOf(got), want)
	}
}

func TestFilterByPeriodIdempotent(t *testing.T) {
	p := Period{Month: time.May, Year: 2025}
	input := []Transaction{
		dated("2025-05-01"),
		dated("2025-06-02"),
		dated("2025-05-20"),
	}
	once := FilterByPeriod(input, p)
	twice := FilterByPeriod(once, p)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("filter not idempotent: %v vs %v", datesOf(once), datesOf(twice))
	}
}

func TestFilterByPeriodEmpty(t *testing.T) {
	got := FilterByPeriod(nil, Period{Month: time.May, Year: 2025})
	if len(got) != 0 {
		t.Errorf("FilterByPeriod(nil) = %v, want empty", got)
	}
}
