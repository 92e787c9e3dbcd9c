package memory

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

func sample(date string, cents int64) core.Transaction {
	return core.Transaction{
		Date:     date,
		Type:     core.Expense,
		Amount:   core.Money{Cents: cents},
		Name:     "coffee",
		Category: "Dining Out",
	}
}

func TestAppendCreatesContainerWithHeader(t *testing.T) {
	s := New()
	p := core.Period{Month: time.May, Year: 2025}

	if got := s.Header(p); got != nil {
		t.Fatalf("container exists before first write: %v", got)
	}

	if _, err := s.Append(context.Background(), sample("2025-05-03", 450)); err != nil {
		t.Fatalf("Append() error: %v", err)
	}

	if got := s.Header(p); !reflect.DeepEqual(got, ledger.Header) {
		t.Errorf("header = %v, want %v", got, ledger.Header)
	}
	txs, err := s.ListMonth(context.Background(), p)
	if err != nil {
		t.Fatalf("ListMonth() error: %v", err)
	}
	if len(txs) != 1 {
		t.Errorf("rows = %d, want 1", len(txs))
	}
}

func TestAppendDerivesPeriodFromDate(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.Append(ctx, sample("2025-05-03", 100)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Append(ctx, sample("2025-06-03", 200)); err != nil {
		t.Fatal(err)
	}

	may, _ := s.ListMonth(ctx, core.Period{Month: time.May, Year: 2025})
	june, _ := s.ListMonth(ctx, core.Period{Month: time.June, Year: 2025})
	if len(may) != 1 || len(june) != 1 {
		t.Errorf("rows may=%d june=%d, want 1 each", len(may), len(june))
	}
}

func TestAppendRejectsInvalidBeforeWrite(t *testing.T) {
	s := New()
	tx := sample("2025-05-03", 100)
	tx.Name = ""

	if _, err := s.Append(context.Background(), tx); !errors.Is(err, core.ErrEmptyName) {
		t.Fatalf("Append() = %v, want ErrEmptyName", err)
	}
	if got := s.Header(core.Period{Month: time.May, Year: 2025}); got != nil {
		t.Error("container created despite failed validation")
	}
}

func TestListMonthUnknownPeriodIsEmpty(t *testing.T) {
	s := New()
	txs, err := s.ListMonth(context.Background(), core.Period{Month: time.January, Year: 2099})
	if err != nil {
		t.Fatalf("ListMonth() error: %v", err)
	}
	if len(txs) != 0 {
		t.Errorf("rows = %d, want 0", len(txs))
	}
}

func TestListMonthAssignsOrdinalIDs(t *testing.T) {
	s := New()
	ctx := context.Background()
	for i := int64(1); i <= 3; i++ {
		if _, err := s.Append(ctx, sample("2025-05-10", i*100)); err != nil {
			t.Fatal(err)
		}
	}
	txs, _ := s.ListMonth(ctx, core.Period{Month: time.May, Year: 2025})
	for i, tx := range txs {
		if tx.ID != i+1 {
			t.Errorf("row %d has id %d, want %d", i, tx.ID, i+1)
		}
	}
}

// Two near-simultaneous appends for a never-seen month must both land:
// exactly two data rows, one header, no lost write.
func TestConcurrentAppendsSameNewMonth(t *testing.T) {
	s := New()
	ctx := context.Background()
	p := core.Period{Month: time.September, Year: 2031}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.Append(ctx, sample("2031-09-12", int64(100*(i+1))))
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("append %d failed: %v", i, err)
		}
	}
	txs, err := s.ListMonth(ctx, p)
	if err != nil {
		t.Fatal(err)
	}
	if len(txs) != 2 {
		t.Errorf("rows = %d, want 2", len(txs))
	}
	if got := s.Header(p); !reflect.DeepEqual(got, ledger.Header) {
		t.Errorf("header = %v, want single %v", got, ledger.Header)
	}
}

// Round trip on aggregates: totals by type survive the write/read cycle
// even though IDs do not.
func TestRoundTripAggregates(t *testing.T) {
	s := New()
	ctx := context.Background()

	income := sample("2025-05-01", 100000)
	income.Type = core.Income
	income.Category = "Salary"
	writes := []core.Transaction{income, sample("2025-05-10", 4000), sample("2025-05-20", 1000)}
	for _, tx := range writes {
		if _, err := s.Append(ctx, tx); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.ListMonth(ctx, core.Period{Month: time.May, Year: 2025})
	if err != nil {
		t.Fatal(err)
	}
	sum := core.Summarize(got)
	if sum.Income.Cents != 100000 || sum.Expenses.Cents != 5000 {
		t.Errorf("aggregates income=%d expenses=%d, want 100000/5000", sum.Income.Cents, sum.Expenses.Cents)
	}
}
