package core

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	SortByDate     SortField = "date"
	SortByAmount   SortField = "amount"
	SortByCategory SortField = "category"
	SortByName     SortField = "name"

	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

type (
	SortField string
	SortOrder string
)

// SortTransactions returns a sorted copy of the input; the original slice is
// never mutated. Category and name use locale-aware collation; ties keep
// their original relative order. Unparseable dates sort before everything
// else in ascending order.
func SortTransactions(txs []Transaction, field SortField, order SortOrder) []Transaction {
	out := make([]Transaction, len(txs))
	copy(out, txs)

	var cl *collate.Collator
	if field == SortByCategory || field == SortByName {
		cl = collate.New(language.English)
	}

	cmp := func(a, b Transaction) int {
		switch field {
		case SortByAmount:
			switch {
			case a.Amount.Cents < b.Amount.Cents:
				return -1
			case a.Amount.Cents > b.Amount.Cents:
				return 1
			}
			return 0
		case SortByCategory:
			return cl.CompareString(a.Category, b.Category)
		case SortByName:
			return cl.CompareString(a.Name, b.Name)
		default: // date
			ta, _ := time.Parse(DateLayout, a.Date)
			tb, _ := time.Parse(DateLayout, b.Date)
			switch {
			case ta.Before(tb):
				return -1
			case ta.After(tb):
				return 1
			}
			return 0
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if order == Descending {
			return c > 0
		}
		return c < 0
	})
	return out
}
