package core

import "sort"

// CategoryAmount is an amount summed over one category.
type CategoryAmount struct {
	Category string `json:"category"`
	Amount   Money  `json:"amount"`
}

// FinancialSummary is the display-ready aggregate over one period's
// transactions.
type FinancialSummary struct {
	Income               Money            `json:"income"`
	Expenses             Money            `json:"expenses"`
	Net                  Money            `json:"net"`
	TopExpenseCategories []CategoryAmount `json:"topExpenseCategories"`
	TopIncomeCategories  []CategoryAmount `json:"topIncomeCategories"`
}

// topCategories is the number of category groups kept per type.
const topCategories = 3

// Summarize computes totals and the top category breakdowns for each
// transaction type. The input list is expected to be period-scoped already;
// scoping is the caller's concern (see FilterByPeriod). Pure and stateless.
func Summarize(txs []Transaction) FinancialSummary {
	var income, expenses int64

	byCat := map[TransactionType]map[string]int64{
		Expense: {},
		Income:  {},
	}
	order := map[TransactionType][]string{}

	for _, tx := range txs {
		if !tx.Type.Valid() {
			continue
		}
		switch tx.Type {
		case Income:
			income += tx.Amount.Cents
		case Expense:
			expenses += tx.Amount.Cents
		}
		if _, seen := byCat[tx.Type][tx.Category]; !seen {
			order[tx.Type] = append(order[tx.Type], tx.Category)
		}
		byCat[tx.Type][tx.Category] += tx.Amount.Cents
	}

	return FinancialSummary{
		Income:               Money{Cents: income},
		Expenses:             Money{Cents: expenses},
		Net:                  Money{Cents: income - expenses},
		TopExpenseCategories: topByAmount(byCat[Expense], order[Expense]),
		TopIncomeCategories:  topByAmount(byCat[Income], order[Income]),
	}
}

// topByAmount sorts category sums descending, ties broken by first-seen
// category order, and keeps at most topCategories entries.
func topByAmount(sums map[string]int64, order []string) []CategoryAmount {
	list := make([]CategoryAmount, 0, len(order))
	for _, name := range order {
		list = append(list, CategoryAmount{Category: name, Amount: Money{Cents: sums[name]}})
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Amount.Cents > list[j].Amount.Cents
	})
	if len(list) > topCategories {
		list = list[:topCategories]
	}
	return list
}
