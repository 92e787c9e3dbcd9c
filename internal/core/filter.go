package core

import (
	"strconv"
	"strings"
	"time"
)

// FilterByPeriod keeps only transactions dated within the period's calendar
// month, first through last day inclusive. Dates that fail calendar parsing
// fall back to a split-on-dash reading as (month, day, year); this is
// tolerance for a legacy MM-DD-YYYY format, not an error path.
func FilterByPeriod(txs []Transaction, p Period) []Transaction {
	start, end := p.Start(), p.End()
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if t, err := time.Parse(DateLayout, tx.Date); err == nil {
			if !t.Before(start) && t.Before(end) {
				out = append(out, tx)
			}
			continue
		}
		if legacyDateInPeriod(tx.Date, p) {
			out = append(out, tx)
		}
	}
	return out
}

func legacyDateInPeriod(date string, p Period) bool {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return false
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return false
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return false
	}
	return time.Month(month) == p.Month && year == p.Year
}
