package google

import (
	"errors"
	"fmt"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/ledger"

	"google.golang.org/api/googleapi"
)

// Column positions within ledger.Header.
const (
	colDate = iota
	colName
	colType
	colCategory
	colAmount
	colDescription
)

// rowOf renders a transaction in the fixed header column order.
func rowOf(tx core.Transaction) []any {
	return []any{
		tx.Date,
		tx.Name,
		string(tx.Type),
		tx.Category,
		tx.Amount.Float(),
		tx.Description,
	}
}

// decodeRow converts one sheet row into a transaction. Rows must carry at
// least the columns through Amount; the description column is optional and
// defaults to empty. An unparseable amount reads as zero, which tolerates
// hand-edited cells without dropping the row.
func decodeRow(row []any, id int) (core.Transaction, error) {
	if len(row) <= colAmount {
		return core.Transaction{}, fmt.Errorf("%w: %d columns, need at least %d", ledger.ErrMalformedRow, len(row), colAmount+1)
	}
	cols := toStrings(row)

	cents, err := core.ParseDecimalToCents(cols[colAmount])
	if err != nil {
		cents = 0
	}

	description := ""
	if len(cols) > colDescription {
		description = cols[colDescription]
	}

	return core.Transaction{
		ID:          id,
		Date:        cols[colDate],
		Type:        core.TransactionType(cols[colType]),
		Amount:      core.Money{Cents: cents},
		Name:        cols[colName],
		Category:    cols[colCategory],
		Description: description,
	}, nil
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

// isMissingSheetErr reports whether err means the month's sheet was never
// created, as opposed to the backing store being unreachable. The Sheets
// API answers a Values.Get on an unknown sheet title with a 400 on the
// range parse.
func isMissingSheetErr(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == 400 && strings.Contains(apiErr.Message, "Unable to parse range")
}

// isAlreadyExistsErr reports whether a sheet creation failed only because a
// concurrent writer created it first.
func isAlreadyExistsErr(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == 400 && strings.Contains(apiErr.Message, "already exists")
}
