package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/ledger"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Config carries everything the adapter needs. It is constructed once at
// startup and passed in; the adapter never reads the environment itself.
type Config struct {
	SpreadsheetID string

	// Service account identity. Either the email+key pair or raw
	// credentials JSON must be set.
	ServiceAccountEmail string
	// PrivateKey may contain literal `\n` sequences (the usual env-var
	// encoding); they are unescaped before use.
	PrivateKey      string
	CredentialsJSON string
}

func (c Config) validate() error {
	if strings.TrimSpace(c.SpreadsheetID) == "" {
		return errors.New("missing spreadsheet ID")
	}
	if c.CredentialsJSON == "" && (c.ServiceAccountEmail == "" || c.PrivateKey == "") {
		return errors.New("missing service account credentials (set credentials JSON or email+private key)")
	}
	return nil
}

// Client is the Google Sheets ledger store. One worksheet per calendar
// month, created lazily on first write.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
}

// Ensure interface conformance
var (
	_ ledger.TransactionAppender = (*Client)(nil)
	_ ledger.TransactionLister   = (*Client)(nil)
)

// New builds a Sheets client authenticated as a service account.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	var opts []goption.ClientOption
	switch {
	case cfg.CredentialsJSON != "":
		opts = append(opts,
			goption.WithCredentialsJSON([]byte(cfg.CredentialsJSON)),
			goption.WithScopes(gsheet.SpreadsheetsScope))
	default:
		jwtCfg := &jwt.Config{
			Email:      cfg.ServiceAccountEmail,
			PrivateKey: []byte(strings.ReplaceAll(cfg.PrivateKey, `\n`, "\n")),
			Scopes:     []string{gsheet.SpreadsheetsScope},
			TokenURL:   google.JWTTokenURL,
		}
		opts = append(opts, goption.WithHTTPClient(jwtCfg.Client(ctx)))
	}

	svc, err := gsheet.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{svc: svc, spreadsheetID: cfg.SpreadsheetID}, nil
}

// Append validates the transaction, makes sure the monthly sheet for the
// transaction's own date exists, then appends one row in header order.
// Validation happens before any network call.
func (c *Client) Append(ctx context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	p, err := tx.Period()
	if err != nil {
		return "", err
	}

	sheetName, err := c.ensureMonthSheet(ctx, p)
	if err != nil {
		return "", err
	}

	rng := fmt.Sprintf("%s!A:F", sheetName)
	vr := &gsheet.ValueRange{Values: [][]any{rowOf(tx)}}
	resp, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("%w: append to %s: %v", ledger.ErrStorageUnavailable, sheetName, err)
	}

	ref := sheetName
	if resp.Updates != nil && resp.Updates.UpdatedRange != "" {
		ref = resp.Updates.UpdatedRange
	}
	slog.InfoContext(ctx, "Transaction appended", "sheet", sheetName, "ref", ref, "amount_cents", tx.Amount.Cents)
	return ref, nil
}

// ListMonth reads all data rows of the period's sheet. A sheet that was
// never created reads as an empty month; genuine storage failures
// propagate. IDs are 1-based positions in the returned slice.
func (c *Client) ListMonth(ctx context.Context, p core.Period) ([]core.Transaction, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	sheetName := p.SheetName()
	rng := fmt.Sprintf("%s!A:F", sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		if isMissingSheetErr(err) {
			slog.DebugContext(ctx, "No sheet for period", "sheet", sheetName)
			return []core.Transaction{}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", ledger.ErrStorageUnavailable, rng, err)
	}

	// First row is the header; a sheet with only the header is an empty month.
	if len(resp.Values) <= 1 {
		return []core.Transaction{}, nil
	}

	out := make([]core.Transaction, 0, len(resp.Values)-1)
	for i, row := range resp.Values[1:] {
		tx, err := decodeRow(row, len(out)+1)
		if err != nil {
			return nil, fmt.Errorf("sheet %s row %d: %w", sheetName, i+2, err)
		}
		out = append(out, tx)
	}
	return out, nil
}

// ensureMonthSheet finds or creates the worksheet named after the period.
// Creation is idempotent: a concurrent writer may win the creation race, in
// which case the resulting "already exists" error is treated as success.
func (c *Client) ensureMonthSheet(ctx context.Context, p core.Period) (string, error) {
	sheetName := p.SheetName()

	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets.properties.sheetId,sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("%w: get spreadsheet: %v", ledger.ErrStorageUnavailable, err)
	}
	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == sheetName {
			return sheetName, nil
		}
	}

	created, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			AddSheet: &gsheet.AddSheetRequest{
				Properties: &gsheet.SheetProperties{Title: sheetName},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		if isAlreadyExistsErr(err) {
			// Lost the creation race; the winner writes the header.
			slog.InfoContext(ctx, "Sheet created concurrently", "sheet", sheetName)
			return sheetName, nil
		}
		return "", fmt.Errorf("%w: create sheet %s: %v", ledger.ErrStorageUnavailable, sheetName, err)
	}

	var sheetID int64 = -1
	if len(created.Replies) > 0 && created.Replies[0].AddSheet != nil && created.Replies[0].AddSheet.Properties != nil {
		sheetID = created.Replies[0].AddSheet.Properties.SheetId
	}

	if err := c.writeHeader(ctx, sheetName, sheetID); err != nil {
		return "", err
	}

	slog.InfoContext(ctx, "Monthly sheet created", "sheet", sheetName)
	return sheetName, nil
}

// writeHeader writes the fixed header row and applies the one-time visual
// emphasis (bold on a light background). The formatting is cosmetic; a
// failure there is only logged.
func (c *Client) writeHeader(ctx context.Context, sheetName string, sheetID int64) error {
	headerRow := make([]any, len(ledger.Header))
	for i, h := range ledger.Header {
		headerRow[i] = h
	}
	rng := fmt.Sprintf("%s!A1:F1", sheetName)
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, &gsheet.ValueRange{
		Values: [][]any{headerRow},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: write header for %s: %v", ledger.ErrStorageUnavailable, sheetName, err)
	}

	if sheetID < 0 {
		return nil
	}
	_, err = c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			RepeatCell: &gsheet.RepeatCellRequest{
				Range: &gsheet.GridRange{
					SheetId:       sheetID,
					StartRowIndex: 0,
					EndRowIndex:   1,
				},
				Cell: &gsheet.CellData{
					UserEnteredFormat: &gsheet.CellFormat{
						BackgroundColor: &gsheet.Color{Red: 0.8, Green: 0.8, Blue: 0.9},
						TextFormat:      &gsheet.TextFormat{Bold: true},
					},
				},
				Fields: "userEnteredFormat(backgroundColor,textFormat)",
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		slog.WarnContext(ctx, "Header formatting failed", "sheet", sheetName, "error", err)
	}
	return nil
}
