// Command fintrack-check verifies Google Sheets credentials and
// spreadsheet access without writing anything. Useful before deploying a
// new service account.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"fintrack/internal/config"
	"fintrack/internal/core"
	gsheet "fintrack/internal/ledger/google"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cli, err := gsheet.New(ctx, gsheet.Config{
		SpreadsheetID:       cfg.SpreadsheetID,
		ServiceAccountEmail: cfg.ServiceAccountEmail,
		PrivateKey:          cfg.PrivateKey,
		CredentialsJSON:     cfg.CredentialsJSON,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "sheets client: %v\n", err)
		os.Exit(1)
	}

	p := core.CurrentPeriod()
	txs, err := cli.ListMonth(ctx, p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", p.SheetName(), err)
		os.Exit(1)
	}

	fmt.Printf("ok: spreadsheet %s reachable, %q has %d transactions\n",
		cfg.SpreadsheetID, p.SheetName(), len(txs))
}
