// Package google provides a Google Sheets transaction source. Transactions
// live on one sheet with columns A:D as date, category, amount, description.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"finreport/internal/core"
	"finreport/internal/ledger"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var (
	_ ledger.TransactionReader = (*Client)(nil)
	_ ledger.TransactionWriter = (*Client)(nil)
)

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID and service account credentials via
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS. Optional: GOOGLE_SHEET_NAME
// (default "Transactions").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "Transactions"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// newSheetsService initializes a Sheets service using service account
// credentials from the environment.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var (
		credentialsJSON []byte
		err             error
	)
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// ListTransactions reads rows A2:D of the configured sheet. Rows that do not
// parse are skipped with a warning so one bad row never hides the rest.
func (c *Client) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!A2:D", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", c.sheetName, err)
	}

	txs := make([]core.Transaction, 0, len(resp.Values))
	for i, row := range resp.Values {
		tx, err := parseRow(row)
		if err != nil {
			slog.WarnContext(ctx, "Skipping unparseable sheet row",
				"sheet", c.sheetName,
				"row", i+2,
				"error", err)
			continue
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// Append adds a transaction as a new row at the bottom of the sheet.
func (c *Client) Append(ctx context.Context, tx core.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!A:D", c.sheetName)
	vr := &gsheet.ValueRange{Values: [][]any{{
		tx.Date.String(), tx.Category, tx.Amount, tx.Description,
	}}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to sheet %s: %w", c.sheetName, err)
	}

	slog.InfoContext(ctx, "Transaction appended to sheet",
		"sheet", c.sheetName,
		"date", tx.Date.String(),
		"category", tx.Category)
	return nil
}

func parseRow(row []any) (core.Transaction, error) {
	if len(row) < 3 {
		return core.Transaction{}, fmt.Errorf("expected at least 3 cells, got %d", len(row))
	}

	date, err := core.ParseDate(cellString(row[0]))
	if err != nil {
		return core.Transaction{}, err
	}
	amount, err := cellFloat(row[2])
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse amount: %w", err)
	}

	tx := core.Transaction{
		Date:     date,
		Category: cellString(row[1]),
		Amount:   amount,
	}
	if len(row) > 3 {
		tx.Description = cellString(row[3])
	}
	return tx, nil
}

func cellString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func cellFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case string:
		// Sheets may format numbers with a comma decimal separator.
		return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(x), ",", "."), 64)
	default:
		return 0, fmt.Errorf("unsupported cell type %T", v)
	}
}
