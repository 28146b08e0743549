// Package google persists expense records to a Google Sheets ledger using
// a service account.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gagyebu/internal/core"
	ports "gagyebu/internal/sheets"

	"google.golang.org/api/googleapi"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

const (
	headerRange = "A1:J1"
	dataRange   = "A:J"
	listRange   = "A2:J"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// Ensure interface conformance
var (
	_ ports.RecordWriter  = (*Client)(nil)
	_ ports.RecordLister  = (*Client)(nil)
	_ ports.StatusChecker = (*Client)(nil)
)

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SHEET_ID or GOOGLE_SHEETS_SPREADSHEET_ID, plus service
// account credentials via GOOGLE_SERVICE_ACCOUNT_JSON,
// GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS.
// Optional: GOOGLE_SHEET_NAME to target a sheet other than the first one.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_ID"))
	if spreadsheetID == "" {
		spreadsheetID = strings.TrimSpace(os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID"))
	}
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SHEET_ID or GOOGLE_SHEETS_SPREADSHEET_ID")
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME")),
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		data, err := os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = data
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

// Append writes records as new rows below the existing data. The header
// row is ensured first; a header failure is logged and skipped so a sheet
// with protected row 1 still accepts data.
func (c *Client) Append(ctx context.Context, records []core.ExpenseRecord) (ports.AppendResult, error) {
	if c.svc == nil {
		return ports.AppendResult{}, errors.New("sheets service not initialized")
	}
	if len(records) == 0 {
		return ports.AppendResult{}, nil
	}
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return ports.AppendResult{}, fmt.Errorf("record %s: %w", r.ID, err)
		}
	}

	if err := c.ensureHeader(ctx); err != nil {
		slog.WarnContext(ctx, "header setup skipped", "error", err)
	}

	values := make([][]any, 0, len(records))
	for _, r := range records {
		values = append(values, recordToRow(r))
	}

	resp, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, c.rng(dataRange), &gsheet.ValueRange{Values: values}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return ports.AppendResult{}, classify(fmt.Errorf("append %d rows: %w", len(values), err))
	}

	result := ports.AppendResult{}
	if resp.Updates != nil {
		result.UpdatedRows = resp.Updates.UpdatedRows
		result.UpdatedRange = resp.Updates.UpdatedRange
	}
	return result, nil
}

func (c *Client) ensureHeader(ctx context.Context) error {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.rng(headerRange)).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	if len(resp.Values) > 0 {
		return nil
	}

	row := make([]any, len(Headers))
	for i, h := range Headers {
		row[i] = h
	}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, c.rng(headerRange), &gsheet.ValueRange{Values: [][]any{row}}).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

// List returns every data row of the ledger sheet.
func (c *Client) List(ctx context.Context) ([]core.ExpenseRecord, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.rng(listRange)).Context(ctx).Do()
	if err != nil {
		return nil, classify(fmt.Errorf("list rows: %w", err))
	}
	records := make([]core.ExpenseRecord, 0, len(resp.Values))
	for _, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		records = append(records, recordFromRow(row))
	}
	return records, nil
}

// CheckStatus verifies the credentials can see the spreadsheet.
func (c *Client) CheckStatus(ctx context.Context) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	_, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("spreadsheetId").Context(ctx).Do()
	if err != nil {
		return classify(fmt.Errorf("spreadsheet lookup: %w", err))
	}
	return nil
}

func (c *Client) rng(base string) string {
	if c.sheetName == "" {
		return base
	}
	return fmt.Sprintf("%s!%s", c.sheetName, base)
}

// classify folds googleapi failures into the port sentinels so handlers
// can answer with a stable message instead of a raw API error.
func classify(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.Code {
	case 403:
		return fmt.Errorf("%w: %v", ports.ErrPermissionDenied, err)
	case 404:
		return fmt.Errorf("%w: %v", ports.ErrNotFound, err)
	case 400:
		return fmt.Errorf("%w: %v", ports.ErrInvalidRange, err)
	default:
		return err
	}
}
