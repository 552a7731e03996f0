// Package sheets implements the record store on top of a Google Sheets
// worksheet, the system of record the bookkeeping form was built
// around.
package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"regexp"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/contable-ledger/internal/config"
	"github.com/contable-ledger/internal/data/rowcodec"
	"github.com/contable-ledger/internal/domain/journal"
)

var spreadsheetURLPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)

// valuesAPI wraps the spreadsheet value calls for testability.
type valuesAPI interface {
	Append(ctx context.Context, rangeA1 string, values [][]interface{}) error
	Get(ctx context.Context, rangeA1 string) ([][]interface{}, error)
}

// RecordStore appends ledger records to a worksheet and reads the full
// worksheet back for reporting.
type RecordStore struct {
	api       valuesAPI
	worksheet string
	logger    *slog.Logger
}

var _ journal.RecordStore = (*RecordStore)(nil)

// NewRecordStore authenticates with the configured service account and
// binds to the configured worksheet.
func NewRecordStore(ctx context.Context, logger *slog.Logger, cfg *config.SheetsConfig) (*RecordStore, error) {
	creds, err := loadCredentials(cfg)
	if err != nil {
		return nil, err
	}

	jwtConfig, err := google.JWTConfigFromJSON(creds, sheetsapi.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}

	service, err := sheetsapi.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	spreadsheetID := ExtractSpreadsheetID(cfg.SpreadsheetID)

	logger.Info("Connected to Google Sheets", "spreadsheet_id", spreadsheetID, "worksheet", cfg.Worksheet)

	return &RecordStore{
		api:       &googleValuesAPI{service: service, spreadsheetID: spreadsheetID},
		worksheet: cfg.Worksheet,
		logger:    logger,
	}, nil
}

// loadCredentials reads the service account key from the inline config
// value or the configured file, repairing paste damage either way.
func loadCredentials(cfg *config.SheetsConfig) ([]byte, error) {
	var raw []byte
	if cfg.CredentialsJSON != "" {
		raw = []byte(cfg.CredentialsJSON)
	} else {
		var err error
		raw, err = os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
	}

	repaired, err := RepairCredentialJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid service account credentials: %w", err)
	}
	return repaired, nil
}

// ExtractSpreadsheetID accepts either a bare spreadsheet ID or a full
// Google Sheets URL and returns the ID.
func ExtractSpreadsheetID(idOrURL string) string {
	if matches := spreadsheetURLPattern.FindStringSubmatch(idOrURL); len(matches) == 2 {
		return matches[1]
	}
	return idOrURL
}

// Append submits all records of one entry as a single values append
// call: one network round trip, and no partial entry visible if the
// call fails.
func (s *RecordStore) Append(ctx context.Context, records []*journal.LedgerRecord) error {
	if len(records) == 0 {
		return nil
	}

	values := make([][]interface{}, 0, len(records))
	for _, rec := range records {
		values = append(values, rowcodec.ToValues(rec))
	}

	if err := s.api.Append(ctx, s.rangeA1(), values); err != nil {
		s.logger.Error("Failed to append rows to worksheet", "worksheet", s.worksheet, "rows", len(values), "error", err)
		return fmt.Errorf("failed to append rows to worksheet: %w", err)
	}

	return nil
}

// LoadAll reads the whole worksheet. Read failures and empty sheets
// degrade to an empty result so a report refresh never crashes the
// interactive loop.
func (s *RecordStore) LoadAll(ctx context.Context) ([]*journal.LedgerRecord, error) {
	rows, err := s.api.Get(ctx, s.rangeA1())
	if err != nil {
		s.logger.Warn("Worksheet unreadable, returning empty ledger", "worksheet", s.worksheet, "error", err)
		return []*journal.LedgerRecord{}, nil
	}

	records := make([]*journal.LedgerRecord, 0, len(rows))
	for i, row := range rows {
		if i == 0 && isHeader(row) {
			continue
		}
		records = append(records, rowcodec.FromValues(row))
	}
	return records, nil
}

func (s *RecordStore) rangeA1() string {
	// A:K covers the ten legacy columns plus the entry ID
	return s.worksheet + "!A:K"
}

func isHeader(row []interface{}) bool {
	if len(row) == 0 {
		return false
	}
	first, ok := row[0].(string)
	return ok && first == "Fecha"
}

// googleValuesAPI is the production valuesAPI backed by the Sheets API.
type googleValuesAPI struct {
	service       *sheetsapi.Service
	spreadsheetID string
}

func (g *googleValuesAPI) Append(ctx context.Context, rangeA1 string, values [][]interface{}) error {
	_, err := g.service.Spreadsheets.Values.
		Append(g.spreadsheetID, rangeA1, &sheetsapi.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	return err
}

func (g *googleValuesAPI) Get(ctx context.Context, rangeA1 string) ([][]interface{}, error) {
	resp, err := g.service.Spreadsheets.Values.
		Get(g.spreadsheetID, rangeA1).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}
