package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/supermega/opsd/config"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// Appender writes contact rows into a Google spreadsheet. Each call builds
// its own short-lived API client; only the spreadsheet ID survives between
// calls, so a spreadsheet created on first use is reused afterwards.
type Appender struct {
	l   *slog.Logger
	cfg config.GoogleConfig

	mu            sync.Mutex
	spreadsheetID string
}

func NewAppender(cfg config.GoogleConfig) *Appender {
	return &Appender{
		l:             slog.With(slog.String("component", "sheets-appender")),
		cfg:           cfg,
		spreadsheetID: cfg.SpreadsheetID,
	}
}

func (a *Appender) log() *slog.Logger {
	if a.l != nil {
		return a.l
	}
	return slog.With(slog.String("component", "sheets-appender"))
}

func (a *Appender) newService(ctx context.Context) (*gsheets.Service, error) {
	if a.cfg.SheetsCredentials == "" {
		return nil, fmt.Errorf("sheets service-account credentials are not configured")
	}
	svc, err := gsheets.NewService(ctx,
		option.WithCredentialsJSON([]byte(a.cfg.SheetsCredentials)),
		option.WithScopes(gsheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("init sheets client: %w", err)
	}
	return svc, nil
}

// AppendRow appends one row, creating the spreadsheet (with a header row)
// on first use when no spreadsheet ID is pinned in the config.
func (a *Appender) AppendRow(ctx context.Context, header []string, row []any) error {
	svc, err := a.newService(ctx)
	if err != nil {
		return err
	}

	id, err := a.ensureSpreadsheet(ctx, svc, header)
	if err != nil {
		return err
	}

	rng := fmt.Sprintf("%s!A1", a.cfg.WorksheetTitle)
	_, err = svc.Spreadsheets.Values.Append(id, rng, &gsheets.ValueRange{
		Values: [][]any{row},
	}).ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append row: %w", err)
	}

	a.log().Info("contact saved to spreadsheet", slog.String("spreadsheet-id", id))
	return nil
}

func (a *Appender) ensureSpreadsheet(ctx context.Context, svc *gsheets.Service, header []string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.spreadsheetID != "" {
		return a.spreadsheetID, nil
	}

	created, err := svc.Spreadsheets.Create(&gsheets.Spreadsheet{
		Properties: &gsheets.SpreadsheetProperties{Title: a.cfg.SpreadsheetTitle},
		Sheets: []*gsheets.Sheet{
			{Properties: &gsheets.SheetProperties{Title: a.cfg.WorksheetTitle}},
		},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create spreadsheet %q: %w", a.cfg.SpreadsheetTitle, err)
	}

	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	rng := fmt.Sprintf("%s!A1", a.cfg.WorksheetTitle)
	_, err = svc.Spreadsheets.Values.Append(created.SpreadsheetId, rng, &gsheets.ValueRange{
		Values: [][]any{headerRow},
	}).ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("write header row: %w", err)
	}

	a.spreadsheetID = created.SpreadsheetId

	// log the ID so it can be pinned via GOOGLE_SHEETS_SPREADSHEET_ID
	a.log().Info("created spreadsheet",
		slog.String("title", a.cfg.SpreadsheetTitle),
		slog.String("spreadsheet-id", created.SpreadsheetId),
	)
	return a.spreadsheetID, nil
}

// Ping verifies the credentials parse and, when an ID is pinned, that the
// spreadsheet is reachable.
func (a *Appender) Ping(ctx context.Context) error {
	svc, err := a.newService(ctx)
	if err != nil {
		return err
	}
	if a.cfg.SpreadsheetID != "" {
		if _, err := svc.Spreadsheets.Get(a.cfg.SpreadsheetID).Context(ctx).Do(); err != nil {
			return fmt.Errorf("get spreadsheet %s: %w", a.cfg.SpreadsheetID, err)
		}
	}
	return nil
}
