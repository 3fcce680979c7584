// Package sheets implements the AuditLog port against the Google Sheets API.
package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/efrayne/prrelay/internal/domain/model"
	"github.com/efrayne/prrelay/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.AuditLog = (*AuditSheet)(nil)

// appendRange is the search range for values.append. The API locates the
// table containing this range and inserts new rows after its last row.
const appendRange = "Sheet1!A8"

// AuditSheet appends audit records as rows of a Google Sheets spreadsheet.
// The sheet is append-only; rows are never updated or deleted.
type AuditSheet struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

// NewAuditSheet creates an AuditSheet for the given spreadsheet. Options are
// passed to the Sheets service constructor; production wiring supplies
// credentials, tests supply an httptest endpoint.
func NewAuditSheet(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*AuditSheet, error) {
	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	return &AuditSheet{
		svc:           svc,
		spreadsheetID: spreadsheetID,
	}, nil
}

// Append writes one audit record as a new spreadsheet row with RAW input
// (no formula interpretation of user-controlled message text).
func (s *AuditSheet) Append(ctx context.Context, record model.AuditRecord) error {
	values := &sheetsapi.ValueRange{
		Values: [][]any{{
			record.Submitter,
			record.Repo,
			record.PRNumber,
			record.ReviewStatus,
			record.Message,
			record.LoggedAt.UTC().Format(time.RFC3339),
			record.ReviewRequestedAt.UTC().Format(time.RFC3339),
		}},
	}

	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, appendRange, values).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("appending audit row for %s#%d: %w", record.Repo, record.PRNumber, err)
	}

	slog.Debug("audit row appended", "repo", record.Repo, "pr", record.PRNumber)
	return nil
}
