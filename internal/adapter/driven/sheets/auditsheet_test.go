package sheets_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	sheetsAdapter "github.com/efrayne/prrelay/internal/adapter/driven/sheets"
	"github.com/efrayne/prrelay/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSheet(t *testing.T, handler http.Handler) *sheetsAdapter.AuditSheet {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sheet, err := sheetsAdapter.NewAuditSheet(context.Background(), "sheet-123",
		option.WithEndpoint(server.URL),
		option.WithHTTPClient(server.Client()),
	)
	require.NoError(t, err)

	return sheet
}

func TestAppend_WritesRawRow(t *testing.T) {
	var gotPath string
	var gotBody sheetsapi.ValueRange

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, "RAW", r.URL.Query().Get("valueInputOption"))
		assert.Equal(t, "INSERT_ROWS", r.URL.Query().Get("insertDataOption"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"spreadsheetId": "sheet-123"}`))
	})

	sheet := newTestSheet(t, handler)

	record := model.AuditRecord{
		Submitter:         "alice",
		Repo:              "widgets",
		PRNumber:          42,
		ReviewStatus:      "No non-code owner reviews yet.",
		Message:           "No non-code owner reviews yet. :white_check_mark: All required checks passed for PR #42",
		LoggedAt:          time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		ReviewRequestedAt: time.Date(2026, 2, 28, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, sheet.Append(context.Background(), record))

	assert.Contains(t, gotPath, "sheet-123")
	assert.Contains(t, gotPath, "Sheet1!A8")
	require.Len(t, gotBody.Values, 1)
	row := gotBody.Values[0]
	require.Len(t, row, 7)
	assert.Equal(t, "alice", row[0])
	assert.Equal(t, "widgets", row[1])
	assert.Equal(t, float64(42), row[2]) // JSON numbers decode as float64.
	assert.Equal(t, "2026-03-01T12:00:00Z", row[5])
	assert.Equal(t, "2026-02-28T09:00:00Z", row[6])
}

func TestAppend_ErrorIsWrapped(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": {"code": 403, "message": "forbidden"}}`))
	})

	sheet := newTestSheet(t, handler)
	err := sheet.Append(context.Background(), model.AuditRecord{Repo: "widgets", PRNumber: 42})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "appending audit row for widgets#42")
}
