package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/efrayne/prrelay/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// statusResponse acknowledges an event delivery.
type statusResponse struct {
	Status string `json:"status"`
}

// challengeResponse echoes the URL verification challenge token.
type challengeResponse struct {
	Challenge string `json:"challenge"`
}

// healthResponse is the JSON representation of the health check endpoint.
type healthResponse struct {
	Status string `json:"status"`
}

// AuditRecordResponse is the JSON representation of one mirrored audit row.
type AuditRecordResponse struct {
	Submitter         string `json:"submitter"`
	Repo              string `json:"repo"`
	PRNumber          int    `json:"pr_number"`
	ReviewStatus      string `json:"review_status"`
	Message           string `json:"message"`
	LoggedAt          string `json:"logged_at"`
	ReviewRequestedAt string `json:"review_requested_at"`
}

// toAuditRecordResponse converts a domain AuditRecord to its JSON representation.
func toAuditRecordResponse(record model.AuditRecord) AuditRecordResponse {
	return AuditRecordResponse{
		Submitter:         record.Submitter,
		Repo:              record.Repo,
		PRNumber:          record.PRNumber,
		ReviewStatus:      record.ReviewStatus,
		Message:           record.Message,
		LoggedAt:          record.LoggedAt.UTC().Format(time.RFC3339),
		ReviewRequestedAt: record.ReviewRequestedAt.UTC().Format(time.RFC3339),
	}
}
