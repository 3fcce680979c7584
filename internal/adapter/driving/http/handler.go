// Package httphandler is the HTTP driving adapter: it receives Slack event
// subscription deliveries and serves the small observability API.
package httphandler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/slack-go/slack/slackevents"

	"github.com/efrayne/prrelay/internal/application"
	"github.com/efrayne/prrelay/internal/domain/model"
	"github.com/efrayne/prrelay/internal/domain/port/driven"
)

// Handler is the HTTP driving adapter for the relay.
type Handler struct {
	relay      *application.RelayService
	auditStore driven.AuditStore
	botUserID  string
	logger     *slog.Logger

	// cursor is the timestamp of the newest processed message. Advancing it
	// before running the pipeline makes processing at-most-once: a crash
	// mid-pipeline skips the event rather than risking a duplicate reply on
	// the platform's redelivery.
	mu     sync.Mutex
	cursor string
}

// NewHandler creates a Handler. botUserID is the relay's own Slack user ID,
// used to ignore its own replies echoed back through the event subscription.
func NewHandler(relay *application.RelayService, auditStore driven.AuditStore, botUserID string, logger *slog.Logger) *Handler {
	return &Handler{
		relay:      relay,
		auditStore: auditStore,
		botUserID:  botUserID,
		logger:     logger,
		cursor:     "0", // Sentinel below any real Slack timestamp.
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with logging and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /slack/events", h.Events)
	mux.HandleFunc("GET /api/v1/audit", h.ListAudit)
	mux.HandleFunc("GET /api/v1/health", h.Health)

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// Events is the Slack event-subscription entry point. It answers URL
// verification challenges, filters out everything but fresh user messages,
// and runs the relay pipeline synchronously before responding.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}

	event, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		h.logger.Warn("unparseable event payload", "error", err)
		writeError(w, http.StatusBadRequest, "invalid event payload")
		return
	}

	if event.Type == slackevents.URLVerification {
		var challenge slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &challenge); err != nil {
			writeError(w, http.StatusBadRequest, "invalid challenge payload")
			return
		}
		writeJSON(w, http.StatusOK, challengeResponse{Challenge: challenge.Challenge})
		return
	}

	msg, ok := h.acceptMessage(event)
	if !ok {
		writeJSON(w, http.StatusOK, statusResponse{Status: "ignored"})
		return
	}

	h.relay.ProcessMessage(r.Context(), msg)
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

// acceptMessage applies the inbound filter: only plain user messages (no
// subtype) from someone other than the relay itself, with a timestamp
// strictly newer than the cursor, are processed.
func (h *Handler) acceptMessage(event slackevents.EventsAPIEvent) (model.InboundMessage, bool) {
	if event.Type != slackevents.CallbackEvent {
		return model.InboundMessage{}, false
	}

	ev, ok := event.InnerEvent.Data.(*slackevents.MessageEvent)
	if !ok {
		return model.InboundMessage{}, false
	}

	// Subtyped messages are edits, deletions, joins, and the like.
	if ev.SubType != "" || ev.BotID != "" || ev.User == h.botUserID {
		return model.InboundMessage{}, false
	}

	if !h.advanceCursor(ev.TimeStamp) {
		h.logger.Debug("duplicate or stale event ignored", "ts", ev.TimeStamp)
		return model.InboundMessage{}, false
	}

	threadTS := ev.ThreadTimeStamp
	if threadTS == "" {
		threadTS = ev.TimeStamp
	}

	return model.InboundMessage{
		User:      ev.User,
		Channel:   ev.Channel,
		Timestamp: ev.TimeStamp,
		ThreadTS:  threadTS,
		Text:      ev.Text,
	}, true
}

// advanceCursor moves the dedup cursor to ts when ts is strictly newer.
// Slack timestamps are zero-padded decimal strings, so lexicographic
// comparison matches numeric ordering.
func (h *Handler) advanceCursor(ts string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ts <= h.cursor {
		return false
	}
	h.cursor = ts
	return true
}

// ListAudit returns recently mirrored audit records, newest first.
func (h *Handler) ListAudit(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	records, err := h.auditStore.ListRecent(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list audit records", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]AuditRecordResponse, 0, len(records))
	for _, record := range records {
		resp = append(resp, toAuditRecordResponse(record))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Health reports process liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
