package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/efrayne/prrelay/internal/domain/model"
	"github.com/efrayne/prrelay/internal/domain/port/driven"
)

// Dispatcher performs the two side effects of a processed event: appending
// an audit record to every configured audit log and posting the reply into
// the originating thread. Both are best-effort; failures are logged, never
// retried, and never surfaced to the sender.
type Dispatcher struct {
	messenger driven.Messenger
	auditLogs []driven.AuditLog
	logger    *slog.Logger
	now       func() time.Time
}

// NewDispatcher creates a Dispatcher. auditLogs may name any number of
// sinks; the spreadsheet and the local mirror are both wired in production.
func NewDispatcher(messenger driven.Messenger, auditLogs []driven.AuditLog, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		messenger: messenger,
		auditLogs: auditLogs,
		logger:    logger,
		now:       time.Now,
	}
}

// Dispatch appends the audit record first (for audit completeness), then
// posts the reply. An audit failure does not prevent the reply.
func (d *Dispatcher) Dispatch(ctx context.Context, msg model.InboundMessage, enrichment Enrichment, ref model.PRReference) {
	record := model.AuditRecord{
		Submitter:         enrichment.Snapshot.Submitter,
		Repo:              enrichment.Snapshot.BaseRepo,
		PRNumber:          ref.Number,
		ReviewStatus:      enrichment.ReviewStatus,
		Message:           enrichment.Message,
		LoggedAt:          d.now(),
		ReviewRequestedAt: enrichment.Snapshot.CreatedAt,
	}

	for _, log := range d.auditLogs {
		if err := log.Append(ctx, record); err != nil {
			d.logger.Error("audit append failed",
				"repo", record.Repo, "pr", record.PRNumber, "error", err)
		}
	}

	d.Reply(ctx, msg, enrichment.Message)
}

// Reply posts text into the thread the triggering message belongs to.
// A post failure is logged and dropped.
func (d *Dispatcher) Reply(ctx context.Context, msg model.InboundMessage, text string) {
	if err := d.messenger.PostThreadReply(ctx, msg.Channel, msg.ThreadTS, text); err != nil {
		d.logger.Error("thread reply failed",
			"channel", msg.Channel, "thread_ts", msg.ThreadTS, "error", err)
	}
}
