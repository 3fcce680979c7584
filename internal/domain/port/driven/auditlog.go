package driven

import (
	"context"

	"github.com/efrayne/prrelay/internal/domain/model"
)

// AuditLog defines the driven port for append-only audit persistence.
// Appends are best-effort from the dispatcher's point of view: a failing
// sink is logged and never blocks the chat reply.
type AuditLog interface {
	Append(ctx context.Context, record model.AuditRecord) error
}

// AuditStore is an AuditLog that can also be queried. The local mirror
// implements it to back the audit API endpoint.
type AuditStore interface {
	AuditLog

	// ListRecent returns up to limit records, newest first.
	ListRecent(ctx context.Context, limit int) ([]model.AuditRecord, error)
}
