package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/efrayne/prrelay/internal/domain/model"
	"github.com/efrayne/prrelay/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.AuditStore = (*AuditRepo)(nil)

// AuditRepo is the SQLite implementation of the AuditStore port interface.
// It mirrors the spreadsheet audit trail locally; the table is append-only.
type AuditRepo struct {
	db *DB
}

// NewAuditRepo creates a new AuditRepo backed by the given DB.
func NewAuditRepo(db *DB) *AuditRepo {
	return &AuditRepo{db: db}
}

// Append inserts one audit record. Records are never updated or deleted.
func (r *AuditRepo) Append(ctx context.Context, record model.AuditRecord) error {
	const query = `
		INSERT INTO audit_records (submitter, repo, pr_number, review_status, message, logged_at, review_requested_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Writer.ExecContext(ctx, query,
		record.Submitter,
		record.Repo,
		record.PRNumber,
		record.ReviewStatus,
		record.Message,
		record.LoggedAt.UTC().Format(time.RFC3339),
		record.ReviewRequestedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert audit record for %s#%d: %w", record.Repo, record.PRNumber, err)
	}

	return nil
}

// ListRecent returns up to limit records, newest first.
func (r *AuditRepo) ListRecent(ctx context.Context, limit int) ([]model.AuditRecord, error) {
	const query = `
		SELECT submitter, repo, pr_number, review_status, message, logged_at, review_requested_at
		FROM audit_records
		ORDER BY logged_at DESC, id DESC
		LIMIT ?
	`

	rows, err := r.db.Reader.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit records: %w", err)
	}
	defer rows.Close()

	var records []model.AuditRecord
	for rows.Next() {
		var record model.AuditRecord
		var loggedAt, requestedAt string

		if err := rows.Scan(
			&record.Submitter, &record.Repo, &record.PRNumber,
			&record.ReviewStatus, &record.Message, &loggedAt, &requestedAt,
		); err != nil {
			return nil, fmt.Errorf("scan audit record: %w", err)
		}

		if record.LoggedAt, err = time.Parse(time.RFC3339, loggedAt); err != nil {
			return nil, fmt.Errorf("parse logged_at: %w", err)
		}
		if record.ReviewRequestedAt, err = time.Parse(time.RFC3339, requestedAt); err != nil {
			return nil, fmt.Errorf("parse review_requested_at: %w", err)
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit records: %w", err)
	}

	return records, nil
}
