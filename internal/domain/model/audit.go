package model

import "time"

// AuditRecord is one logged row summarizing a processed PR-notification
// event. The audit trail is append-only; records are never updated or
// deleted.
type AuditRecord struct {
	Submitter         string // PR author's login.
	Repo              string // Repository name (without owner).
	PRNumber          int
	ReviewStatus      string // Review-status portion of the reply.
	Message           string // Full reply text posted to the thread.
	LoggedAt          time.Time
	ReviewRequestedAt time.Time // PR creation time, treated as review-request time.
}
