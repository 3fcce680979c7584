package model

import "time"

// PRReference identifies a pull request extracted from free-form message text.
// It is immutable once parsed.
type PRReference struct {
	Owner  string
	Repo   string
	Number int
}

// FullName returns the "owner/repo" form of the referenced repository.
func (r PRReference) FullName() string {
	return r.Owner + "/" + r.Repo
}

// PullRequestSnapshot is the subset of pull request state the relay needs,
// fetched fresh for every inbound event and never cached.
type PullRequestSnapshot struct {
	Submitter string // Login of the user who opened the PR.
	HeadSHA   string // Head commit SHA; check runs are fetched for this ref.
	CreatedAt time.Time
	BaseOwner string // Owner of the base repository (fork-aware).
	BaseRepo  string
}

// ReviewAge returns the elapsed time since the PR was opened, which the relay
// treats as the time review was requested.
func (s PullRequestSnapshot) ReviewAge(now time.Time) time.Duration {
	return now.Sub(s.CreatedAt)
}
