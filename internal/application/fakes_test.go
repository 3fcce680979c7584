package application

import (
	"context"
	"time"

	"github.com/efrayne/prrelay/internal/domain/model"
	"github.com/efrayne/prrelay/internal/domain/port/driven"
)

// --- Port fakes shared by the service tests ---

type fakeGitHub struct {
	snapshot   *model.PullRequestSnapshot
	prErr      error
	checkRuns  []model.CheckRun
	checksErr  error
	requested  []string
	reqErr     error
	reviews    []model.Review
	reviewsErr error
	codeOwners map[string]bool
	ownersErr  error

	// Recorded call coordinates.
	checksOwner, checksRepo, checksSHA string
	reviewersOwner, reviewersRepo      string
}

var _ driven.GitHubClient = (*fakeGitHub)(nil)

func (f *fakeGitHub) FetchPullRequest(_ context.Context, _ model.PRReference) (*model.PullRequestSnapshot, error) {
	return f.snapshot, f.prErr
}

func (f *fakeGitHub) FetchCheckRuns(_ context.Context, owner, repo, sha string) ([]model.CheckRun, error) {
	f.checksOwner, f.checksRepo, f.checksSHA = owner, repo, sha
	return f.checkRuns, f.checksErr
}

func (f *fakeGitHub) FetchRequestedReviewers(_ context.Context, owner, repo string, _ int) ([]string, error) {
	f.reviewersOwner, f.reviewersRepo = owner, repo
	return f.requested, f.reqErr
}

func (f *fakeGitHub) FetchReviews(_ context.Context, _, _ string, _ int) ([]model.Review, error) {
	return f.reviews, f.reviewsErr
}

func (f *fakeGitHub) ResolveCodeOwners(_ context.Context, _, _ string) (map[string]bool, error) {
	return f.codeOwners, f.ownersErr
}

type postedReply struct {
	channel  string
	threadTS string
	text     string
}

type fakeMessenger struct {
	posted []postedReply
	err    error
}

var _ driven.Messenger = (*fakeMessenger)(nil)

func (f *fakeMessenger) PostThreadReply(_ context.Context, channel, threadTS, text string) error {
	f.posted = append(f.posted, postedReply{channel: channel, threadTS: threadTS, text: text})
	return f.err
}

type fakeAuditLog struct {
	records []model.AuditRecord
	err     error
}

var _ driven.AuditLog = (*fakeAuditLog)(nil)

func (f *fakeAuditLog) Append(_ context.Context, record model.AuditRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, record)
	return nil
}

// fakeDirectory returns one queued response per FetchUsers call.
type fakeDirectory struct {
	responses []directoryResponse
	calls     int
}

type directoryResponse struct {
	users []model.DirectoryUser
	err   error
}

var _ driven.Directory = (*fakeDirectory)(nil)

func (f *fakeDirectory) FetchUsers(_ context.Context) ([]model.DirectoryUser, error) {
	resp := f.responses[f.calls]
	f.calls++
	return resp.users, resp.err
}

type fakeRosterWriter struct {
	path  string
	users []model.DirectoryUser
	err   error
}

var _ driven.RosterWriter = (*fakeRosterWriter)(nil)

func (f *fakeRosterWriter) WriteRoster(path string, users []model.DirectoryUser) error {
	f.path = path
	f.users = users
	return f.err
}

// fixedClock returns a clock function pinned to t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
