package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/efrayne/prrelay/internal/domain/model"
	"github.com/efrayne/prrelay/internal/domain/port/driven"
)

// Fixed reply texts for upstream failures. The same detail-failure text
// answers messages without a recognizable PR link, so every abort path is
// uniform from the sender's point of view.
const (
	ReplyPRDetailsFailure = "Failed to retrieve PR details from GitHub."
	ReplyPRChecksFailure  = "Failed to retrieve PR checks from GitHub."
)

// reviewAgeThreshold is the boundary for the time-status sentence. Strictly
// greater counts as over; exactly at the threshold does not.
const reviewAgeThreshold = 24 * time.Hour

// Enrichment is the derived status for one referenced pull request.
type Enrichment struct {
	Snapshot     model.PullRequestSnapshot
	ReviewStatus string // Review-status prefix of the reply.
	Message      string // Full reply text.
}

// PipelineError is an upstream failure that aborts enrichment. Reply carries
// the fixed user-visible text posted to the thread in place of a status.
type PipelineError struct {
	Reply string
	Err   error
}

// Error implements the error interface.
func (e *PipelineError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying upstream error.
func (e *PipelineError) Unwrap() error { return e.Err }

// EnrichService derives a status message for a referenced pull request by a
// sequence of GitHub lookups: PR detail, check runs, requested reviewers,
// submitted reviews, and code owners.
type EnrichService struct {
	gh     driven.GitHubClient
	logger *slog.Logger
	now    func() time.Time // Injectable clock for threshold tests.
}

// NewEnrichService creates an EnrichService with the required dependencies.
func NewEnrichService(gh driven.GitHubClient, logger *slog.Logger) *EnrichService {
	return &EnrichService{
		gh:     gh,
		logger: logger,
		now:    time.Now,
	}
}

// Enrich runs the lookup sequence for ref. Failures of the PR detail or
// check-run fetches abort with a *PipelineError; failures of the reviewer,
// review, and code-owner lookups degrade to empty sets.
func (s *EnrichService) Enrich(ctx context.Context, ref model.PRReference) (*Enrichment, error) {
	snap, err := s.gh.FetchPullRequest(ctx, ref)
	if err != nil {
		return nil, &PipelineError{Reply: ReplyPRDetailsFailure, Err: err}
	}

	timeStatus := timeStatusSentence(snap.ReviewAge(s.now()))

	runs, err := s.gh.FetchCheckRuns(ctx, ref.Owner, ref.Repo, snap.HeadSHA)
	if err != nil {
		return nil, &PipelineError{Reply: ReplyPRChecksFailure, Err: err}
	}
	checksMessage := checksStatusMessage(ref.Number, model.FailedCheckNames(runs))

	// Reviewer-side lookups target the base repository, which differs from
	// the reference for PRs opened from forks.
	codeOwners, err := s.gh.ResolveCodeOwners(ctx, snap.BaseOwner, snap.BaseRepo)
	if err != nil {
		s.logger.Warn("code owner resolution failed, treating as empty set",
			"repo", snap.BaseOwner+"/"+snap.BaseRepo, "error", err)
		codeOwners = map[string]bool{}
	}

	requested, err := s.gh.FetchRequestedReviewers(ctx, snap.BaseOwner, snap.BaseRepo, ref.Number)
	if err != nil {
		s.logger.Warn("requested reviewer fetch failed, treating as empty set",
			"pr", ref.Number, "error", err)
		requested = nil
	}

	reviews, err := s.gh.FetchReviews(ctx, snap.BaseOwner, snap.BaseRepo, ref.Number)
	if err != nil {
		s.logger.Warn("review fetch failed, treating as empty set",
			"pr", ref.Number, "error", err)
		reviews = nil
	}

	reviewStatus := reviewStatusMessage(
		model.OwnerReviewRequested(requested, codeOwners),
		model.NonOwnerApprovers(reviews, codeOwners),
	)

	return &Enrichment{
		Snapshot:     *snap,
		ReviewStatus: reviewStatus,
		Message:      reviewStatus + " " + checksMessage + " " + timeStatus,
	}, nil
}

// timeStatusSentence classifies the review age against the 24-hour
// threshold. Exactly 24h is not over (strict greater-than).
func timeStatusSentence(age time.Duration) string {
	if age > reviewAgeThreshold {
		return "and has been over 24 hours since the PR was requested for review."
	}
	return "and has not been over 24 hours since the PR was requested for review."
}

// checksStatusMessage summarizes check run results. An empty failed list,
// including the no-checks-configured case, reads as all passed.
func checksStatusMessage(prNumber int, failed []string) string {
	if len(failed) > 0 {
		return fmt.Sprintf(":x: Required checks failed for PR #%d: %s", prNumber, strings.Join(failed, ", "))
	}
	return fmt.Sprintf(":white_check_mark: All required checks passed for PR #%d", prNumber)
}

// reviewStatusMessage composes the review-status prefix: an optional
// code-owner-requested flag followed by the non-code-owner approval summary.
func reviewStatusMessage(ownerRequested bool, approvers []string) string {
	var b strings.Builder

	if ownerRequested {
		b.WriteString("Code Owner Review Requested. ")
	}

	if len(approvers) > 0 {
		fmt.Fprintf(&b, "Approved by non-code owners: %s.", strings.Join(approvers, ", "))
	} else {
		b.WriteString("No non-code owner reviews yet.")
	}

	return b.String()
}
