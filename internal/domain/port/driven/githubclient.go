package driven

import (
	"context"

	"github.com/efrayne/prrelay/internal/domain/model"
)

// GitHubClient defines the driven port for reading pull request state from
// the GitHub API. All methods fetch fresh data; nothing is cached at this
// layer beyond HTTP conditional requests inside the adapter.
type GitHubClient interface {
	// FetchPullRequest returns the snapshot of a single pull request.
	FetchPullRequest(ctx context.Context, ref model.PRReference) (*model.PullRequestSnapshot, error)
	// FetchCheckRuns returns all check runs for the given commit SHA.
	FetchCheckRuns(ctx context.Context, owner, repo, sha string) ([]model.CheckRun, error)
	// FetchRequestedReviewers returns logins of users whose review is
	// currently requested on the pull request.
	FetchRequestedReviewers(ctx context.Context, owner, repo string, number int) ([]string, error)
	// FetchReviews returns all submitted reviews on the pull request.
	FetchReviews(ctx context.Context, owner, repo string, number int) ([]model.Review, error)
	// ResolveCodeOwners returns the set of user logins named in the
	// repository's CODEOWNERS file. A repository without the file yields an
	// empty set, not an error.
	ResolveCodeOwners(ctx context.Context, owner, repo string) (map[string]bool, error)
}
