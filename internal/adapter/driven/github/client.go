// Package github implements the GitHubClient port using the go-github library.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"

	"github.com/efrayne/prrelay/internal/domain/model"
	"github.com/efrayne/prrelay/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.GitHubClient = (*Client)(nil)

// codeownersPaths are the locations GitHub looks for a CODEOWNERS file, in
// precedence order.
var codeownersPaths = []string{".github/CODEOWNERS", "CODEOWNERS", "docs/CODEOWNERS"}

// Client implements the driven.GitHubClient port using the go-github library.
type Client struct {
	gh *gh.Client
}

// NewClient creates a new GitHub API client with the following transport stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  3. go-github (GitHub REST API client with PAT auth)
func NewClient(token string) *Client {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)
	client := gh.NewClient(rateLimitClient).WithAuthToken(token)

	return &Client{gh: client}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	client := gh.NewClient(httpClient)

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	return &Client{gh: client}, nil
}

// FetchPullRequest returns the snapshot of a single pull request: submitter,
// head SHA, creation time, and the base repository coordinates (which differ
// from the reference for PRs opened from forks).
func (c *Client) FetchPullRequest(ctx context.Context, ref model.PRReference) (*model.PullRequestSnapshot, error) {
	pr, resp, err := c.gh.PullRequests.Get(ctx, ref.Owner, ref.Repo, ref.Number)
	if err != nil {
		return nil, fmt.Errorf("fetching PR %s#%d: %w", ref.FullName(), ref.Number, err)
	}

	logRateLimit(resp, ref.FullName()+"/pr-detail", 1)

	return &model.PullRequestSnapshot{
		Submitter: pr.GetUser().GetLogin(),
		HeadSHA:   pr.GetHead().GetSHA(),
		CreatedAt: pr.GetCreatedAt().Time,
		BaseOwner: pr.GetBase().GetRepo().GetOwner().GetLogin(),
		BaseRepo:  pr.GetBase().GetRepo().GetName(),
	}, nil
}

// FetchCheckRuns retrieves all check runs for the given commit SHA.
// It handles pagination automatically and maps go-github types to domain model types.
func (c *Client) FetchCheckRuns(ctx context.Context, owner, repo, sha string) ([]model.CheckRun, error) {
	opts := &gh.ListCheckRunsOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	var allRuns []model.CheckRun

	for {
		result, resp, err := c.gh.Checks.ListCheckRunsForRef(ctx, owner, repo, sha, opts)
		if err != nil {
			return nil, fmt.Errorf("listing check runs for %s/%s@%s (page %d): %w", owner, repo, sha, opts.Page, err)
		}

		logRateLimit(resp, owner+"/"+repo+"/check-runs", len(result.CheckRuns))

		for _, cr := range result.CheckRuns {
			allRuns = append(allRuns, model.CheckRun{
				Name:       cr.GetName(),
				Status:     cr.GetStatus(),
				Conclusion: cr.GetConclusion(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allRuns, nil
}

// FetchRequestedReviewers returns logins of users whose review is currently
// requested on the pull request. Requested teams are ignored; code owner
// matching operates on user logins only.
func (c *Client) FetchRequestedReviewers(ctx context.Context, owner, repo string, number int) ([]string, error) {
	reviewers, resp, err := c.gh.PullRequests.ListReviewers(ctx, owner, repo, number, nil)
	if err != nil {
		return nil, fmt.Errorf("listing requested reviewers for %s/%s#%d: %w", owner, repo, number, err)
	}

	logRateLimit(resp, owner+"/"+repo+"/requested-reviewers", len(reviewers.Users))

	logins := make([]string, 0, len(reviewers.Users))
	for _, u := range reviewers.Users {
		logins = append(logins, u.GetLogin())
	}

	return logins, nil
}

// FetchReviews retrieves all submitted reviews for a pull request.
// It handles pagination automatically and maps go-github types to domain model types.
func (c *Client) FetchReviews(ctx context.Context, owner, repo string, number int) ([]model.Review, error) {
	opts := &gh.ListOptions{PerPage: 100}
	var allReviews []model.Review

	for {
		reviews, resp, err := c.gh.PullRequests.ListReviews(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("listing reviews for %s/%s#%d (page %d): %w", owner, repo, number, opts.Page, err)
		}

		for _, r := range reviews {
			allReviews = append(allReviews, model.Review{
				ReviewerLogin: r.GetUser().GetLogin(),
				State:         model.ReviewState(strings.ToLower(r.GetState())),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allReviews, nil
}

// ResolveCodeOwners fetches the repository's CODEOWNERS file and returns the
// set of user logins it names. A repository without the file (404 at every
// known location) yields an empty set, not an error.
func (c *Client) ResolveCodeOwners(ctx context.Context, owner, repo string) (map[string]bool, error) {
	for _, path := range codeownersPaths {
		content, _, resp, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, nil)
		if err != nil {
			if resp != nil && resp.StatusCode == http.StatusNotFound {
				continue
			}
			return nil, fmt.Errorf("fetching %s for %s/%s: %w", path, owner, repo, err)
		}

		raw, err := content.GetContent()
		if err != nil {
			return nil, fmt.Errorf("decoding %s for %s/%s: %w", path, owner, repo, err)
		}

		return parseCodeOwners(raw), nil
	}

	return map[string]bool{}, nil
}

// parseCodeOwners extracts user logins from CODEOWNERS content. Owner entries
// are @-prefixed tokens after the path pattern; team handles (@org/team) and
// email addresses are skipped since reviewer matching uses user logins.
func parseCodeOwners(content string) map[string]bool {
	owners := make(map[string]bool)

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		// fields[0] is the path pattern; the rest are owners.
		for _, field := range fields[1:] {
			if !strings.HasPrefix(field, "@") || strings.Contains(field, "/") {
				continue
			}
			owners[strings.TrimPrefix(field, "@")] = true
		}
	}

	return owners
}

// logRateLimit logs the GitHub API rate limit status after each call.
func logRateLimit(resp *gh.Response, endpoint string, count int) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Remaining < 100 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}
