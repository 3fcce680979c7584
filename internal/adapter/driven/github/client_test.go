package github_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	ghAdapter "github.com/efrayne/prrelay/internal/adapter/driven/github"
	"github.com/efrayne/prrelay/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient creates a Client backed by the given httptest handler.
func newTestClient(t *testing.T, handler http.Handler) *ghAdapter.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := ghAdapter.NewClientWithHTTPClient(server.Client(), server.URL+"/")
	require.NoError(t, err)

	return client
}

func TestFetchPullRequest_MapsSnapshot(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/widgets/pulls/42", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"number": 42,
			"user": {"login": "alice"},
			"created_at": "2026-01-01T00:00:00Z",
			"head": {"sha": "abc123"},
			"base": {"repo": {"name": "widgets", "owner": {"login": "acme"}}}
		}`))
	})

	client := newTestClient(t, handler)
	snap, err := client.FetchPullRequest(context.Background(), model.PRReference{Owner: "acme", Repo: "widgets", Number: 42})

	require.NoError(t, err)
	assert.Equal(t, "alice", snap.Submitter)
	assert.Equal(t, "abc123", snap.HeadSHA)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), snap.CreatedAt)
	assert.Equal(t, "acme", snap.BaseOwner)
	assert.Equal(t, "widgets", snap.BaseRepo)
}

func TestFetchPullRequest_ForkBaseDiffersFromReference(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"number": 7,
			"user": {"login": "bob"},
			"created_at": "2026-02-01T00:00:00Z",
			"head": {"sha": "def456"},
			"base": {"repo": {"name": "widgets", "owner": {"login": "upstream"}}}
		}`))
	})

	client := newTestClient(t, handler)
	snap, err := client.FetchPullRequest(context.Background(), model.PRReference{Owner: "fork-owner", Repo: "widgets", Number: 7})

	require.NoError(t, err)
	assert.Equal(t, "upstream", snap.BaseOwner)
}

func TestFetchPullRequest_NotFound(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	client := newTestClient(t, handler)
	_, err := client.FetchPullRequest(context.Background(), model.PRReference{Owner: "acme", Repo: "widgets", Number: 999})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching PR acme/widgets#999")
}

func TestFetchCheckRuns_MapsConclusions(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/widgets/commits/abc123/check-runs", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"total_count": 2,
			"check_runs": [
				{"name": "build", "status": "completed", "conclusion": "success"},
				{"name": "lint", "status": "completed", "conclusion": "failure"}
			]
		}`))
	})

	client := newTestClient(t, handler)
	runs, err := client.FetchCheckRuns(context.Background(), "acme", "widgets", "abc123")

	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "build", runs[0].Name)
	assert.True(t, runs[0].Passed())
	assert.Equal(t, "lint", runs[1].Name)
	assert.False(t, runs[1].Passed())
}

func TestFetchCheckRuns_Empty(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total_count": 0, "check_runs": []}`))
	})

	client := newTestClient(t, handler)
	runs, err := client.FetchCheckRuns(context.Background(), "acme", "widgets", "abc123")

	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestFetchRequestedReviewers_UsersOnly(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/widgets/pulls/42/requested_reviewers", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"users": [{"login": "carol"}, {"login": "dave"}],
			"teams": [{"slug": "platform"}]
		}`))
	})

	client := newTestClient(t, handler)
	logins, err := client.FetchRequestedReviewers(context.Background(), "acme", "widgets", 42)

	require.NoError(t, err)
	assert.Equal(t, []string{"carol", "dave"}, logins)
}

func TestFetchReviews_LowercasesState(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/widgets/pulls/42/reviews", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"user": {"login": "carol"}, "state": "APPROVED"},
			{"user": {"login": "dave"}, "state": "CHANGES_REQUESTED"}
		]`))
	})

	client := newTestClient(t, handler)
	reviews, err := client.FetchReviews(context.Background(), "acme", "widgets", 42)

	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, model.ReviewStateApproved, reviews[0].State)
	assert.True(t, reviews[0].IsApproval())
	assert.Equal(t, model.ReviewStateChangesRequested, reviews[1].State)
	assert.False(t, reviews[1].IsApproval())
}

// contentsJSON builds a GitHub contents API file response with base64 content.
func contentsJSON(t *testing.T, path, content string) []byte {
	t.Helper()

	body, err := json.Marshal(map[string]any{
		"type":     "file",
		"encoding": "base64",
		"path":     path,
		"content":  base64.StdEncoding.EncodeToString([]byte(content)),
	})
	require.NoError(t, err)

	return body
}

func TestResolveCodeOwners_ParsesUserHandles(t *testing.T) {
	codeowners := "# Default owners\n" +
		"* @alice @bob\n" +
		"\n" +
		"/docs/ @carol @acme/docs-team\n" +
		"*.go dave@example.com @erin\n"

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/repos/acme/widgets/contents/.github/CODEOWNERS" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(contentsJSON(t, ".github/CODEOWNERS", codeowners))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	client := newTestClient(t, handler)
	owners, err := client.ResolveCodeOwners(context.Background(), "acme", "widgets")

	require.NoError(t, err)
	assert.Equal(t, map[string]bool{
		"alice": true,
		"bob":   true,
		"carol": true,
		"erin":  true,
	}, owners)
}

func TestResolveCodeOwners_FallsBackToRootLocation(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/repos/acme/widgets/contents/CODEOWNERS" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(contentsJSON(t, "CODEOWNERS", "* @frank\n"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	client := newTestClient(t, handler)
	owners, err := client.ResolveCodeOwners(context.Background(), "acme", "widgets")

	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"frank": true}, owners)
}

func TestResolveCodeOwners_MissingFileIsEmptySet(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	client := newTestClient(t, handler)
	owners, err := client.ResolveCodeOwners(context.Background(), "acme", "widgets")

	require.NoError(t, err)
	assert.Empty(t, owners)
}
