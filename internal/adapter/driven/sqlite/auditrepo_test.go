package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/efrayne/prrelay/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeAuditRecord(repo string, number int, loggedAt time.Time) model.AuditRecord {
	return model.AuditRecord{
		Submitter:         "alice",
		Repo:              repo,
		PRNumber:          number,
		ReviewStatus:      "No non-code owner reviews yet.",
		Message:           "No non-code owner reviews yet. :white_check_mark: All required checks passed",
		LoggedAt:          loggedAt,
		ReviewRequestedAt: loggedAt.Add(-30 * time.Hour),
	}
}

func TestAuditRepo_AppendAndListRecent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAuditRepo(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Append(ctx, makeAuditRecord("widgets", 42, base)))
	require.NoError(t, repo.Append(ctx, makeAuditRecord("gadgets", 7, base.Add(time.Hour))))
	require.NoError(t, repo.Append(ctx, makeAuditRecord("widgets", 43, base.Add(2*time.Hour))))

	got, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Newest first.
	assert.Equal(t, 43, got[0].PRNumber)
	assert.Equal(t, 7, got[1].PRNumber)
	assert.Equal(t, 42, got[2].PRNumber)

	assert.Equal(t, "alice", got[0].Submitter)
	assert.Equal(t, "widgets", got[0].Repo)
	assert.Equal(t, base.Add(2*time.Hour), got[0].LoggedAt)
	assert.Equal(t, base.Add(2*time.Hour).Add(-30*time.Hour), got[0].ReviewRequestedAt)
}

func TestAuditRepo_ListRecent_Limit(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAuditRepo(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Append(ctx, makeAuditRecord("widgets", i, base.Add(time.Duration(i)*time.Minute))))
	}

	got, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 4, got[0].PRNumber)
	assert.Equal(t, 3, got[1].PRNumber)
}

func TestAuditRepo_ListRecent_Empty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAuditRepo(db)

	got, err := repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
