package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/planify/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormSessionRepo_PutGet(t *testing.T) {
	repo := NewSQLiteFormSessionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "s1", `{"subject":"Math"}`))

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", got.SessionID)
	assert.Equal(t, `{"subject":"Math"}`, got.Payload)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestFormSessionRepo_PayloadStoredVerbatim(t *testing.T) {
	repo := NewSQLiteFormSessionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "s1", "{not json"))

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "{not json", got.Payload)
}

func TestFormSessionRepo_SessionsAreIsolated(t *testing.T) {
	repo := NewSQLiteFormSessionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "a", "A"))
	require.NoError(t, repo.Put(ctx, "b", "B"))
	require.NoError(t, repo.Delete(ctx, "a"))

	_, err := repo.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := repo.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "B", got.Payload)
}

func TestFormSessionRepo_DeleteMissingIsNoop(t *testing.T) {
	repo := NewSQLiteFormSessionRepo(testutil.NewTestDB(t))
	assert.NoError(t, repo.Delete(context.Background(), "missing"))
}

func TestFormSessionRepo_PruneBefore(t *testing.T) {
	repo := NewSQLiteFormSessionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return base }
	require.NoError(t, repo.Put(ctx, "old", "x"))
	repo.now = func() time.Time { return base.Add(13*time.Hour + 500*time.Millisecond) }
	require.NoError(t, repo.Put(ctx, "fresh", "y"))

	n, err := repo.PruneBefore(ctx, base.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.Get(ctx, "old")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.Get(ctx, "fresh")
	assert.NoError(t, err)
}
