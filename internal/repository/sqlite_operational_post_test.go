package repository

import (
	"context"
	"testing"
	"time"

	"github.com/safend/workorders/internal/domain"
	"github.com/safend/workorders/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationalPostRepo_ReplaceIsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	orders := NewSQLiteWorkOrderRepo(db)
	repo := NewSQLiteOperationalPostRepo(db)
	ctx := context.Background()

	w := testutil.NewTestWorkOrder("Acme",
		testutil.WithCode("WO-2025-0300"),
		testutil.WithPost(testutil.NewTestPost("Gate")),
		testutil.WithPost(testutil.NewTestPost("Lobby")),
	)
	require.NoError(t, orders.Create(ctx, w))

	now := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.ReplaceForWorkOrder(ctx, w.RecordID, domain.ProjectOperationalPosts(w, now)))
	first, err := repo.ListByWorkOrder(ctx, w.RecordID)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "P-0300-01", first[0].PostCode)
	assert.Equal(t, []domain.Shift{domain.ShiftDay}, first[0].Shifts)
	assert.Equal(t, domain.OperationalActive, first[0].Status)

	later := now.Add(time.Hour)
	require.NoError(t, repo.ReplaceForWorkOrder(ctx, w.RecordID, domain.ProjectOperationalPosts(w, later)))
	second, err := repo.ListByWorkOrder(ctx, w.RecordID)
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.True(t, now.Equal(second[0].CreatedAt))
	assert.True(t, later.Equal(second[0].UpdatedAt))
}

func TestOperationalPostRepo_RemovesStalePosts(t *testing.T) {
	db := testutil.NewTestDB(t)
	orders := NewSQLiteWorkOrderRepo(db)
	repo := NewSQLiteOperationalPostRepo(db)
	ctx := context.Background()

	w := testutil.NewTestWorkOrder("Acme",
		testutil.WithPost(testutil.NewTestPost("Gate")),
		testutil.WithPost(testutil.NewTestPost("Lobby")),
	)
	require.NoError(t, orders.Create(ctx, w))
	now := time.Now().UTC()
	require.NoError(t, repo.ReplaceForWorkOrder(ctx, w.RecordID, domain.ProjectOperationalPosts(w, now)))

	w.Posts = w.Posts[:1]
	require.NoError(t, repo.ReplaceForWorkOrder(ctx, w.RecordID, domain.ProjectOperationalPosts(w, now)))
	posts, err := repo.ListByWorkOrder(ctx, w.RecordID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Gate", posts[0].Name)

	require.NoError(t, repo.ReplaceForWorkOrder(ctx, w.RecordID, nil))
	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
