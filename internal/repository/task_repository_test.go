package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/taskboard/internal/domain"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func strPtr(s string) *string { return &s }

func TestTaskRepository_CreateWritesRecordAndIndex(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewTaskRepository(client)
	ctx := context.Background()

	task := &domain.Task{UserID: "u1", Title: "Buy milk", Description: strPtr("2% organic"), Status: domain.TaskStatusPending}
	require.NoError(t, repo.Create(ctx, task))

	assert.NotEmpty(t, task.ID)
	assert.False(t, task.CreatedAt.IsZero())
	assert.Equal(t, time.UTC, task.CreatedAt.Location())
	assert.True(t, mr.Exists("task:"+task.ID))

	member, err := mr.SIsMember("user:{u1}:tasks", task.ID)
	require.NoError(t, err)
	assert.True(t, member)

	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, "2% organic", *got.Description)
	assert.Equal(t, domain.TaskStatusPending, got.Status)
	assert.True(t, task.CreatedAt.Equal(got.CreatedAt))
}

func TestTaskRepository_GetMissing(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewTaskRepository(client)

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTaskRepository_ListByUserSkipsDangling(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewTaskRepository(client)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	second := &domain.Task{UserID: "u1", Title: "second", Status: domain.TaskStatusCompleted, CreatedAt: base.Add(time.Minute)}
	first := &domain.Task{UserID: "u1", Title: "first", Status: domain.TaskStatusPending, CreatedAt: base}
	other := &domain.Task{UserID: "u2", Title: "other", Status: domain.TaskStatusPending}
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, other))

	// an id with no record, and one whose record belongs to u2
	_, err := mr.SetAdd("user:{u1}:tasks", "ghost", other.ID)
	require.NoError(t, err)

	listing, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, listing.Tasks, 2)
	assert.Equal(t, "first", listing.Tasks[0].Title)
	assert.Equal(t, "second", listing.Tasks[1].Title)
	assert.ElementsMatch(t, []string{"ghost", other.ID}, listing.Dangling)
	assert.Empty(t, listing.Unreadable)

	require.NoError(t, repo.Index().Prune(ctx, "u1", listing.Dangling...))
	members, err := mr.Members("user:{u1}:tasks")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{first.ID, second.ID}, members)
}

func TestTaskRepository_ListByUserEmpty(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewTaskRepository(client)

	listing, err := repo.ListByUser(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, listing.Tasks)
	assert.Empty(t, listing.Dangling)
}

func TestTaskRepository_ListByUserSkipsUnreadable(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewTaskRepository(client)
	ctx := context.Background()

	good := &domain.Task{UserID: "u1", Title: "good", Status: domain.TaskStatusPending}
	require.NoError(t, repo.Create(ctx, good))
	require.NoError(t, mr.Set("task:bad", "{not json"))
	_, err := mr.SetAdd("user:{u1}:tasks", "bad")
	require.NoError(t, err)

	listing, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, listing.Tasks, 1)
	assert.Equal(t, good.ID, listing.Tasks[0].ID)
	assert.Equal(t, []string{"bad"}, listing.Unreadable)
	assert.Empty(t, listing.Dangling)
}

func TestTaskRepository_UpdateDoesNotResurrect(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewTaskRepository(client)
	ctx := context.Background()

	err := repo.Update(ctx, &domain.Task{ID: "gone", UserID: "u1", Title: "x", Status: domain.TaskStatusPending})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, mr.Exists("task:gone"))

	task := &domain.Task{UserID: "u1", Title: "x", Status: domain.TaskStatusPending}
	require.NoError(t, repo.Create(ctx, task))
	task.Status = domain.TaskStatusInProgress
	require.NoError(t, repo.Update(ctx, task))

	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusInProgress, got.Status)

	members, err := mr.Members("user:{u1}:tasks")
	require.NoError(t, err)
	assert.Equal(t, []string{task.ID}, members)
}

func TestTaskRepository_DeleteRemovesRecordAndIndex(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewTaskRepository(client)
	ctx := context.Background()

	keep := &domain.Task{UserID: "u1", Title: "keep", Status: domain.TaskStatusPending}
	drop := &domain.Task{UserID: "u1", Title: "drop", Status: domain.TaskStatusPending}
	require.NoError(t, repo.Create(ctx, keep))
	require.NoError(t, repo.Create(ctx, drop))

	removed, err := repo.Delete(ctx, drop.ID)
	require.NoError(t, err)
	assert.Equal(t, "u1", removed.UserID)

	assert.False(t, mr.Exists("task:"+drop.ID))
	member, err := mr.SIsMember("user:{u1}:tasks", drop.ID)
	require.NoError(t, err)
	assert.False(t, member)

	ok, err := repo.Index().Contains(ctx, "u1", keep.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = repo.Delete(ctx, drop.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTaskRepository_DecodeFailure(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewTaskRepository(client)

	require.NoError(t, mr.Set("task:bad", "{not json"))
	_, err := repo.GetByID(context.Background(), "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}
