package service

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/taskboard/taskboard/internal/domain"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

// fakeDirectory is a UserDirectory with a fixed set of known users.
type fakeDirectory struct {
	mu    sync.Mutex
	known map[string]bool
	err   error
	calls int
}

func newFakeDirectory(ids ...string) *fakeDirectory {
	d := &fakeDirectory{known: map[string]bool{}}
	for _, id := range ids {
		d.known[id] = true
	}
	return d
}

func (d *fakeDirectory) UserExists(ctx context.Context, userID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	if d.err != nil {
		return false, d.err
	}
	return d.known[userID], nil
}

// fakeLister is a TaskLister returning canned results.
type fakeLister struct {
	tasks []domain.Task
	err   error
}

func (l *fakeLister) ListTasks(ctx context.Context, userID string, status *domain.TaskStatus) ([]domain.Task, error) {
	return l.tasks, l.err
}

func strPtr(s string) *string { return &s }

func statusPtr(s domain.TaskStatus) *domain.TaskStatus { return &s }
