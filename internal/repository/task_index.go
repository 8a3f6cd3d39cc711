package repository

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// TaskIndex is the per-user set of task ids, derived from task records.
//
// Contract: a task id is added in the same MULTI/EXEC batch that writes the
// task record and removed in the same batch that deletes it; updates never
// touch the index. Members whose record is missing or owned by another user
// are dangling and may be pruned by readers.
type TaskIndex struct {
	client *redis.Client
}

// NewTaskIndex builds an index over the given client.
func NewTaskIndex(client *redis.Client) *TaskIndex {
	return &TaskIndex{client: client}
}

// Members returns the task ids indexed for userID, in no particular order.
func (i *TaskIndex) Members(ctx context.Context, userID string) ([]string, error) {
	return i.client.SMembers(ctx, IndexKey(userID)).Result()
}

// Contains reports whether taskID is indexed for userID.
func (i *TaskIndex) Contains(ctx context.Context, userID, taskID string) (bool, error) {
	return i.client.SIsMember(ctx, IndexKey(userID), taskID).Result()
}

// Prune drops dangling members from a user's index.
func (i *TaskIndex) Prune(ctx context.Context, userID string, taskIDs ...string) error {
	if len(taskIDs) == 0 {
		return nil
	}
	members := make([]interface{}, 0, len(taskIDs))
	for _, id := range taskIDs {
		members = append(members, id)
	}
	return i.client.SRem(ctx, IndexKey(userID), members...).Err()
}

func (i *TaskIndex) add(ctx context.Context, pipe redis.Pipeliner, userID, taskID string) {
	pipe.SAdd(ctx, IndexKey(userID), taskID)
}

func (i *TaskIndex) remove(ctx context.Context, pipe redis.Pipeliner, userID, taskID string) {
	pipe.SRem(ctx, IndexKey(userID), taskID)
}
