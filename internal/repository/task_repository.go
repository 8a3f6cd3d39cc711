package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/taskboard/taskboard/internal/domain"
)

// TaskRepository encapsulates task persistence together with the per-user index.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByUser(ctx context.Context, userID string) (*TaskListing, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) (*domain.Task, error)
	Index() *TaskIndex
}

// TaskListing is a user's index resolved to records.
type TaskListing struct {
	Tasks []domain.Task
	// Dangling ids have no record or a record owned by someone else.
	Dangling []string
	// Unreadable ids have a record that does not decode. They stay indexed.
	Unreadable []string
}

type taskRecord struct {
	UserID      string            `json:"userId"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	Status      domain.TaskStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
}

type taskRepository struct {
	client *redis.Client
	index  *TaskIndex
}

// NewTaskRepository returns a Redis-backed implementation.
func NewTaskRepository(client *redis.Client) TaskRepository {
	return &taskRepository{client: client, index: NewTaskIndex(client)}
}

func (r *taskRepository) Index() *TaskIndex {
	return r.index
}

// Create assigns the id and creation time, then writes the record and its
// index entry in a single MULTI/EXEC batch.
func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}
	payload, err := json.Marshal(toTaskRecord(task))
	if err != nil {
		return fmt.Errorf("encode task: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, taskKey(task.ID), payload, 0)
		r.index.add(ctx, pipe, task.UserID, task.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("register task: %w", err)
	}
	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	raw, err := r.client.Get(ctx, taskKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeTask(id, raw)
}

// ListByUser resolves the user's index to task records. Members that cannot
// be served are reported instead of failing the whole listing.
func (r *taskRepository) ListByUser(ctx context.Context, userID string) (*TaskListing, error) {
	ids, err := r.index.Members(ctx, userID)
	if err != nil {
		return nil, err
	}
	listing := &TaskListing{Tasks: make([]domain.Task, 0, len(ids))}
	if len(ids) == 0 {
		return listing, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, taskKey(id))
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for i, val := range values {
		raw, ok := val.(string)
		if !ok {
			listing.Dangling = append(listing.Dangling, ids[i])
			continue
		}
		task, err := decodeTask(ids[i], []byte(raw))
		if err != nil {
			listing.Unreadable = append(listing.Unreadable, ids[i])
			continue
		}
		if task.UserID != userID {
			listing.Dangling = append(listing.Dangling, ids[i])
			continue
		}
		listing.Tasks = append(listing.Tasks, *task)
	}

	sort.Slice(listing.Tasks, func(i, j int) bool {
		a, b := listing.Tasks[i], listing.Tasks[j]
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.ID < b.ID
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return listing, nil
}

// Update replaces the stored record only if it still exists.
func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	payload, err := json.Marshal(toTaskRecord(task))
	if err != nil {
		return fmt.Errorf("encode task: %w", err)
	}
	ok, err := r.client.SetXX(ctx, taskKey(task.ID), payload, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the record and its index entry in a single MULTI/EXEC batch
// and returns the task as it was before removal.
func (r *taskRepository) Delete(ctx context.Context, id string) (*domain.Task, error) {
	task, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var deleted *redis.IntCmd
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.Del(ctx, taskKey(id))
		r.index.remove(ctx, pipe, task.UserID, id)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unregister task: %w", err)
	}
	if deleted.Val() == 0 {
		return nil, domain.ErrNotFound
	}
	return task, nil
}

func toTaskRecord(task *domain.Task) taskRecord {
	return taskRecord{
		UserID:      task.UserID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		CreatedAt:   task.CreatedAt,
	}
}

func decodeTask(id string, raw []byte) (*domain.Task, error) {
	var rec taskRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode task %s: %w", id, err)
	}
	return &domain.Task{
		ID:          id,
		UserID:      rec.UserID,
		Title:       rec.Title,
		Description: rec.Description,
		Status:      rec.Status,
		CreatedAt:   rec.CreatedAt,
	}, nil
}
