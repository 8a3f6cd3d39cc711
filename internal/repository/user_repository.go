package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/taskboard/taskboard/internal/domain"
)

// UserRepository defines persistence access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

type userRecord struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type userRepository struct {
	client *redis.Client
}

// NewUserRepository returns a Redis-backed implementation.
func NewUserRepository(client *redis.Client) UserRepository {
	return &userRepository{client: client}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if !validUserID(user.ID) {
		return fmt.Errorf("invalid user id %q", user.ID)
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	payload, err := encodeUser(user)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, userKey(user.ID), payload, 0).Err()
}

// Update overwrites the whole record; it fails with domain.ErrNotFound when the user is gone.
func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	if !validUserID(user.ID) {
		return domain.ErrNotFound
	}
	payload, err := encodeUser(user)
	if err != nil {
		return err
	}
	ok, err := r.client.SetXX(ctx, userKey(user.ID), payload, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID loads a user. Ids that cannot name a user record are reported as
// not found without touching the store.
func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if !validUserID(id) {
		return nil, domain.ErrNotFound
	}
	raw, err := r.client.Get(ctx, userKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var rec userRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", id, err)
	}
	return &domain.User{
		ID:        id,
		Name:      rec.Name,
		Email:     rec.Email,
		CreatedAt: rec.CreatedAt,
	}, nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	if !validUserID(id) {
		return domain.ErrNotFound
	}
	removed, err := r.client.Del(ctx, userKey(id)).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func encodeUser(user *domain.User) ([]byte, error) {
	payload, err := json.Marshal(userRecord{
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("encode user: %w", err)
	}
	return payload, nil
}
