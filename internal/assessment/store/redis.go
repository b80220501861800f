// Package store keeps assessment attempt snapshots in Redis.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"matching-workers/internal/assessment"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix      = "attempt:"
	maxUpdateTries = 3
	defaultTTL     = 24 * time.Hour
)

var (
	ErrNotFound = errors.New("attempt not found")
	ErrConflict = errors.New("attempt modified concurrently")
)

// UpdateFunc derives the next attempt from the stored one.
type UpdateFunc func(assessment.Attempt) (assessment.Attempt, error)

// RedisStore serializes writers per attempt with WATCH/MULTI, so two
// events racing on the same attempt cannot both commit on a stale read.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisStore{client: client, ttl: ttl, now: time.Now}
}

func key(id string) string {
	return keyPrefix + id
}

// Create stores a new attempt. It fails with ErrConflict if the ID is taken.
func (s *RedisStore) Create(ctx context.Context, a assessment.Attempt) (assessment.Attempt, error) {
	now := s.now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	data, err := json.Marshal(a)
	if err != nil {
		return a, fmt.Errorf("marshal attempt: %w", err)
	}
	ok, err := s.client.SetNX(ctx, key(a.ID), data, s.ttl).Result()
	if err != nil {
		return a, fmt.Errorf("store attempt: %w", err)
	}
	if !ok {
		return a, fmt.Errorf("%w: %s already exists", ErrConflict, a.ID)
	}
	return a, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (assessment.Attempt, error) {
	data, err := s.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return assessment.Attempt{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return assessment.Attempt{}, fmt.Errorf("load attempt: %w", err)
	}
	return decode(data)
}

// Update applies fn to the stored attempt and writes the result back if no
// other writer touched the key in between. Errors from fn abort the update
// unchanged.
func (s *RedisStore) Update(ctx context.Context, id string, fn UpdateFunc) (assessment.Attempt, error) {
	k := key(id)
	var updated assessment.Attempt

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, k).Bytes()
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		if err != nil {
			return fmt.Errorf("load attempt: %w", err)
		}
		current, err := decode(data)
		if err != nil {
			return err
		}

		next, err := fn(current)
		if err != nil {
			return err
		}
		next.UpdatedAt = s.now().UTC()

		out, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("marshal attempt: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, k, out, s.ttl)
			return nil
		})
		if err == nil {
			updated = next
		}
		return err
	}

	for i := 0; i < maxUpdateTries; i++ {
		err := s.client.Watch(ctx, txf, k)
		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return assessment.Attempt{}, err
		}
	}
	return assessment.Attempt{}, fmt.Errorf("%w: %s", ErrConflict, id)
}

func decode(data []byte) (assessment.Attempt, error) {
	var a assessment.Attempt
	if err := json.Unmarshal(data, &a); err != nil {
		return assessment.Attempt{}, fmt.Errorf("decode attempt: %w", err)
	}
	if a.Answers == nil {
		a.Answers = map[string]string{}
	}
	return a, nil
}
