package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix        = "founderfit:session:"
	maxUpdateRetries = 5
)

// RedisRepo stores sessions as JSON values with a sliding TTL, so several
// server processes can share them.
type RedisRepo struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRepo wraps an existing client. A ttl <= 0 uses DefaultTTL.
func NewRedisRepo(client *redis.Client, ttl time.Duration) *RedisRepo {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisRepo{client: client, ttl: ttl}
}

var _ Repo = (*RedisRepo)(nil)

func (r *RedisRepo) key(id string) string {
	return keyPrefix + id
}

func (r *RedisRepo) Create(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.client.Set(ctx, r.key(s.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("store session %s: %w", s.ID, err)
	}
	return nil
}

func (r *RedisRepo) Get(ctx context.Context, id string) (*Session, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &s, nil
}

// Update runs fn inside an optimistic WATCH/MULTI transaction and retries
// when another writer touched the key first.
func (r *RedisRepo) Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	key := r.key(id)
	var out *Session

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var s Session
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode session %s: %w", id, err)
		}
		if err := fn(&s); err != nil {
			return err
		}
		s.UpdatedAt = time.Now()

		enc, err := json.Marshal(&s)
		if err != nil {
			return fmt.Errorf("encode session: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, enc, r.ttl)
			return nil
		})
		if err == nil {
			out = &s
		}
		return err
	}

	for range maxUpdateRetries {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return out, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("update session %s: %w", id, redis.TxFailedErr)
}

func (r *RedisRepo) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}
