// Package rediskv implements store.KV on top of a Redis client.
package rediskv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"quay/internal/store"
)

type Store struct {
	client *redis.Client
}

func New(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", store.ErrNotFound
		}
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return val, nil
}

func (s *Store) Put(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// PutMulti writes all pairs in a single MULTI/EXEC transaction. Values are
// stored without TTL; the data set is authoritative, not a cache.
func (s *Store) PutMulti(ctx context.Context, pairs map[string]string) error {
	pipe := s.client.TxPipeline()
	for k, v := range pairs {
		pipe.Set(ctx, k, v, 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to write %d keys: %w", len(pairs), err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Ping reports whether the backing Redis is reachable. Used by readyz.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
