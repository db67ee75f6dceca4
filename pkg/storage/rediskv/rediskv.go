// Package rediskv implements storage.KVStore against a live Redis
// server, the engine's production KV collaborator.
package rediskv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Store wraps a *redis.Client as the engine's KVStore.
type Store struct {
	client *redis.Client
}

// New dials a Redis server at url (e.g. "redis://127.0.0.1").
func New(url string) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("rediskv: parse url: %w", err)
	}
	return &Store{client: redis.NewClient(opts)}, nil
}

// AppendSortedSet appends member to the sorted set at key, scored by
// score.
func (s *Store) AppendSortedSet(key string, score uint64, member string) error {
	ctx := context.Background()
	return s.client.ZAdd(ctx, key, redis.Z{Score: float64(score), Member: member}).Err()
}

// SaveKey stores value under key.
func (s *Store) SaveKey(key, value string) error {
	ctx := context.Background()
	return s.client.Set(ctx, key, value, 0).Err()
}

// LoadKey returns the value stored under key, distinguishing a missing
// key from any other failure.
func (s *Store) LoadKey(key string) (string, bool, error) {
	ctx := context.Background()
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("rediskv: load key %q: %w", key, err)
	}
	return value, true, nil
}

// FlushData clears the connected database.
func (s *Store) FlushData() error {
	ctx := context.Background()
	return s.client.FlushDB(ctx).Err()
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}
