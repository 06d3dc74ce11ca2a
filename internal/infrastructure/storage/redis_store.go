package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/you/termbridge/domain"
)

// RedisStore keeps the bearer token under a single Redis key. Useful when
// the client runs on a host where the session should survive the process
// without touching the local filesystem. The token is stored without a TTL;
// it lives until Remove, matching the opaque non-renewing token model.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a Redis-backed token store
func NewRedisStore(client *redis.Client, key string) domain.TokenStore {
	return &RedisStore{client: client, key: key}
}

// Get implements domain.TokenStore
func (s *RedisStore) Get(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", fmt.Errorf("failed to read token key: %w", err)
	}
	return token, nil
}

// Set implements domain.TokenStore
func (s *RedisStore) Set(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, s.key, token, 0).Err(); err != nil {
		return fmt.Errorf("failed to write token key: %w", err)
	}
	return nil
}

// Remove implements domain.TokenStore
func (s *RedisStore) Remove(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to delete token key: %w", err)
	}
	return nil
}
