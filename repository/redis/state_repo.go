package redis

import (
	"context"

	redislib "github.com/redis/go-redis/v9"

	"github.com/daydone/backend/repository"
)

type stateStore struct {
	client *redislib.Client
	prefix string
}

// NewStateStore creates a Redis-backed implementation of StateStore.
func NewStateStore(client *redislib.Client) repository.StateStore {
	return &stateStore{
		client: client,
		prefix: "state:",
	}
}

func (s *stateStore) Get(ctx context.Context, key string) (string, error) {
	result, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if err == redislib.Nil {
			return "", nil
		}
		return "", err
	}
	return result, nil
}

func (s *stateStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.key(key), value, 0).Err()
}

func (s *stateStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

func (s *stateStore) key(key string) string {
	return s.prefix + key
}
