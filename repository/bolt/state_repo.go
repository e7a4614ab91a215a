package bolt

import (
	"context"

	"github.com/daydone/backend/internal/infrastructure/kv"
	"github.com/daydone/backend/repository"
)

type stateStore struct {
	store *kv.Store
}

// NewStateStore returns a BoltDB-backed implementation of StateStore.
func NewStateStore(store *kv.Store) repository.StateStore {
	return &stateStore{store: store}
}

func (s *stateStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.store.Get(kv.BucketState, key)
	if err != nil {
		return "", err
	}
	return string(value), nil
}

func (s *stateStore) Set(ctx context.Context, key, value string) error {
	return s.store.Put(kv.BucketState, key, []byte(value))
}

func (s *stateStore) Delete(ctx context.Context, key string) error {
	return s.store.Delete(kv.BucketState, key)
}
