package bolt

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/daydone/backend/domain"
	"github.com/daydone/backend/internal/infrastructure/kv"
	"github.com/daydone/backend/repository"
)

type todoRepository struct {
	store *kv.Store
}

// NewTodoRepository returns a BoltDB-backed implementation of TodoRepository.
func NewTodoRepository(store *kv.Store) repository.TodoRepository {
	return &todoRepository{store: store}
}

// Keys are zero-padded decimal ids so cursor order matches creation order.
func todoKey(id int64) string {
	return fmt.Sprintf("%020d", id)
}

func (r *todoRepository) List(ctx context.Context) ([]domain.Todo, error) {
	todos := []domain.Todo{}
	err := r.store.ForEach(kv.BucketTodos, func(key string, value []byte) error {
		var todo domain.Todo
		if err := json.Unmarshal(value, &todo); err != nil {
			return fmt.Errorf("decode todo %s: %w", key, err)
		}
		todo.Normalize()
		todos = append(todos, todo)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return todos, nil
}

func (r *todoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	return r.put(todo)
}

func (r *todoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	if todo == nil {
		return domain.ErrInvalidPayload
	}
	existing, err := r.store.Get(kv.BucketTodos, todoKey(todo.ID))
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrTodoNotFound
	}
	return r.put(todo)
}

func (r *todoRepository) Delete(ctx context.Context, ids ...int64) error {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, todoKey(id))
	}
	return r.store.Delete(kv.BucketTodos, keys...)
}

func (r *todoRepository) ReplaceAll(ctx context.Context, todos []domain.Todo) error {
	keys := make([]string, 0, len(todos))
	values := make([][]byte, 0, len(todos))
	for _, todo := range todos {
		payload, err := json.Marshal(todo)
		if err != nil {
			return err
		}
		keys = append(keys, todoKey(todo.ID))
		values = append(values, payload)
	}
	return r.store.ReplaceBucket(kv.BucketTodos, keys, values)
}

func (r *todoRepository) put(todo *domain.Todo) error {
	if todo == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(todo)
	if err != nil {
		return err
	}
	return r.store.Put(kv.BucketTodos, todoKey(todo.ID), payload)
}
