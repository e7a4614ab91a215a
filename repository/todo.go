package repository

import (
	"context"

	"github.com/daydone/backend/domain"
)

// TodoRepository persists the todo collection. The in-memory store is the
// source of truth during the process lifetime; implementations are
// write-through targets and must tolerate whole-collection replacement.
type TodoRepository interface {
	List(ctx context.Context) ([]domain.Todo, error)
	Create(ctx context.Context, todo *domain.Todo) error
	Update(ctx context.Context, todo *domain.Todo) error
	Delete(ctx context.Context, ids ...int64) error
	ReplaceAll(ctx context.Context, todos []domain.Todo) error
}
