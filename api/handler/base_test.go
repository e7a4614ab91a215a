package handler

import (
	"context"

	"github.com/daydone/backend/domain"
)

// nopTodoRepo accepts every write; the usecase keeps state in memory.
type nopTodoRepo struct{}

func (nopTodoRepo) List(ctx context.Context) ([]domain.Todo, error)       { return nil, nil }
func (nopTodoRepo) Create(ctx context.Context, todo *domain.Todo) error   { return nil }
func (nopTodoRepo) Update(ctx context.Context, todo *domain.Todo) error   { return nil }
func (nopTodoRepo) Delete(ctx context.Context, ids ...int64) error        { return nil }
func (nopTodoRepo) ReplaceAll(ctx context.Context, t []domain.Todo) error { return nil }

type memState map[string]string

func (m memState) Get(ctx context.Context, key string) (string, error) { return m[key], nil }
func (m memState) Set(ctx context.Context, key, value string) error    { m[key] = value; return nil }
func (m memState) Delete(ctx context.Context, key string) error        { delete(m, key); return nil }
