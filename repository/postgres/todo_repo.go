package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/daydone/backend/domain"
	"github.com/daydone/backend/repository"
)

type todoRepository struct {
	pool *pgxpool.Pool
}

// NewTodoRepository returns a Postgres-backed implementation of TodoRepository.
func NewTodoRepository(pool *pgxpool.Pool) repository.TodoRepository {
	return &todoRepository{pool: pool}
}

const todoColumns = "id, text, completed, completed_at, created_at, due_date, due_time, category, priority, recurring, parent_id, subtasks"

func (r *todoRepository) List(ctx context.Context) ([]domain.Todo, error) {
	const query = `
	SELECT ` + todoColumns + `
	FROM todos
	ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := []domain.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, *todo)
	}
	return todos, rows.Err()
}

func (r *todoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	if todo == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO todos (` + todoColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.pool.Exec(ctx, query, todoArgs(todo)...)
	return err
}

func (r *todoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	if todo == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE todos
	SET text = $2,
		completed = $3,
		completed_at = $4,
		created_at = $5,
		due_date = $6,
		due_time = $7,
		category = $8,
		priority = $9,
		recurring = $10,
		parent_id = $11,
		subtasks = $12
	WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, todoArgs(todo)...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

func (r *todoRepository) Delete(ctx context.Context, ids ...int64) error {
	if len(ids) == 0 {
		return nil
	}
	const query = `DELETE FROM todos WHERE id = ANY($1)`
	_, err := r.pool.Exec(ctx, query, ids)
	return err
}

func (r *todoRepository) ReplaceAll(ctx context.Context, todos []domain.Todo) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM todos`); err != nil {
			return err
		}
		const query = `
		INSERT INTO todos (` + todoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`
		for i := range todos {
			if _, err := tx.Exec(ctx, query, todoArgs(&todos[i])...); err != nil {
				return err
			}
		}
		return nil
	})
}

func scanTodo(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Todo, error) {
	var (
		todo        domain.Todo
		completedAt *int64
		dueDate     *string
		dueTime     *string
		parentID    *int64
		subtasks    []byte
	)

	if err := row.Scan(
		&todo.ID,
		&todo.Text,
		&todo.Completed,
		&completedAt,
		&todo.CreatedAt,
		&dueDate,
		&dueTime,
		&todo.Category,
		&todo.Priority,
		&todo.Recurring,
		&parentID,
		&subtasks,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, err
	}

	todo.CompletedAt = completedAt
	if dueDate != nil {
		todo.DueDate = *dueDate
	}
	if dueTime != nil {
		todo.DueTime = *dueTime
	}
	if parentID != nil {
		todo.ParentID = *parentID
	}
	todo.Subtasks = unmarshalSubtasks(subtasks)
	todo.Normalize()

	return &todo, nil
}
