package postgres

import (
	"encoding/json"

	"github.com/daydone/backend/domain"
)

func todoArgs(todo *domain.Todo) []interface{} {
	return []interface{}{
		todo.ID,
		todo.Text,
		todo.Completed,
		todo.CompletedAt,
		todo.CreatedAt,
		nullString(todo.DueDate),
		nullString(todo.DueTime),
		string(todo.Category),
		string(todo.Priority),
		string(todo.Recurring),
		nullInt64(todo.ParentID),
		marshalSubtasks(todo.Subtasks),
	}
}

func marshalSubtasks(subtasks []domain.Subtask) []byte {
	if len(subtasks) == 0 {
		return []byte("[]")
	}
	b, err := json.Marshal(subtasks)
	if err != nil {
		return []byte("[]")
	}
	return b
}

func unmarshalSubtasks(data []byte) []domain.Subtask {
	subtasks := []domain.Subtask{}
	if len(data) > 0 {
		_ = json.Unmarshal(data, &subtasks)
	}
	return subtasks
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullInt64(v int64) interface{} {
	if v == 0 {
		return nil
	}
	return v
}
