package transport

// SubtaskRequest carries a single checklist entry inside a todo payload.
type SubtaskRequest struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// TodoRequest is the payload for creating or editing a todo.
type TodoRequest struct {
	Text      string           `json:"text"`
	DueDate   string           `json:"dueDate"`
	DueTime   string           `json:"dueTime"`
	Category  string           `json:"category"`
	Priority  string           `json:"priority"`
	Recurring string           `json:"recurring"`
	Subtasks  []SubtaskRequest `json:"subtasks"`
}

// AuthTokenRequest exchanges the configured access key for a bearer token.
type AuthTokenRequest struct {
	AccessKey string `json:"accessKey"`
}

type ThemeRequest struct {
	Theme string `json:"theme"`
}

type NotificationsRequest struct {
	Enabled bool `json:"enabled"`
}

type PermissionRequest struct {
	Permission string `json:"permission"`
}
