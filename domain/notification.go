package domain

import "fmt"

// Notification is the payload handed to a notifier when a todo becomes due
// or overdue. Tag deduplicates deliveries per todo and phase.
type Notification struct {
	TodoID int64  `json:"todoId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	Tag    string `json:"tag"`
}

// DueNotification builds the "due now" payload for a todo.
func DueNotification(t Todo) Notification {
	return Notification{
		TodoID: t.ID,
		Title:  fmt.Sprintf("Due Now: %s", t.Text),
		Body:   dueBody(t),
		Tag:    fmt.Sprintf("due-%d", t.ID),
	}
}

// OverdueNotification builds the "overdue" payload for a todo.
func OverdueNotification(t Todo) Notification {
	return Notification{
		TodoID: t.ID,
		Title:  fmt.Sprintf("Overdue: %s", t.Text),
		Body:   dueBody(t),
		Tag:    fmt.Sprintf("overdue-%d", t.ID),
	}
}

func dueBody(t Todo) string {
	if t.DueTime != "" {
		return fmt.Sprintf("Due: %s at %s", t.DueDate, t.DueTime)
	}
	return fmt.Sprintf("Due: %s", t.DueDate)
}
