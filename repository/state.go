package repository

import "context"

// Keys of the persisted application state entries.
const (
	KeyStreak                 = "streak"
	KeyLastStreakDate         = "lastStreakDate"
	KeyNotifiedTodos          = "notifiedTodos"
	KeyNotificationsEnabled   = "notificationsEnabled"
	KeyNotificationPermission = "notificationPermission"
	KeyPermissionAsked        = "notificationPermissionAsked"
	KeyTheme                  = "theme"
)

// StateStore is a string key-value port for small derived and preference
// state. Get returns an empty string for a missing key; last write wins, no
// cross-key transactions.
type StateStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
