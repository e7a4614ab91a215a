package settings

import (
	"context"

	"go.uber.org/zap"

	"github.com/daydone/backend/domain"
	"github.com/daydone/backend/repository"
)

// Notification permission states, mirroring the values persisted by the
// permission endpoint.
const (
	PermissionDefault = "default"
	PermissionGranted = "granted"
	PermissionDenied  = "denied"
)

// Themes accepted by SetTheme.
var Themes = []string{"light", "dark", "blue", "green"}

// Settings is the user-preference view returned by the settings endpoint.
type Settings struct {
	Theme                string `json:"theme"`
	NotificationsEnabled bool   `json:"notificationsEnabled"`
	Permission           string `json:"notificationPermission"`
	PermissionAsked      bool   `json:"notificationPermissionAsked"`
}

// Service manages user preferences on top of the state store.
type Service struct {
	state  repository.StateStore
	logger *zap.Logger
}

func New(state repository.StateStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{state: state, logger: logger}
}

// Get assembles the current preferences.
func (s *Service) Get(ctx context.Context) Settings {
	return Settings{
		Theme:                s.Theme(ctx),
		NotificationsEnabled: s.NotificationsEnabled(ctx),
		Permission:           s.Permission(ctx),
		PermissionAsked:      s.flag(ctx, repository.KeyPermissionAsked),
	}
}

// Theme returns the stored theme, defaulting to light.
func (s *Service) Theme(ctx context.Context) string {
	theme, err := s.state.Get(ctx, repository.KeyTheme)
	if err != nil {
		s.logger.Error("read theme failed", zap.Error(err))
	}
	if theme == "" {
		return "light"
	}
	return theme
}

func (s *Service) SetTheme(ctx context.Context, theme string) error {
	valid := false
	for _, t := range Themes {
		if t == theme {
			valid = true
			break
		}
	}
	if !valid {
		return domain.NewError(domain.ErrCodeValidation, "unknown theme")
	}
	return s.state.Set(ctx, repository.KeyTheme, theme)
}

// NotificationsEnabled reports the user toggle.
func (s *Service) NotificationsEnabled(ctx context.Context) bool {
	return s.flag(ctx, repository.KeyNotificationsEnabled)
}

// SetNotificationsEnabled flips the toggle. Enabling requires a granted
// permission; disabling clears the notified-todos set so re-enabling starts
// fresh.
func (s *Service) SetNotificationsEnabled(ctx context.Context, enabled bool) error {
	if enabled && s.Permission(ctx) != PermissionGranted {
		return domain.NewError(domain.ErrCodeValidation, "notification permission not granted")
	}
	value := "false"
	if enabled {
		value = "true"
	}
	if err := s.state.Set(ctx, repository.KeyNotificationsEnabled, value); err != nil {
		return err
	}
	if !enabled {
		return s.state.Delete(ctx, repository.KeyNotifiedTodos)
	}
	return nil
}

// Permission returns the recorded permission decision.
func (s *Service) Permission(ctx context.Context) string {
	permission, err := s.state.Get(ctx, repository.KeyNotificationPermission)
	if err != nil {
		s.logger.Error("read notification permission failed", zap.Error(err))
	}
	if permission == "" {
		return PermissionDefault
	}
	return permission
}

// SetPermission records the user's decision; a grant also enables
// notifications, matching the first-grant flow.
func (s *Service) SetPermission(ctx context.Context, permission string) error {
	switch permission {
	case PermissionDefault, PermissionGranted, PermissionDenied:
	default:
		return domain.NewError(domain.ErrCodeValidation, "unknown permission state")
	}
	if err := s.state.Set(ctx, repository.KeyNotificationPermission, permission); err != nil {
		return err
	}
	if err := s.state.Set(ctx, repository.KeyPermissionAsked, "true"); err != nil {
		return err
	}
	if permission == PermissionGranted {
		return s.state.Set(ctx, repository.KeyNotificationsEnabled, "true")
	}
	return nil
}

func (s *Service) flag(ctx context.Context, key string) bool {
	value, err := s.state.Get(ctx, key)
	if err != nil {
		s.logger.Error("read state flag failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return value == "true"
}
