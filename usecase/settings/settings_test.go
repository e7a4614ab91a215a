package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daydone/backend/domain"
	"github.com/daydone/backend/repository"
)

type memState map[string]string

func (m memState) Get(ctx context.Context, key string) (string, error) { return m[key], nil }
func (m memState) Set(ctx context.Context, key, value string) error    { m[key] = value; return nil }
func (m memState) Delete(ctx context.Context, key string) error        { delete(m, key); return nil }

func TestGet_Defaults(t *testing.T) {
	s := New(memState{}, nil)

	got := s.Get(context.Background())
	assert.Equal(t, "light", got.Theme)
	assert.False(t, got.NotificationsEnabled)
	assert.Equal(t, PermissionDefault, got.Permission)
	assert.False(t, got.PermissionAsked)
}

func TestSetTheme(t *testing.T) {
	state := memState{}
	s := New(state, nil)
	ctx := context.Background()

	require.NoError(t, s.SetTheme(ctx, "dark"))
	assert.Equal(t, "dark", s.Theme(ctx))

	err := s.SetTheme(ctx, "neon")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeValidation))
	assert.Equal(t, "dark", s.Theme(ctx))
}

func TestSetNotificationsEnabled_RequiresGrant(t *testing.T) {
	s := New(memState{}, nil)
	ctx := context.Background()

	err := s.SetNotificationsEnabled(ctx, true)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeValidation))
	assert.False(t, s.NotificationsEnabled(ctx))
}

func TestSetNotificationsEnabled_DisableClearsNotifiedSet(t *testing.T) {
	state := memState{
		repository.KeyNotificationPermission: PermissionGranted,
		repository.KeyNotificationsEnabled:   "true",
		repository.KeyNotifiedTodos:          `[1,2]`,
	}
	s := New(state, nil)
	ctx := context.Background()

	require.NoError(t, s.SetNotificationsEnabled(ctx, false))
	assert.False(t, s.NotificationsEnabled(ctx))
	assert.NotContains(t, state, repository.KeyNotifiedTodos)
}

func TestSetPermission_GrantEnablesNotifications(t *testing.T) {
	state := memState{}
	s := New(state, nil)
	ctx := context.Background()

	require.NoError(t, s.SetPermission(ctx, PermissionGranted))

	got := s.Get(ctx)
	assert.Equal(t, PermissionGranted, got.Permission)
	assert.True(t, got.PermissionAsked)
	assert.True(t, got.NotificationsEnabled)
}

func TestSetPermission_DenyRecordsAsked(t *testing.T) {
	s := New(memState{}, nil)
	ctx := context.Background()

	require.NoError(t, s.SetPermission(ctx, PermissionDenied))

	got := s.Get(ctx)
	assert.Equal(t, PermissionDenied, got.Permission)
	assert.True(t, got.PermissionAsked)
	assert.False(t, got.NotificationsEnabled)
}

func TestSetPermission_RejectsUnknownValue(t *testing.T) {
	s := New(memState{}, nil)

	err := s.SetPermission(context.Background(), "maybe")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeValidation))
}
