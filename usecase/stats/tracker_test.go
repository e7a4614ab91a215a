package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/daydone/backend/domain"
	"github.com/daydone/backend/repository"
)

type memState map[string]string

func (m memState) Get(ctx context.Context, key string) (string, error) { return m[key], nil }
func (m memState) Set(ctx context.Context, key, value string) error    { m[key] = value; return nil }
func (m memState) Delete(ctx context.Context, key string) error        { delete(m, key); return nil }

func TestTracker_PersistsStreakAndLastDate(t *testing.T) {
	state := memState{}
	tracker := NewTracker(state, nil)
	now := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)
	tracker.now = func() time.Time { return now }

	tracker.TodosChanged(context.Background(), []domain.Todo{
		completedOn(now),
		completedOn(now.AddDate(0, 0, -1)),
	})

	assert.Equal(t, "2", state[repository.KeyStreak])
	assert.Equal(t, "2024-03-15", state[repository.KeyLastStreakDate])
	assert.Equal(t, 2, tracker.Current(context.Background()))
}

func TestTracker_ClearsLastDateWithoutCompletions(t *testing.T) {
	state := memState{repository.KeyLastStreakDate: "2024-03-01"}
	tracker := NewTracker(state, nil)
	now := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)
	tracker.now = func() time.Time { return now }

	tracker.TodosChanged(context.Background(), []domain.Todo{{Text: "pending"}})

	assert.Equal(t, "0", state[repository.KeyStreak])
	assert.Empty(t, state[repository.KeyLastStreakDate])
	assert.Equal(t, 0, tracker.Current(context.Background()))
}
