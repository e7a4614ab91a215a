package stats

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/daydone/backend/domain"
	"github.com/daydone/backend/repository"
)

// Tracker recomputes the daily streak on every collection change and writes
// it through the state store. The stored value is a derived cache only; the
// collection stays the source of truth.
type Tracker struct {
	state  repository.StateStore
	logger *zap.Logger
	now    func() time.Time
}

func NewTracker(state repository.StateStore, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{
		state:  state,
		logger: logger,
		now:    time.Now,
	}
}

// TodosChanged implements todo.ChangeListener.
func (t *Tracker) TodosChanged(ctx context.Context, todos []domain.Todo) {
	now := t.now()
	streak := Streak(todos, now)

	if err := t.state.Set(ctx, repository.KeyStreak, strconv.Itoa(streak)); err != nil {
		t.logger.Error("persist streak failed", zap.Error(err))
		return
	}

	lastDay, ok := LastCompletionDay(todos, now)
	if !ok {
		if err := t.state.Set(ctx, repository.KeyLastStreakDate, ""); err != nil {
			t.logger.Error("persist last streak date failed", zap.Error(err))
		}
		return
	}
	if err := t.state.Set(ctx, repository.KeyLastStreakDate, lastDay); err != nil {
		t.logger.Error("persist last streak date failed", zap.Error(err))
	}
}

// Current reads the cached streak value.
func (t *Tracker) Current(ctx context.Context) int {
	raw, err := t.state.Get(ctx, repository.KeyStreak)
	if err != nil {
		t.logger.Error("read streak failed", zap.Error(err))
		return 0
	}
	streak, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return streak
}
