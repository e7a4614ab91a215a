package notify

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/daydone/backend/domain"
	"github.com/daydone/backend/repository"
	"github.com/daydone/backend/usecase/settings"
)

// Notifier delivers a notification to the user. Implementations live in
// internal/infrastructure/notifier.
type Notifier interface {
	Send(ctx context.Context, n domain.Notification) error
}

// Lister exposes the current todo collection; satisfied by todo.Service.
type Lister interface {
	Snapshot() []domain.Todo
}

// Engine scans the collection for due and overdue todos and emits at most
// one notification per todo, deduplicated through the persisted notified
// set. A todo within the due window after its deadline gets a "Due Now"
// notification, beyond it an "Overdue" one.
type Engine struct {
	todos    Lister
	prefs    *settings.Service
	state    repository.StateStore
	notifier Notifier
	logger   *zap.Logger
	window   time.Duration
	now      func() time.Time
	loc      *time.Location
}

func New(todos Lister, prefs *settings.Service, state repository.StateStore, notifier Notifier, window time.Duration, logger *zap.Logger) *Engine {
	if window <= 0 {
		window = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		todos:    todos,
		prefs:    prefs,
		state:    state,
		notifier: notifier,
		logger:   logger,
		window:   window,
		now:      time.Now,
		loc:      time.Local,
	}
}

// TodosChanged implements todo.ChangeListener; every mutation triggers an
// immediate evaluation pass.
func (e *Engine) TodosChanged(ctx context.Context, _ []domain.Todo) {
	e.Evaluate(ctx, e.now())
}

// Tick runs a timer-driven evaluation pass.
func (e *Engine) Tick(ctx context.Context) {
	e.Evaluate(ctx, e.now())
}

// Evaluate runs one scan at the given instant. A no-op unless notifications
// are enabled and permission has been granted. Failed sends are not marked
// notified and retry on the next pass.
func (e *Engine) Evaluate(ctx context.Context, now time.Time) {
	if !e.prefs.NotificationsEnabled(ctx) || e.prefs.Permission(ctx) != settings.PermissionGranted {
		return
	}

	todos := e.todos.Snapshot()
	notified := e.loadNotified(ctx)

	for _, t := range todos {
		if t.Completed || notified[t.ID] {
			continue
		}
		deadline, ok := t.Deadline(e.loc)
		if !ok {
			continue
		}
		late := now.Sub(deadline)
		if late < 0 {
			continue
		}

		var n domain.Notification
		if late > e.window {
			n = domain.OverdueNotification(t)
		} else {
			n = domain.DueNotification(t)
		}
		if err := e.notifier.Send(ctx, n); err != nil {
			e.logger.Error("notification send failed",
				zap.Int64("todo_id", t.ID),
				zap.String("tag", n.Tag),
				zap.Error(err))
			continue
		}
		notified[t.ID] = true
	}

	e.storeNotified(ctx, e.retain(notified, todos, now))
}

// retain recomputes the notified set: an id survives only while its todo
// still exists, is incomplete, has a due date, and that deadline has been
// reached. Completing, rescheduling or deleting a todo re-arms it.
func (e *Engine) retain(notified map[int64]bool, todos []domain.Todo, now time.Time) []int64 {
	byID := make(map[int64]domain.Todo, len(todos))
	for _, t := range todos {
		byID[t.ID] = t
	}

	kept := []int64{}
	for id := range notified {
		t, ok := byID[id]
		if !ok || t.Completed {
			continue
		}
		deadline, ok := t.Deadline(e.loc)
		if !ok || deadline.After(now) {
			continue
		}
		kept = append(kept, id)
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i] < kept[j] })
	return kept
}

func (e *Engine) loadNotified(ctx context.Context) map[int64]bool {
	raw, err := e.state.Get(ctx, repository.KeyNotifiedTodos)
	if err != nil {
		e.logger.Error("read notified set failed", zap.Error(err))
		return map[int64]bool{}
	}
	notified := map[int64]bool{}
	if raw == "" {
		return notified
	}
	var ids []int64
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		e.logger.Warn("corrupt notified set, resetting", zap.Error(err))
		return notified
	}
	for _, id := range ids {
		notified[id] = true
	}
	return notified
}

func (e *Engine) storeNotified(ctx context.Context, ids []int64) {
	payload, err := json.Marshal(ids)
	if err != nil {
		e.logger.Error("encode notified set failed", zap.Error(err))
		return
	}
	if err := e.state.Set(ctx, repository.KeyNotifiedTodos, string(payload)); err != nil {
		e.logger.Error("persist notified set failed", zap.Error(err))
	}
}
