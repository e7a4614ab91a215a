package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daydone/backend/domain"
	"github.com/daydone/backend/repository"
	"github.com/daydone/backend/usecase/settings"
)

type memState map[string]string

func (m memState) Get(ctx context.Context, key string) (string, error) { return m[key], nil }
func (m memState) Set(ctx context.Context, key, value string) error    { m[key] = value; return nil }
func (m memState) Delete(ctx context.Context, key string) error        { delete(m, key); return nil }

type staticLister []domain.Todo

func (l staticLister) Snapshot() []domain.Todo { return l }

type recordingNotifier struct {
	sent []domain.Notification
	fail bool
}

func (n *recordingNotifier) Send(ctx context.Context, note domain.Notification) error {
	if n.fail {
		return errors.New("sink unavailable")
	}
	n.sent = append(n.sent, note)
	return nil
}

func grantedState() memState {
	return memState{
		repository.KeyNotificationsEnabled:   "true",
		repository.KeyNotificationPermission: settings.PermissionGranted,
	}
}

func newTestEngine(todos []domain.Todo, state memState, sink *recordingNotifier) *Engine {
	e := New(staticLister(todos), settings.New(state, nil), state, sink, time.Minute, nil)
	e.loc = time.UTC
	return e
}

func TestEvaluate_DueWithinWindow(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 0, 30, 0, time.UTC)
	todos := []domain.Todo{
		{ID: 1, Text: "standup", DueDate: "2024-03-15", DueTime: "09:00"},
	}
	sink := &recordingNotifier{}
	e := newTestEngine(todos, grantedState(), sink)

	e.Evaluate(context.Background(), now)

	require.Len(t, sink.sent, 1)
	assert.Equal(t, "due-1", sink.sent[0].Tag)
	assert.Equal(t, "Due Now: standup", sink.sent[0].Title)
	assert.Equal(t, "Due: 2024-03-15 at 09:00", sink.sent[0].Body)
}

func TestEvaluate_OverdueBeyondWindow(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 5, 0, 0, time.UTC)
	todos := []domain.Todo{
		{ID: 1, Text: "standup", DueDate: "2024-03-15", DueTime: "09:00"},
	}
	sink := &recordingNotifier{}
	e := newTestEngine(todos, grantedState(), sink)

	e.Evaluate(context.Background(), now)

	require.Len(t, sink.sent, 1)
	assert.Equal(t, "overdue-1", sink.sent[0].Tag)
}

func TestEvaluate_NotifiesAtMostOnce(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 5, 0, 0, time.UTC)
	todos := []domain.Todo{
		{ID: 1, Text: "standup", DueDate: "2024-03-15", DueTime: "09:00"},
	}
	sink := &recordingNotifier{}
	e := newTestEngine(todos, grantedState(), sink)

	e.Evaluate(context.Background(), now)
	e.Evaluate(context.Background(), now.Add(time.Minute))
	e.Evaluate(context.Background(), now.Add(time.Hour))

	assert.Len(t, sink.sent, 1)
}

func TestEvaluate_SkipsFutureAndCompleted(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	todos := []domain.Todo{
		{ID: 1, Text: "later", DueDate: "2024-03-15", DueTime: "10:00"},
		{ID: 2, Text: "done", Completed: true, DueDate: "2024-03-15", DueTime: "08:00"},
		{ID: 3, Text: "undated"},
	}
	sink := &recordingNotifier{}
	e := newTestEngine(todos, grantedState(), sink)

	e.Evaluate(context.Background(), now)

	assert.Empty(t, sink.sent)
}

func TestEvaluate_DisabledIsNoop(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 5, 0, 0, time.UTC)
	todos := []domain.Todo{
		{ID: 1, Text: "standup", DueDate: "2024-03-15", DueTime: "09:00"},
	}

	for name, state := range map[string]memState{
		"toggle off":        {repository.KeyNotificationPermission: settings.PermissionGranted},
		"permission denied": {repository.KeyNotificationsEnabled: "true", repository.KeyNotificationPermission: settings.PermissionDenied},
	} {
		sink := &recordingNotifier{}
		e := newTestEngine(todos, state, sink)
		e.Evaluate(context.Background(), now)
		assert.Empty(t, sink.sent, name)
	}
}

func TestEvaluate_FailedSendRetries(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 5, 0, 0, time.UTC)
	todos := []domain.Todo{
		{ID: 1, Text: "standup", DueDate: "2024-03-15", DueTime: "09:00"},
	}
	sink := &recordingNotifier{fail: true}
	e := newTestEngine(todos, grantedState(), sink)

	e.Evaluate(context.Background(), now)
	assert.Empty(t, sink.sent)

	sink.fail = false
	e.Evaluate(context.Background(), now.Add(time.Minute))
	assert.Len(t, sink.sent, 1)
}

func TestRetain_DropsResolvedEntries(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 5, 0, 0, time.UTC)
	state := grantedState()
	state[repository.KeyNotifiedTodos] = `[1,2,3,4]`

	// 1 still pending and overdue, 2 completed, 3 rescheduled into the
	// future, 4 deleted.
	todos := []domain.Todo{
		{ID: 1, Text: "a", DueDate: "2024-03-15", DueTime: "09:00"},
		{ID: 2, Text: "b", Completed: true, DueDate: "2024-03-15", DueTime: "09:00"},
		{ID: 3, Text: "c", DueDate: "2024-03-16"},
	}
	sink := &recordingNotifier{}
	e := newTestEngine(todos, state, sink)

	e.Evaluate(context.Background(), now)

	assert.Empty(t, sink.sent)
	assert.Equal(t, `[1]`, state[repository.KeyNotifiedTodos])
}

func TestEvaluate_EndOfDayDeadlineWithoutTime(t *testing.T) {
	todos := []domain.Todo{
		{ID: 1, Text: "all day", DueDate: "2024-03-15"},
	}
	sink := &recordingNotifier{}
	e := newTestEngine(todos, grantedState(), sink)

	e.Evaluate(context.Background(), time.Date(2024, 3, 15, 23, 0, 0, 0, time.UTC))
	assert.Empty(t, sink.sent)

	e.Evaluate(context.Background(), time.Date(2024, 3, 16, 0, 0, 30, 0, time.UTC))
	require.Len(t, sink.sent, 1)
	assert.Equal(t, "due-1", sink.sent[0].Tag)
}
