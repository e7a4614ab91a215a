package todo

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/daydone/backend/domain"
	"github.com/daydone/backend/repository"
)

// ChangeListener is invoked synchronously after every committed mutation with
// a snapshot of the full collection. Derived state (streak, due scan) hangs
// off this hook.
type ChangeListener interface {
	TodosChanged(ctx context.Context, todos []domain.Todo)
}

// Draft carries the user input for a new todo. Omitted category, priority and
// recurrence get defaults; subtasks always start empty.
type Draft struct {
	Text      string
	DueDate   string
	DueTime   string
	Category  domain.Category
	Priority  domain.Priority
	Recurring domain.Recurrence
}

// Patch replaces the mutable fields of an existing todo. Empty DueDate or
// DueTime clears the value; empty Category, Priority or Recurring keeps the
// stored one. Subtasks are replaced wholesale in the given order; entries
// with a zero id are treated as new and receive one.
type Patch struct {
	Text      string
	DueDate   string
	DueTime   string
	Category  domain.Category
	Priority  domain.Priority
	Recurring domain.Recurrence
	Subtasks  []domain.Subtask
}

// Service owns the in-memory todo collection and writes every mutation
// through to the repository. Persistence failures are logged and the
// in-memory change stands; durability of that write is not guaranteed.
type Service struct {
	repo   repository.TodoRepository
	logger *zap.Logger
	now    func() time.Time
	loc    *time.Location

	mu        sync.RWMutex
	todos     []domain.Todo
	lastID    int64
	editingID int64

	listeners []ChangeListener
}

func New(repo repository.TodoRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		loc:    time.Local,
	}
}

// Subscribe registers a change listener. Not safe to call once the service
// is serving requests.
func (s *Service) Subscribe(l ChangeListener) {
	if l != nil {
		s.listeners = append(s.listeners, l)
	}
}

// Load populates the in-memory collection from the repository.
func (s *Service) Load(ctx context.Context) error {
	todos, err := s.repo.List(ctx)
	if err != nil {
		return domain.WrapError(domain.ErrCodePersistence, "load todos", err)
	}

	s.mu.Lock()
	s.todos = todos
	for i := range todos {
		if todos[i].ID > s.lastID {
			s.lastID = todos[i].ID
		}
	}
	s.mu.Unlock()

	s.logger.Info("todo collection loaded", zap.Int("count", len(todos)))
	return nil
}

// Snapshot returns a copy of the collection in insertion order.
func (s *Service) Snapshot() []domain.Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

// Get returns the todo with the given id.
func (s *Service) Get(id int64) (domain.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.indexLocked(id); idx >= 0 {
		return s.todos[idx], nil
	}
	return domain.Todo{}, domain.ErrTodoNotFound
}

// Add validates and appends a new todo.
func (s *Service) Add(ctx context.Context, draft Draft) (domain.Todo, error) {
	text := strings.TrimSpace(draft.Text)
	if text == "" {
		return domain.Todo{}, domain.ErrBlankText
	}
	if err := validateSchedule(draft.DueDate, draft.DueTime); err != nil {
		return domain.Todo{}, err
	}

	category := draft.Category
	if category == "" {
		category = domain.CategoryPersonal
	}
	priority := draft.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	recurring := draft.Recurring
	if recurring == "" {
		recurring = domain.RecurrenceNone
	}
	if !category.Valid() || !priority.Valid() || !recurring.Valid() {
		return domain.Todo{}, domain.ErrInvalidPayload
	}

	s.mu.Lock()
	id := s.nextIDLocked()
	todo := domain.Todo{
		ID:        id,
		Text:      text,
		CreatedAt: id,
		DueDate:   draft.DueDate,
		DueTime:   draft.DueTime,
		Category:  category,
		Priority:  priority,
		Recurring: recurring,
		Subtasks:  []domain.Subtask{},
	}
	s.todos = append(s.todos, todo)
	snapshot := s.copyLocked()
	s.mu.Unlock()

	s.persist(ctx, "create", func() error { return s.repo.Create(ctx, &todo) })
	s.changed(ctx, snapshot)
	return todo, nil
}

// BeginEdit opens an edit session and returns a working copy of the todo.
// Subtask order in the copy matches the stored order.
func (s *Service) BeginEdit(id int64) (domain.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return domain.Todo{}, domain.ErrTodoNotFound
	}
	s.editingID = id
	draft := s.todos[idx]
	draft.Subtasks = append([]domain.Subtask(nil), draft.Subtasks...)
	return draft, nil
}

// CancelEdit discards the current edit session, if any.
func (s *Service) CancelEdit() {
	s.mu.Lock()
	s.editingID = 0
	s.mu.Unlock()
}

// EditingID reports the id under edit, or zero.
func (s *Service) EditingID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.editingID
}

// Edit applies a patch to an existing todo and closes a matching edit
// session. Stored subtask order is whatever the patch carries; callers that
// went through BeginEdit therefore preserve the original order and append
// new entries at the end.
func (s *Service) Edit(ctx context.Context, id int64, patch Patch) (domain.Todo, error) {
	text := strings.TrimSpace(patch.Text)
	if text == "" {
		return domain.Todo{}, domain.ErrBlankText
	}
	if err := validateSchedule(patch.DueDate, patch.DueTime); err != nil {
		return domain.Todo{}, err
	}
	if patch.Category != "" && !patch.Category.Valid() {
		return domain.Todo{}, domain.ErrInvalidPayload
	}
	if patch.Priority != "" && !patch.Priority.Valid() {
		return domain.Todo{}, domain.ErrInvalidPayload
	}
	if patch.Recurring != "" && !patch.Recurring.Valid() {
		return domain.Todo{}, domain.ErrInvalidPayload
	}

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return domain.Todo{}, domain.ErrTodoNotFound
	}

	t := &s.todos[idx]
	t.Text = text
	t.DueDate = patch.DueDate
	t.DueTime = patch.DueTime
	if patch.Category != "" {
		t.Category = patch.Category
	}
	if patch.Priority != "" {
		t.Priority = patch.Priority
	}
	if patch.Recurring != "" {
		t.Recurring = patch.Recurring
	}

	subtasks := make([]domain.Subtask, 0, len(patch.Subtasks))
	for _, st := range patch.Subtasks {
		if strings.TrimSpace(st.Text) == "" {
			continue
		}
		if st.ID == 0 {
			st.ID = s.nextIDLocked()
		}
		subtasks = append(subtasks, st)
	}
	t.Subtasks = subtasks

	if s.editingID == id {
		s.editingID = 0
	}
	updated := *t
	snapshot := s.copyLocked()
	s.mu.Unlock()

	s.persist(ctx, "update", func() error { return s.repo.Update(ctx, &updated) })
	s.changed(ctx, snapshot)
	return updated, nil
}

// Delete removes the todo and every todo spawned from it, and cancels an
// edit session targeting it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	if s.indexLocked(id) < 0 {
		s.mu.Unlock()
		return domain.ErrTodoNotFound
	}

	removed := []int64{}
	kept := s.todos[:0]
	for _, t := range s.todos {
		if t.ID == id || t.ParentID == id {
			removed = append(removed, t.ID)
			continue
		}
		kept = append(kept, t)
	}
	s.todos = kept
	if s.editingID == id {
		s.editingID = 0
	}
	snapshot := s.copyLocked()
	s.mu.Unlock()

	s.persist(ctx, "delete", func() error { return s.repo.Delete(ctx, removed...) })
	s.changed(ctx, snapshot)
	return nil
}

// ToggleComplete flips completion state. Completing a recurring todo spawns
// its successor: same text, category, priority and recurrence, due date
// advanced by one interval when present, subtasks reset, parentId pointing
// back at the source.
func (s *Service) ToggleComplete(ctx context.Context, id int64) (domain.Todo, error) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return domain.Todo{}, domain.ErrTodoNotFound
	}

	t := &s.todos[idx]
	t.Completed = !t.Completed
	if t.Completed {
		at := s.now().UnixMilli()
		t.CompletedAt = &at
	} else {
		t.CompletedAt = nil
	}
	updated := *t

	var spawned *domain.Todo
	if updated.Completed && updated.Recurring != domain.RecurrenceNone {
		successor := s.spawnLocked(updated)
		s.todos = append(s.todos, successor)
		spawned = &successor
	}
	snapshot := s.copyLocked()
	s.mu.Unlock()

	s.persist(ctx, "update", func() error { return s.repo.Update(ctx, &updated) })
	if spawned != nil {
		s.persist(ctx, "create", func() error { return s.repo.Create(ctx, spawned) })
	}
	s.changed(ctx, snapshot)
	return updated, nil
}

// ToggleSubtask flips one subtask. Parent completion is unaffected.
func (s *Service) ToggleSubtask(ctx context.Context, id, subtaskID int64) (domain.Todo, error) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return domain.Todo{}, domain.ErrTodoNotFound
	}

	t := &s.todos[idx]
	found := false
	subtasks := append([]domain.Subtask(nil), t.Subtasks...)
	for i := range subtasks {
		if subtasks[i].ID == subtaskID {
			subtasks[i].Completed = !subtasks[i].Completed
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return domain.Todo{}, domain.ErrSubtaskNotFound
	}
	t.Subtasks = subtasks
	updated := *t
	snapshot := s.copyLocked()
	s.mu.Unlock()

	s.persist(ctx, "update", func() error { return s.repo.Update(ctx, &updated) })
	s.changed(ctx, snapshot)
	return updated, nil
}

// Replace swaps in a whole new collection, as used by import. Unlike normal
// mutations a persistence failure here aborts the replacement.
func (s *Service) Replace(ctx context.Context, todos []domain.Todo) error {
	normalized := make([]domain.Todo, len(todos))
	copy(normalized, todos)
	for i := range normalized {
		normalized[i].Normalize()
	}

	if err := s.repo.ReplaceAll(ctx, normalized); err != nil {
		return domain.WrapError(domain.ErrCodePersistence, "replace todos", err)
	}

	s.mu.Lock()
	s.todos = normalized
	s.editingID = 0
	for i := range normalized {
		if normalized[i].ID > s.lastID {
			s.lastID = normalized[i].ID
		}
	}
	snapshot := s.copyLocked()
	s.mu.Unlock()

	s.changed(ctx, snapshot)
	return nil
}

func (s *Service) spawnLocked(source domain.Todo) domain.Todo {
	id := s.nextIDLocked()
	successor := domain.Todo{
		ID:        id,
		Text:      source.Text,
		CreatedAt: id,
		DueTime:   source.DueTime,
		Category:  source.Category,
		Priority:  source.Priority,
		Recurring: source.Recurring,
		ParentID:  source.ID,
		Subtasks:  make([]domain.Subtask, len(source.Subtasks)),
	}
	if source.DueDate != "" {
		successor.DueDate = domain.NextDueDate(source.DueDate, source.Recurring, s.loc)
	}
	for i, st := range source.Subtasks {
		st.Completed = false
		successor.Subtasks[i] = st
	}
	return successor
}

// nextIDLocked hands out millisecond timestamps bumped past the last issued
// id, so ids stay unique and monotonic even within one millisecond.
func (s *Service) nextIDLocked() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Service) indexLocked(id int64) int {
	for i := range s.todos {
		if s.todos[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) copyLocked() []domain.Todo {
	out := make([]domain.Todo, len(s.todos))
	copy(out, s.todos)
	return out
}

func (s *Service) persist(ctx context.Context, operation string, fn func() error) {
	if err := fn(); err != nil {
		s.logger.Error("todo persistence failed",
			zap.String("operation", operation),
			zap.Error(err))
	}
}

func (s *Service) changed(ctx context.Context, snapshot []domain.Todo) {
	for _, l := range s.listeners {
		l.TodosChanged(ctx, snapshot)
	}
}

func validateSchedule(dueDate, dueTime string) error {
	if dueDate != "" {
		if _, err := time.Parse(domain.DueDateLayout, dueDate); err != nil {
			return domain.NewError(domain.ErrCodeValidation, "due date must be YYYY-MM-DD")
		}
	}
	if dueTime != "" {
		if _, err := time.Parse(domain.DueTimeLayout, dueTime); err != nil {
			return domain.NewError(domain.ErrCodeValidation, "due time must be HH:MM")
		}
	}
	return nil
}
