package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/daydone/backend/domain"
	"github.com/daydone/backend/usecase/stats"
)

// Collection is the slice of the todo service the reporter needs.
type Collection interface {
	Snapshot() []domain.Todo
	Replace(ctx context.Context, todos []domain.Todo) error
}

// Service builds the aggregate report and handles JSON export/import of the
// collection.
type Service struct {
	todos  Collection
	streak *stats.Tracker
	logger *zap.Logger
	now    func() time.Time
}

func New(todos Collection, streak *stats.Tracker, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		todos:  todos,
		streak: streak,
		logger: logger,
		now:    time.Now,
	}
}

// Build assembles the full report document.
func (s *Service) Build(ctx context.Context) domain.Report {
	todos := s.todos.Snapshot()
	now := s.now()

	completed := 0
	for _, t := range todos {
		if t.Completed {
			completed++
		}
	}

	return domain.Report{
		GeneratedAt:     now,
		TotalTodos:      len(todos),
		CompletedTodos:  completed,
		PendingTodos:    len(todos) - completed,
		DailyAccuracy:   stats.Accuracy(todos, stats.PeriodDaily, now),
		WeeklyAccuracy:  stats.Accuracy(todos, stats.PeriodWeekly, now),
		MonthlyAccuracy: stats.Accuracy(todos, stats.PeriodMonthly, now),
		CurrentStreak:   s.streak.Current(ctx),
		CategoryStats:   stats.CategoryStats(todos),
		PriorityStats:   stats.PriorityStats(todos),
		Todos:           todos,
	}
}

// ExportTodos serializes the collection as a JSON array. The returned
// filename carries the current date.
func (s *Service) ExportTodos(ctx context.Context) ([]byte, string, error) {
	payload, err := json.MarshalIndent(s.todos.Snapshot(), "", "  ")
	if err != nil {
		return nil, "", domain.WrapError(domain.ErrCodeInternal, "encode todos", err)
	}
	return payload, fmt.Sprintf("todos-%s.json", s.now().Format(domain.DueDateLayout)), nil
}

// ExportReport serializes the composite report document.
func (s *Service) ExportReport(ctx context.Context) ([]byte, string, error) {
	payload, err := json.MarshalIndent(s.Build(ctx), "", "  ")
	if err != nil {
		return nil, "", domain.WrapError(domain.ErrCodeInternal, "encode report", err)
	}
	return payload, fmt.Sprintf("todo-report-%s.json", s.now().Format(domain.DueDateLayout)), nil
}

// Import replaces the whole collection from a JSON array. Anything that is
// not an array is rejected before any state changes; there is no merging.
func (s *Service) Import(ctx context.Context, data []byte) (int, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return 0, domain.ErrNotArray
	}

	var todos []domain.Todo
	if err := json.Unmarshal(trimmed, &todos); err != nil {
		return 0, domain.WrapError(domain.ErrCodeFormat, "parse import payload", err)
	}

	if err := s.todos.Replace(ctx, todos); err != nil {
		return 0, err
	}
	s.logger.Info("todo collection imported", zap.Int("count", len(todos)))
	return len(todos), nil
}
