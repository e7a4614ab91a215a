package todo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daydone/backend/domain"
)

func seedQueryService(t *testing.T) *Service {
	t.Helper()
	s, _ := newTestService()

	drafts := []Draft{
		{Text: "write report", Category: domain.CategoryWork, Priority: domain.PriorityHigh, DueDate: "2024-01-12"},
		{Text: "read chapter", Category: domain.CategoryStudy, Priority: domain.PriorityLow, DueDate: "2024-01-11", DueTime: "08:00"},
		{Text: "buy groceries", Category: domain.CategoryPersonal, Priority: domain.PriorityMedium},
		{Text: "review report", Category: domain.CategoryWork, Priority: domain.PriorityLow, DueDate: "2024-01-11"},
	}
	for _, d := range drafts {
		_, err := s.Add(context.Background(), d)
		require.NoError(t, err)
	}
	return s
}

func texts(todos []domain.Todo) []string {
	out := make([]string, len(todos))
	for i, t := range todos {
		out[i] = t.Text
	}
	return out
}

func TestQuery_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	s := seedQueryService(t)

	got := s.Query(Query{Search: "REPORT"})
	assert.ElementsMatch(t, []string{"write report", "review report"}, texts(got))
}

func TestQuery_CategoryAndPriorityFiltersCombine(t *testing.T) {
	s := seedQueryService(t)

	got := s.Query(Query{Category: "Work", Priority: "Low"})
	assert.Equal(t, []string{"review report"}, texts(got))

	// "all" and empty behave the same.
	assert.Len(t, s.Query(Query{Category: FilterAll}), 4)
	assert.Len(t, s.Query(Query{Category: ""}), 4)
}

func TestQuery_SortByCreatedNewestFirst(t *testing.T) {
	s := seedQueryService(t)

	got := s.Query(Query{Sort: SortCreated})
	assert.Equal(t, []string{"review report", "buy groceries", "read chapter", "write report"}, texts(got))
}

func TestQuery_SortByDueDatePutsUndatedLast(t *testing.T) {
	s := seedQueryService(t)

	got := s.Query(Query{Sort: SortDueDate})
	require.Len(t, got, 4)
	// A missing due time sorts as midnight, ahead of 08:00 the same day.
	assert.Equal(t, []string{"review report", "read chapter", "write report", "buy groceries"}, texts(got))
}

func TestQuery_SortByPriority(t *testing.T) {
	s := seedQueryService(t)

	got := s.Query(Query{Sort: SortPriority})
	assert.Equal(t, []string{"write report", "buy groceries", "read chapter", "review report"}, texts(got))
}

func TestQuery_SortByCompletedKeepsPendingFirst(t *testing.T) {
	s := seedQueryService(t)

	first := s.Query(Query{})[3] // oldest is "write report" under default sort
	_, err := s.ToggleComplete(context.Background(), first.ID)
	require.NoError(t, err)

	got := s.Query(Query{Sort: SortCompleted})
	require.Len(t, got, 4)
	assert.Equal(t, "write report", got[3].Text)
	assert.True(t, got[3].Completed)
	for _, todo := range got[:3] {
		assert.False(t, todo.Completed)
	}
}
