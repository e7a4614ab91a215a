package todo

import (
	"sort"
	"strings"

	"github.com/daydone/backend/domain"
)

// Sort modes accepted by Query.
type SortMode string

const (
	SortCreated   SortMode = "date"      // creation time, newest first
	SortDueDate   SortMode = "dueDate"   // effective due instant ascending, undated last
	SortPriority  SortMode = "priority"  // High > Medium > Low
	SortCompleted SortMode = "completed" // pending before completed
)

// FilterAll matches every category or priority.
const FilterAll = "all"

// Query narrows and orders the collection. All filters are ANDed; the search
// match is a case-insensitive substring test on the todo text. Every sort is
// stable, ties keep insertion order.
type Query struct {
	Search   string
	Category string
	Priority string
	Sort     SortMode
}

// Query evaluates q against a snapshot of the collection.
func (s *Service) Query(q Query) []domain.Todo {
	todos := s.Snapshot()

	search := strings.ToLower(q.Search)
	matched := todos[:0]
	for _, t := range todos {
		if search != "" && !strings.Contains(strings.ToLower(t.Text), search) {
			continue
		}
		if !filterMatches(q.Category, string(t.Category)) {
			continue
		}
		if !filterMatches(q.Priority, string(t.Priority)) {
			continue
		}
		matched = append(matched, t)
	}

	switch q.Sort {
	case SortDueDate:
		sort.SliceStable(matched, func(i, j int) bool {
			a, aOK := matched[i].DueSortKey(s.loc)
			b, bOK := matched[j].DueSortKey(s.loc)
			if !aOK {
				return false
			}
			if !bOK {
				return true
			}
			return a.Before(b)
		})
	case SortPriority:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].Priority.Rank() > matched[j].Priority.Rank()
		})
	case SortCompleted:
		sort.SliceStable(matched, func(i, j int) bool {
			return !matched[i].Completed && matched[j].Completed
		})
	default: // SortCreated
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].CreatedAt > matched[j].CreatedAt
		})
	}

	return matched
}

func filterMatches(filter, value string) bool {
	return filter == "" || filter == FilterAll || filter == value
}
