package stats

import (
	"math"
	"sort"
	"time"

	"github.com/daydone/backend/domain"
)

// Period selects the window for accuracy computations.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

func (p Period) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return true
	}
	return false
}

// dayOrdinal converts an instant to a calendar-day number in its own
// location, so day arithmetic survives DST shifts.
func dayOrdinal(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

// Streak returns the number of consecutive calendar days with at least one
// completion, walking backward from the day of now. The chain may start at
// today or yesterday; any missed day in between breaks it.
func Streak(todos []domain.Todo, now time.Time) int {
	days := completionDays(todos, now.Location())
	if len(days) == 0 {
		return 0
	}

	streak := 0
	current := dayOrdinal(now)
	for _, day := range days {
		diff := current - day
		if diff == 0 || diff == 1 {
			streak++
			current = day
		} else if diff > 1 {
			break
		}
	}
	return streak
}

// LastCompletionDay returns the most recent calendar day with a completion.
func LastCompletionDay(todos []domain.Todo, now time.Time) (string, bool) {
	days := completionDays(todos, now.Location())
	if len(days) == 0 {
		return "", false
	}
	day := time.Unix(days[0]*86400, 0).UTC()
	return day.Format(domain.DueDateLayout), true
}

// completionDays returns unique completion-day ordinals, newest first.
func completionDays(todos []domain.Todo, loc *time.Location) []int64 {
	seen := map[int64]struct{}{}
	days := []int64{}
	for _, t := range todos {
		if !t.Completed || t.CompletedAt == nil {
			continue
		}
		day := dayOrdinal(time.UnixMilli(*t.CompletedAt).In(loc))
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] > days[j] })
	return days
}

// Accuracy returns the completion percentage of todos created within the
// period, rounded to the nearest integer, or 0 when none were created.
func Accuracy(todos []domain.Todo, period Period, now time.Time) int {
	start, ok := periodStart(period, now)
	if !ok {
		return 0
	}

	total := 0
	completed := 0
	for _, t := range todos {
		created := time.UnixMilli(t.CreatedAt).In(now.Location())
		if created.Before(start) {
			continue
		}
		total++
		if t.Completed {
			completed++
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// periodStart computes the start of today, of the current week (Sunday
// first) or of the current month, in now's location.
func periodStart(period Period, now time.Time) (time.Time, bool) {
	y, m, d := now.Date()
	switch period {
	case PeriodDaily:
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
	case PeriodWeekly:
		return time.Date(y, m, d-int(now.Weekday()), 0, 0, 0, 0, now.Location()), true
	case PeriodMonthly:
		return time.Date(y, m, 1, 0, 0, 0, 0, now.Location()), true
	}
	return time.Time{}, false
}

// CategoryStats counts all-time totals per category, ignoring any period.
func CategoryStats(todos []domain.Todo) []domain.CategoryStat {
	out := make([]domain.CategoryStat, 0, len(domain.Categories))
	for _, category := range domain.Categories {
		stat := domain.CategoryStat{Category: category}
		for _, t := range todos {
			if t.Category != category {
				continue
			}
			stat.Total++
			if t.Completed {
				stat.Completed++
			}
		}
		out = append(out, stat)
	}
	return out
}

// PriorityStats counts all-time totals per priority, ignoring any period.
func PriorityStats(todos []domain.Todo) []domain.PriorityStat {
	out := make([]domain.PriorityStat, 0, len(domain.Priorities))
	for _, priority := range domain.Priorities {
		stat := domain.PriorityStat{Priority: priority}
		for _, t := range todos {
			if t.Priority != priority {
				continue
			}
			stat.Total++
			if t.Completed {
				stat.Completed++
			}
		}
		out = append(out, stat)
	}
	return out
}
