package domain

import "time"

// CategoryStat summarizes all-time completion counts for one category.
type CategoryStat struct {
	Category  Category `json:"category"`
	Total     int      `json:"total"`
	Completed int      `json:"completed"`
}

// PriorityStat summarizes all-time completion counts for one priority.
type PriorityStat struct {
	Priority  Priority `json:"priority"`
	Total     int      `json:"total"`
	Completed int      `json:"completed"`
}

// Report is the composite document produced by the report exporter. Field
// names match the exported JSON format.
type Report struct {
	GeneratedAt     time.Time      `json:"generatedAt"`
	TotalTodos      int            `json:"totalTodos"`
	CompletedTodos  int            `json:"completedTodos"`
	PendingTodos    int            `json:"pendingTodos"`
	DailyAccuracy   int            `json:"dailyAccuracy"`
	WeeklyAccuracy  int            `json:"weeklyAccuracy"`
	MonthlyAccuracy int            `json:"monthlyAccuracy"`
	CurrentStreak   int            `json:"currentStreak"`
	CategoryStats   []CategoryStat `json:"categoryStats"`
	PriorityStats   []PriorityStat `json:"priorityStats"`
	Todos           []Todo         `json:"todos"`
}
