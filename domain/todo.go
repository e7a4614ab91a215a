package domain

import "time"

// Layouts for the wire representation of due dates and times.
const (
	DueDateLayout = "2006-01-02"
	DueTimeLayout = "15:04"
)

type Category string

const (
	CategoryWork     Category = "Work"
	CategoryStudy    Category = "Study"
	CategoryPersonal Category = "Personal"
)

// Categories lists every category in report order.
var Categories = []Category{CategoryWork, CategoryStudy, CategoryPersonal}

func (c Category) Valid() bool {
	switch c {
	case CategoryWork, CategoryStudy, CategoryPersonal:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities lists every priority in report order.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank orders priorities for sorting. Unrecognized values rank below Low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	}
	return false
}

// Subtask is a checklist entry under a todo. Its completion state is
// independent of the parent's.
type Subtask struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Todo represents a single item in the user's list. Timestamps are unix
// milliseconds; the id doubles as the creation timestamp and is guaranteed
// unique and monotonically increasing by the store.
type Todo struct {
	ID          int64      `json:"id"`
	Text        string     `json:"text"`
	Completed   bool       `json:"completed"`
	CompletedAt *int64     `json:"completedAt,omitempty"`
	CreatedAt   int64      `json:"createdAt"`
	DueDate     string     `json:"dueDate,omitempty"`
	DueTime     string     `json:"dueTime,omitempty"`
	Category    Category   `json:"category"`
	Priority    Priority   `json:"priority"`
	Recurring   Recurrence `json:"recurring"`
	ParentID    int64      `json:"parentId,omitempty"`
	Subtasks    []Subtask  `json:"subtasks"`
}

// Deadline returns the effective deadline: due date plus due time, or end of
// day (23:59:59.999) when no time is set. The second return value is false
// when the todo has no due date.
func (t *Todo) Deadline(loc *time.Location) (time.Time, bool) {
	if t == nil || t.DueDate == "" {
		return time.Time{}, false
	}
	day, err := time.ParseInLocation(DueDateLayout, t.DueDate, loc)
	if err != nil {
		return time.Time{}, false
	}
	if t.DueTime != "" {
		if tod, err := time.ParseInLocation(DueTimeLayout, t.DueTime, loc); err == nil {
			return day.Add(time.Duration(tod.Hour())*time.Hour + time.Duration(tod.Minute())*time.Minute), true
		}
	}
	return day.Add(24*time.Hour - time.Millisecond), true
}

// DueSortKey is the instant used for due-date ordering. Unlike Deadline, a
// missing due time compares as midnight.
func (t *Todo) DueSortKey(loc *time.Location) (time.Time, bool) {
	if t == nil || t.DueDate == "" {
		return time.Time{}, false
	}
	day, err := time.ParseInLocation(DueDateLayout, t.DueDate, loc)
	if err != nil {
		return time.Time{}, false
	}
	if t.DueTime != "" {
		if tod, err := time.ParseInLocation(DueTimeLayout, t.DueTime, loc); err == nil {
			return day.Add(time.Duration(tod.Hour())*time.Hour + time.Duration(tod.Minute())*time.Minute), true
		}
	}
	return day, true
}

// NextDueDate advances a due date by one recurrence interval.
func NextDueDate(dueDate string, recurring Recurrence, loc *time.Location) string {
	day, err := time.ParseInLocation(DueDateLayout, dueDate, loc)
	if err != nil {
		return dueDate
	}
	switch recurring {
	case RecurrenceDaily:
		day = day.AddDate(0, 0, 1)
	case RecurrenceWeekly:
		day = day.AddDate(0, 0, 7)
	case RecurrenceMonthly:
		day = day.AddDate(0, 1, 0)
	default:
		return dueDate
	}
	return day.Format(DueDateLayout)
}

// Normalize fills defaults for records imported from older exports, mirroring
// the migration applied when loading a stored collection.
func (t *Todo) Normalize() {
	if t.CreatedAt == 0 {
		t.CreatedAt = t.ID
	}
	if t.Category == "" {
		t.Category = CategoryPersonal
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Recurring == "" {
		t.Recurring = RecurrenceNone
	}
	if t.Subtasks == nil {
		t.Subtasks = []Subtask{}
	}
	if !t.Completed {
		t.CompletedAt = nil
	}
}
