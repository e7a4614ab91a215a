package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeadline(t *testing.T) {
	loc := time.UTC

	undated := Todo{Text: "no date"}
	_, ok := undated.Deadline(loc)
	assert.False(t, ok)

	timed := Todo{DueDate: "2024-03-15", DueTime: "09:30"}
	deadline, ok := timed.Deadline(loc)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 15, 9, 30, 0, 0, loc), deadline)

	allDay := Todo{DueDate: "2024-03-15"}
	deadline, ok = allDay.Deadline(loc)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 15, 23, 59, 59, 999000000, loc), deadline)
}

func TestDueSortKey_MissingTimeIsMidnight(t *testing.T) {
	loc := time.UTC

	allDay := Todo{DueDate: "2024-03-15"}
	key, ok := allDay.DueSortKey(loc)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, loc), key)
}

func TestNextDueDate(t *testing.T) {
	loc := time.UTC

	assert.Equal(t, "2024-01-11", NextDueDate("2024-01-10", RecurrenceDaily, loc))
	assert.Equal(t, "2024-01-17", NextDueDate("2024-01-10", RecurrenceWeekly, loc))
	assert.Equal(t, "2024-02-10", NextDueDate("2024-01-10", RecurrenceMonthly, loc))
	// AddDate normalizes the overflow past a short month.
	assert.Equal(t, "2024-03-02", NextDueDate("2024-01-31", RecurrenceMonthly, loc))
	// No recurrence and malformed input pass through untouched.
	assert.Equal(t, "2024-01-10", NextDueDate("2024-01-10", RecurrenceNone, loc))
	assert.Equal(t, "not a date", NextDueDate("not a date", RecurrenceDaily, loc))
}

func TestPriorityRank(t *testing.T) {
	assert.Greater(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Greater(t, PriorityMedium.Rank(), PriorityLow.Rank())
	assert.Greater(t, PriorityLow.Rank(), Priority("").Rank())
}

func TestNormalize(t *testing.T) {
	legacy := Todo{ID: 42, Text: "legacy"}
	legacy.Normalize()

	assert.Equal(t, int64(42), legacy.CreatedAt)
	assert.Equal(t, CategoryPersonal, legacy.Category)
	assert.Equal(t, PriorityMedium, legacy.Priority)
	assert.Equal(t, RecurrenceNone, legacy.Recurring)
	assert.NotNil(t, legacy.Subtasks)

	at := int64(1000)
	stale := Todo{ID: 1, Text: "undone", CompletedAt: &at}
	stale.Normalize()
	assert.Nil(t, stale.CompletedAt)
}
