package services

import (
	"errors"
	"testing"
	"time"

	"github.com/bookingswingevents-commits/SwingBooking-sub000/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return parsed
}

func TestToSunday(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2025-01-05", "2025-01-05"}, // already Sunday
		{"2025-01-06", "2025-01-05"}, // Monday
		{"2025-01-11", "2025-01-05"}, // Saturday
		{"2025-03-10", "2025-03-09"},
	}
	for _, c := range cases {
		got := ToSunday(day(t, c.in))
		assert.Equal(t, day(t, c.want), got, "ToSunday(%s)", c.in)
		assert.Equal(t, time.Sunday, got.Weekday())
		assert.Less(t, day(t, c.in).Sub(got), 7*24*time.Hour)
	}
}

func TestToNextSunday(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2025-01-05", "2025-01-05"}, // Sunday stays put
		{"2025-01-06", "2025-01-12"}, // Monday
		{"2025-01-11", "2025-01-12"}, // Saturday
		{"2025-01-20", "2025-01-26"},
	}
	for _, c := range cases {
		got := ToNextSunday(day(t, c.in))
		assert.Equal(t, day(t, c.want), got, "ToNextSunday(%s)", c.in)
		assert.Equal(t, time.Sunday, got.Weekday())
		diff := got.Sub(day(t, c.in))
		assert.GreaterOrEqual(t, diff, time.Duration(0))
		assert.Less(t, diff, 7*24*time.Hour)
	}
}

func TestOverlapsSymmetry(t *testing.T) {
	a1, a2 := day(t, "2025-02-02"), day(t, "2025-02-09")
	b1, b2 := day(t, "2025-02-08"), day(t, "2025-02-15")

	assert.True(t, Overlaps(a1, a2, b1, b2))
	assert.Equal(t, Overlaps(a1, a2, b1, b2), Overlaps(b1, b2, a1, a2))
}

func TestOverlapsHalfOpen(t *testing.T) {
	// A span ending exactly where another begins does not overlap
	s, e := day(t, "2025-02-02"), day(t, "2025-02-09")
	next := e.AddDate(0, 0, 7)
	assert.False(t, Overlaps(s, e, e, next))
	assert.False(t, Overlaps(e, next, s, e))
}

func TestGenerateWeeks(t *testing.T) {
	// Mon 2025-01-06 .. Mon 2025-01-20 normalizes to Sun 2025-01-05 .. Sun 2025-01-26
	weeks, err := GenerateWeeks(day(t, "2025-01-06"), day(t, "2025-01-20"))
	require.NoError(t, err)
	require.Len(t, weeks, 3)

	assert.Equal(t, day(t, "2025-01-05"), weeks[0].Start)
	for _, w := range weeks {
		assert.Equal(t, 7*24*time.Hour, w.End.Sub(w.Start))
		assert.Equal(t, time.Sunday, w.Start.Weekday())
	}
	assert.Equal(t, day(t, "2025-01-26"), weeks[2].End)

	// Consecutive weeks are adjacent, never overlapping
	for i := 1; i < len(weeks); i++ {
		assert.Equal(t, weeks[i-1].End, weeks[i].Start)
	}
}

func TestGenerateWeeksInvalidRange(t *testing.T) {
	_, err := GenerateWeeks(day(t, "2025-01-06"), day(t, "2024-12-25"))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func dateItem(id uint, start time.Time, status string) models.ProgramItem {
	return models.ProgramItem{ID: id, Kind: models.ItemDate, StartDate: start, Status: status}
}

func weekItem(id uint, start, end time.Time, status string) models.ProgramItem {
	return models.ProgramItem{ID: id, Kind: models.ItemWeek, StartDate: start, EndDate: &end, Status: status}
}

func TestItemSpanDate(t *testing.T) {
	span := ItemSpan(dateItem(1, day(t, "2025-03-10"), models.ItemStatusOpen))
	assert.Equal(t, day(t, "2025-03-10"), span.Start)
	assert.Equal(t, day(t, "2025-03-11"), span.End)
}

func TestCheckConflictsSameDay(t *testing.T) {
	existing := []models.ProgramItem{dateItem(7, day(t, "2025-03-10"), models.ItemStatusOpen)}

	candidate := Span{Start: day(t, "2025-03-10"), End: day(t, "2025-03-11")}
	err := CheckConflicts([]Span{candidate}, existing)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)

	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, uint(7), conflict.ItemID)

	nextDay := Span{Start: day(t, "2025-03-11"), End: day(t, "2025-03-12")}
	assert.NoError(t, CheckConflicts([]Span{nextDay}, existing))
}

func TestCheckConflictsSkipsCancelled(t *testing.T) {
	existing := []models.ProgramItem{dateItem(7, day(t, "2025-03-10"), models.ItemStatusCancelled)}
	candidate := Span{Start: day(t, "2025-03-10"), End: day(t, "2025-03-11")}
	assert.NoError(t, CheckConflicts([]Span{candidate}, existing))
}

func TestCheckConflictsAdjacentWeeks(t *testing.T) {
	// A residency week ending on Sunday X and another starting on Sunday X coexist
	existing := []models.ProgramItem{
		weekItem(3, day(t, "2025-01-05"), day(t, "2025-01-12"), models.ItemStatusOpen),
	}
	candidate := Span{Start: day(t, "2025-01-12"), End: day(t, "2025-01-19")}
	assert.NoError(t, CheckConflicts([]Span{candidate}, existing))
}

func TestCheckConflictsRejectsWholeBatch(t *testing.T) {
	existing := []models.ProgramItem{
		weekItem(3, day(t, "2025-01-19"), day(t, "2025-01-26"), models.ItemStatusOpen),
	}
	weeks, err := GenerateWeeks(day(t, "2025-01-06"), day(t, "2025-01-20"))
	require.NoError(t, err)

	// The last generated week collides, so the entire batch is rejected
	err = CheckConflicts(weeks, existing)
	assert.ErrorIs(t, err, ErrConflict)
}
