package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/bookingswingevents-commits/SwingBooking-sub000/models"
)

var (
	// ErrInvalidRange means a generation range's normalized end precedes
	// its normalized start.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrConflict means a candidate span overlaps an existing
	// non-cancelled item of the same program.
	ErrConflict = errors.New("scheduling conflict")
)

// Span is a half-open [Start, End) interval, UTC midnight normalized.
type Span struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DayUTC truncates t to UTC midnight.
func DayUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ToSunday returns the Sunday of the week containing t.
func ToSunday(t time.Time) time.Time {
	d := DayUTC(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// ToNextSunday returns t if t is already a Sunday, else the following Sunday.
func ToNextSunday(t time.Time) time.Time {
	d := DayUTC(t)
	if d.Weekday() == time.Sunday {
		return d
	}
	return d.AddDate(0, 0, 7-int(d.Weekday()))
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. A span ending exactly where another begins
// does not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// GenerateWeeks covers [start, end] with Sunday-aligned 7-day spans:
// start is pulled back to its Sunday, end pushed forward to the next
// one, then the range is walked in fixed 7-day steps. The final span's
// end equals the normalized end.
func GenerateWeeks(start, end time.Time) ([]Span, error) {
	from := ToSunday(start)
	to := ToNextSunday(end)
	if to.Before(from) {
		return nil, ErrInvalidRange
	}

	var weeks []Span
	for cursor := from; cursor.Before(to); cursor = cursor.AddDate(0, 0, 7) {
		weeks = append(weeks, Span{Start: cursor, End: cursor.AddDate(0, 0, 7)})
	}
	return weeks, nil
}

// ItemSpan returns the effective span of an item. DATE items get a
// synthetic one-day span; WEEK items use their stored Sunday pair.
func ItemSpan(item models.ProgramItem) Span {
	start := DayUTC(item.StartDate)
	if item.Kind == models.ItemWeek && item.EndDate != nil {
		return Span{Start: start, End: DayUTC(*item.EndDate)}
	}
	return Span{Start: start, End: start.AddDate(0, 0, 1)}
}

// ConflictError reports which candidate span collided with which item.
type ConflictError struct {
	Candidate Span
	ItemID    uint
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("span %s overlaps item %d",
		e.Candidate.Start.Format("2006-01-02"), e.ItemID)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// CheckConflicts rejects the whole candidate batch if any candidate
// span overlaps the effective span of a non-cancelled existing item.
// A single conflicting span blocks everything: no partial insertion.
func CheckConflicts(candidates []Span, existing []models.ProgramItem) error {
	for _, c := range candidates {
		for _, item := range existing {
			if item.Status == models.ItemStatusCancelled {
				continue
			}
			s := ItemSpan(item)
			if Overlaps(c.Start, c.End, s.Start, s.End) {
				return &ConflictError{Candidate: c, ItemID: item.ID}
			}
		}
	}
	return nil
}
