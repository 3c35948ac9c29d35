package entity

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire and storage format for tour dates.
const DateLayout = "2006-01-02"

// TourDate is the bookable unit: one calendar date instance of a tour.
// Identity is the (TourID, Date) pair. Invariant: 0 <= Committed <= Capacity.
// Remaining is always derived, never stored, so the two counters cannot drift.
type TourDate struct {
	TourID    uuid.UUID `db:"tour_id"`
	Date      string    `db:"date"`
	Capacity  int       `db:"capacity"`
	Committed int       `db:"committed"`
}

// Remaining returns the seats still open for this date.
func (td *TourDate) Remaining() int {
	return td.Capacity - td.Committed
}

// ParseDate parses a YYYY-MM-DD tour date string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
