package usecase

import (
	"fmt"
	"time"

	"github.com/royalnordicfi/royalnordic/internal/data/entity"
)

// SeasonPolicy decides whether a calendar date is open for booking a tour.
// "Today" is evaluated in the tour reference timezone, not the caller's, so
// a customer browsing from another continent sees the same cutoff as one in
// Lapland. The clock is injected for tests.
type SeasonPolicy struct {
	loc *time.Location
	now func() time.Time
}

// NewSeasonPolicy builds a policy for the given IANA timezone. A nil now
// defaults to time.Now.
func NewSeasonPolicy(timezone string, now func() time.Time) (*SeasonPolicy, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load booking timezone %s: %w", timezone, err)
	}
	if now == nil {
		now = time.Now
	}
	return &SeasonPolicy{loc: loc, now: now}, nil
}

// IsBookable returns nil when the date can be booked for the tour, or a
// *entity.NotBookableError explaining the rejection. Same-day bookings are
// allowed; only strictly past dates are rejected.
func (p *SeasonPolicy) IsBookable(tour *entity.Tour, date string) error {
	d, err := entity.ParseDate(date)
	if err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", entity.ErrInvalidInput)
	}

	today := p.now().In(p.loc).Format(entity.DateLayout)
	if date < today {
		return &entity.NotBookableError{Date: date, Reason: entity.ReasonPast}
	}

	if tour.HasSeason() && !inSeason(d.Format("01-02"), tour.SeasonStart, tour.SeasonEnd) {
		return &entity.NotBookableError{Date: date, Reason: entity.ReasonOutOfSeason}
	}

	return nil
}

// Today returns the current date in the tour reference timezone.
func (p *SeasonPolicy) Today() string {
	return p.now().In(p.loc).Format(entity.DateLayout)
}

// inSeason checks an MM-DD day against an inclusive MM-DD window. When the
// window wraps the year boundary (start > end, e.g. "10-01".."04-15") the
// day matches either side of the wrap. MM-DD strings compare correctly as
// plain strings.
func inSeason(day, start, end string) bool {
	if start <= end {
		return day >= start && day <= end
	}
	return day >= start || day <= end
}
