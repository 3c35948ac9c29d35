package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/royalnordicfi/royalnordic/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t *testing.T, value string) func() time.Time {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Helsinki")
	require.NoError(t, err)
	ts, err := time.ParseInLocation("2006-01-02 15:04", value, loc)
	require.NoError(t, err)
	return func() time.Time { return ts }
}

func winterTour() *entity.Tour {
	return &entity.Tour{
		Name:        "Northern Lights Tour",
		MaxCapacity: 8,
		SeasonStart: "10-01",
		SeasonEnd:   "04-15",
	}
}

func TestSeasonPolicyRejectsPastDates(t *testing.T) {
	policy, err := NewSeasonPolicy("Europe/Helsinki", fixedClock(t, "2026-01-10 12:00"))
	require.NoError(t, err)

	err = policy.IsBookable(winterTour(), "2026-01-09")
	var nb *entity.NotBookableError
	require.ErrorAs(t, err, &nb)
	assert.Equal(t, entity.ReasonPast, nb.Reason)
	assert.Equal(t, "2026-01-09", nb.Date)
}

func TestSeasonPolicyAllowsSameDay(t *testing.T) {
	policy, err := NewSeasonPolicy("Europe/Helsinki", fixedClock(t, "2026-01-10 23:30"))
	require.NoError(t, err)

	assert.NoError(t, policy.IsBookable(winterTour(), "2026-01-10"))
}

func TestSeasonPolicyEvaluatesTodayInHelsinki(t *testing.T) {
	// 23:30 UTC on Jan 9 is already Jan 10 in Helsinki, so Jan 9 is past.
	utcNow := time.Date(2026, 1, 9, 23, 30, 0, 0, time.UTC)
	policy, err := NewSeasonPolicy("Europe/Helsinki", func() time.Time { return utcNow })
	require.NoError(t, err)

	err = policy.IsBookable(winterTour(), "2026-01-09")
	var nb *entity.NotBookableError
	require.ErrorAs(t, err, &nb)
	assert.Equal(t, entity.ReasonPast, nb.Reason)
}

func TestSeasonPolicyWindowWrapsYearBoundary(t *testing.T) {
	policy, err := NewSeasonPolicy("Europe/Helsinki", fixedClock(t, "2026-01-10 12:00"))
	require.NoError(t, err)
	tour := winterTour()

	// Inside the wrap on both sides of new year.
	assert.NoError(t, policy.IsBookable(tour, "2026-02-15"))
	assert.NoError(t, policy.IsBookable(tour, "2026-04-15"))
	assert.NoError(t, policy.IsBookable(tour, "2026-10-01"))
	assert.NoError(t, policy.IsBookable(tour, "2026-12-31"))

	// Summer gap.
	for _, date := range []string{"2026-04-16", "2026-07-01", "2026-09-30"} {
		err := policy.IsBookable(tour, date)
		var nb *entity.NotBookableError
		require.ErrorAs(t, err, &nb, "date %s", date)
		assert.Equal(t, entity.ReasonOutOfSeason, nb.Reason, "date %s", date)
	}
}

func TestSeasonPolicyBoundaryOfNovemberWindow(t *testing.T) {
	policy, err := NewSeasonPolicy("Europe/Helsinki", fixedClock(t, "2026-10-15 12:00"))
	require.NoError(t, err)

	rental := &entity.Tour{
		Name:        "Snowshoe Rental",
		MaxCapacity: 6,
		SeasonStart: "11-01",
		SeasonEnd:   "04-15",
	}

	err = policy.IsBookable(rental, "2026-10-31")
	var nb *entity.NotBookableError
	require.ErrorAs(t, err, &nb)
	assert.Equal(t, entity.ReasonOutOfSeason, nb.Reason)

	assert.NoError(t, policy.IsBookable(rental, "2026-11-01"))
}

func TestSeasonPolicyTourWithoutSeasonAlwaysOpen(t *testing.T) {
	policy, err := NewSeasonPolicy("Europe/Helsinki", fixedClock(t, "2026-01-10 12:00"))
	require.NoError(t, err)

	tour := &entity.Tour{Name: "Husky Farm Visit", MaxCapacity: 12}
	assert.NoError(t, policy.IsBookable(tour, "2026-07-15"))
}

func TestSeasonPolicyRejectsMalformedDate(t *testing.T) {
	policy, err := NewSeasonPolicy("Europe/Helsinki", fixedClock(t, "2026-01-10 12:00"))
	require.NoError(t, err)

	err = policy.IsBookable(winterTour(), "15.01.2026")
	assert.True(t, errors.Is(err, entity.ErrInvalidInput))
}

func TestSeasonPolicyUnknownTimezone(t *testing.T) {
	_, err := NewSeasonPolicy("Mars/Olympus", nil)
	assert.Error(t, err)
}
