package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/royalnordicfi/royalnordic/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLedgerLazyRowTakesDefaultCapacity(t *testing.T) {
	repo := NewMemoryAvailabilityRepository()
	ctx := context.Background()
	tourID := uuid.New()

	require.NoError(t, repo.TryCommit(ctx, tourID, "2026-02-01", 3, 8))

	td, err := repo.Find(ctx, tourID, "2026-02-01")
	require.NoError(t, err)
	require.NotNil(t, td)
	assert.Equal(t, 8, td.Capacity)
	assert.Equal(t, 3, td.Committed)
	assert.Equal(t, 5, td.Remaining())
}

func TestMemoryLedgerUnseenDateIsNil(t *testing.T) {
	repo := NewMemoryAvailabilityRepository()

	td, err := repo.Find(context.Background(), uuid.New(), "2026-02-01")
	require.NoError(t, err)
	assert.Nil(t, td)
}

func TestMemoryLedgerRejectsOvercommitWithRemainingCount(t *testing.T) {
	repo := NewMemoryAvailabilityRepository()
	ctx := context.Background()
	tourID := uuid.New()

	require.NoError(t, repo.TryCommit(ctx, tourID, "2026-02-01", 6, 8))

	err := repo.TryCommit(ctx, tourID, "2026-02-01", 3, 8)
	var insufficient *entity.InsufficientCapacityError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 3, insufficient.Requested)
	assert.Equal(t, 2, insufficient.Remaining)
	assert.Contains(t, err.Error(), "only 2 seats remaining")

	// The failed attempt must not have consumed anything.
	td, err := repo.Find(ctx, tourID, "2026-02-01")
	require.NoError(t, err)
	assert.Equal(t, 6, td.Committed)
}

func TestMemoryLedgerConcurrentCommitsNeverOversell(t *testing.T) {
	repo := NewMemoryAvailabilityRepository()
	ctx := context.Background()
	tourID := uuid.New()

	const capacity = 10
	const attempts = 40

	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- repo.TryCommit(ctx, tourID, "2026-02-01", 1, capacity)
		}()
	}
	wg.Wait()
	close(results)

	granted := 0
	for err := range results {
		if err == nil {
			granted++
			continue
		}
		var insufficient *entity.InsufficientCapacityError
		require.ErrorAs(t, err, &insufficient)
	}
	assert.Equal(t, capacity, granted)

	td, err := repo.Find(ctx, tourID, "2026-02-01")
	require.NoError(t, err)
	assert.Equal(t, capacity, td.Committed)
}

func TestMemoryLedgerContendedDateTimesOut(t *testing.T) {
	repo := NewMemoryAvailabilityRepository()
	repo.lockWait = 20 * time.Millisecond
	ctx := context.Background()
	tourID := uuid.New()

	// Hold the date's lock so the commit below cannot acquire it.
	release, err := repo.acquire(ctx, dateKey(tourID, "2026-02-01"))
	require.NoError(t, err)

	err = repo.TryCommit(ctx, tourID, "2026-02-01", 1, 8)
	assert.True(t, errors.Is(err, entity.ErrContentionTimeout))

	// Other dates are independent locks.
	require.NoError(t, repo.TryCommit(ctx, tourID, "2026-02-02", 1, 8))

	release()
	require.NoError(t, repo.TryCommit(ctx, tourID, "2026-02-01", 1, 8))
}

func TestMemoryLedgerReleaseFloorsAtZero(t *testing.T) {
	repo := NewMemoryAvailabilityRepository()
	ctx := context.Background()
	tourID := uuid.New()

	require.NoError(t, repo.TryCommit(ctx, tourID, "2026-02-01", 2, 8))
	require.NoError(t, repo.Release(ctx, tourID, "2026-02-01", 5))

	td, err := repo.Find(ctx, tourID, "2026-02-01")
	require.NoError(t, err)
	assert.Equal(t, 0, td.Committed)
}

func TestMemoryLedgerReleaseOnUnseenDateIsNoop(t *testing.T) {
	repo := NewMemoryAvailabilityRepository()
	require.NoError(t, repo.Release(context.Background(), uuid.New(), "2026-02-01", 4))
}

func TestMemoryLedgerSetCapacityBelowCommittedRejected(t *testing.T) {
	repo := NewMemoryAvailabilityRepository()
	ctx := context.Background()
	tourID := uuid.New()

	require.NoError(t, repo.TryCommit(ctx, tourID, "2026-02-01", 5, 8))

	err := repo.SetCapacity(ctx, tourID, "2026-02-01", 3)
	assert.True(t, errors.Is(err, entity.ErrCapacityBelowCommitted))

	// Committed seats are untouched by the failed edit.
	td, findErr := repo.Find(ctx, tourID, "2026-02-01")
	require.NoError(t, findErr)
	assert.Equal(t, 8, td.Capacity)
	assert.Equal(t, 5, td.Committed)
}

func TestMemoryLedgerSetCapacityKeepsCommitted(t *testing.T) {
	repo := NewMemoryAvailabilityRepository()
	ctx := context.Background()
	tourID := uuid.New()

	require.NoError(t, repo.TryCommit(ctx, tourID, "2026-02-01", 5, 8))
	require.NoError(t, repo.SetCapacity(ctx, tourID, "2026-02-01", 12))

	td, err := repo.Find(ctx, tourID, "2026-02-01")
	require.NoError(t, err)
	assert.Equal(t, 12, td.Capacity)
	assert.Equal(t, 5, td.Committed)
}

func TestMemoryLedgerFindRangeSortedWithinBounds(t *testing.T) {
	repo := NewMemoryAvailabilityRepository()
	ctx := context.Background()
	tourID := uuid.New()
	other := uuid.New()

	for _, date := range []string{"2026-02-03", "2026-02-01", "2026-02-02", "2026-03-01"} {
		require.NoError(t, repo.SetCapacity(ctx, tourID, date, 8))
	}
	require.NoError(t, repo.SetCapacity(ctx, other, "2026-02-02", 8))

	dates, err := repo.FindRange(ctx, tourID, "2026-02-01", "2026-02-28")
	require.NoError(t, err)
	require.Len(t, dates, 3)
	assert.Equal(t, "2026-02-01", dates[0].Date)
	assert.Equal(t, "2026-02-02", dates[1].Date)
	assert.Equal(t, "2026-02-03", dates[2].Date)
}
