package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/royalnordicfi/royalnordic/internal/data/entity"

	"github.com/google/uuid"
)

// memLockWait bounds lock acquisition so a commit fails with a retryable
// error instead of hanging, mirroring the Postgres lock_timeout.
const memLockWait = 2 * time.Second

// MemoryAvailabilityRepository keeps the ledger in process memory. Commits
// for the same (tour, date) serialize on a per-key semaphore; different keys
// never contend, so there is no global lock on the hot path.
type MemoryAvailabilityRepository struct {
	mu    sync.Mutex // guards the two maps only, never held while waiting
	dates map[string]*entity.TourDate
	locks map[string]chan struct{}

	// lockWait is memLockWait in production; tests shorten it.
	lockWait time.Duration
}

func NewMemoryAvailabilityRepository() *MemoryAvailabilityRepository {
	return &MemoryAvailabilityRepository{
		dates:    make(map[string]*entity.TourDate),
		locks:    make(map[string]chan struct{}),
		lockWait: memLockWait,
	}
}

func dateKey(tourID uuid.UUID, date string) string {
	return tourID.String() + "/" + date
}

// acquire takes the per-key semaphore within the wait bound. The returned
// func releases it.
func (r *MemoryAvailabilityRepository) acquire(ctx context.Context, key string) (func(), error) {
	r.mu.Lock()
	sem, ok := r.locks[key]
	if !ok {
		sem = make(chan struct{}, 1)
		r.locks[key] = sem
	}
	r.mu.Unlock()

	timer := time.NewTimer(r.lockWait)
	defer timer.Stop()

	select {
	case sem <- struct{}{}:
		return func() { <-sem }, nil
	case <-timer.C:
		return nil, entity.ErrContentionTimeout
	case <-ctx.Done():
		return nil, fmt.Errorf("acquire date lock: %w", ctx.Err())
	}
}

func (r *MemoryAvailabilityRepository) get(tourID uuid.UUID, date string) *entity.TourDate {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dates[dateKey(tourID, date)]
}

func (r *MemoryAvailabilityRepository) put(td *entity.TourDate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dates[dateKey(td.TourID, td.Date)] = td
}

func (r *MemoryAvailabilityRepository) Find(ctx context.Context, tourID uuid.UUID, date string) (*entity.TourDate, error) {
	td := r.get(tourID, date)
	if td == nil {
		return nil, nil
	}
	cp := *td
	return &cp, nil
}

func (r *MemoryAvailabilityRepository) FindRange(ctx context.Context, tourID uuid.UUID, startDate, endDate string) ([]entity.TourDate, error) {
	r.mu.Lock()
	var dates []entity.TourDate
	for _, td := range r.dates {
		if td.TourID == tourID && td.Date >= startDate && td.Date <= endDate {
			dates = append(dates, *td)
		}
	}
	r.mu.Unlock()

	sort.Slice(dates, func(i, j int) bool { return dates[i].Date < dates[j].Date })
	return dates, nil
}

func (r *MemoryAvailabilityRepository) SetCapacity(ctx context.Context, tourID uuid.UUID, date string, capacity int) error {
	release, err := r.acquire(ctx, dateKey(tourID, date))
	if err != nil {
		return err
	}
	defer release()

	td := r.get(tourID, date)
	if td == nil {
		r.put(&entity.TourDate{TourID: tourID, Date: date, Capacity: capacity})
		return nil
	}

	if capacity < td.Committed {
		return fmt.Errorf("set capacity to %d with %d seats committed: %w",
			capacity, td.Committed, entity.ErrCapacityBelowCommitted)
	}

	cp := *td
	cp.Capacity = capacity
	r.put(&cp)
	return nil
}

func (r *MemoryAvailabilityRepository) TryCommit(ctx context.Context, tourID uuid.UUID, date string, seats, defaultCapacity int) error {
	release, err := r.acquire(ctx, dateKey(tourID, date))
	if err != nil {
		return err
	}
	defer release()

	td := r.get(tourID, date)
	if td == nil {
		td = &entity.TourDate{TourID: tourID, Date: date, Capacity: defaultCapacity}
	}

	if td.Committed+seats > td.Capacity {
		return &entity.InsufficientCapacityError{Requested: seats, Remaining: td.Remaining()}
	}

	cp := *td
	cp.Committed += seats
	r.put(&cp)
	return nil
}

func (r *MemoryAvailabilityRepository) Release(ctx context.Context, tourID uuid.UUID, date string, seats int) error {
	release, err := r.acquire(ctx, dateKey(tourID, date))
	if err != nil {
		return err
	}
	defer release()

	td := r.get(tourID, date)
	if td == nil {
		return nil
	}

	cp := *td
	cp.Committed -= seats
	if cp.Committed < 0 {
		cp.Committed = 0
	}
	r.put(&cp)
	return nil
}
