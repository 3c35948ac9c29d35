package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/royalnordicfi/royalnordic/internal/data/entity"

	"github.com/google/uuid"
)

// In-process repositories backing the "memory" driver and the unit tests.
// They implement the same contracts as the Postgres repositories, including
// the guarded status transition.

type MemoryTourRepository struct {
	mu    sync.RWMutex
	tours map[uuid.UUID]*entity.Tour
	order []uuid.UUID
}

func NewMemoryTourRepository() *MemoryTourRepository {
	return &MemoryTourRepository{tours: make(map[uuid.UUID]*entity.Tour)}
}

func (r *MemoryTourRepository) Create(ctx context.Context, tour *entity.Tour) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *tour
	r.tours[tour.ID] = &cp
	r.order = append(r.order, tour.ID)
	return nil
}

func (r *MemoryTourRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tour, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tour, ok := r.tours[id]
	if !ok {
		return nil, fmt.Errorf("tour %s: %w", id.String(), entity.ErrNotFound)
	}
	cp := *tour
	return &cp, nil
}

func (r *MemoryTourRepository) FindAll(ctx context.Context) ([]*entity.Tour, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tours := make([]*entity.Tour, 0, len(r.order))
	for _, id := range r.order {
		cp := *r.tours[id]
		tours = append(tours, &cp)
	}
	return tours, nil
}

func (r *MemoryTourRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.tours)), nil
}

type MemoryBookingRepository struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*entity.Booking

	// CreateErr, when set, makes the next Create fail. Lets tests exercise
	// the reservation engine's seat-release compensation path.
	CreateErr error
}

func NewMemoryBookingRepository() *MemoryBookingRepository {
	return &MemoryBookingRepository{bookings: make(map[uuid.UUID]*entity.Booking)}
}

func (r *MemoryBookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		err := r.CreateErr
		r.CreateErr = nil
		return err
	}
	cp := *booking
	r.bookings[booking.ID] = &cp
	return nil
}

func (r *MemoryBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id.String(), entity.ErrNotFound)
	}
	cp := *booking
	return &cp, nil
}

func (r *MemoryBookingRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	r.mu.Lock()
	all := make([]*entity.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		cp := *b
		all = append(all, &cp)
	}
	r.mu.Unlock()

	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *MemoryBookingRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.bookings)), nil
}

func (r *MemoryBookingRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from []entity.BookingStatus, to entity.BookingStatus, paymentRef string) (bool, error) {
	if !to.IsValid() {
		return false, fmt.Errorf("%w: unknown booking status %s", entity.ErrInvalidInput, to)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[id]
	if !ok {
		return false, nil
	}

	matched := false
	for _, s := range from {
		if booking.Status == s {
			matched = true
			break
		}
	}
	if !matched {
		return false, nil
	}

	booking.Status = to
	if paymentRef != "" {
		booking.PaymentReference = paymentRef
	}
	booking.UpdatedAt = time.Now()
	return true, nil
}

func (r *MemoryBookingRepository) FindPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var expired []*entity.Booking
	for _, b := range r.bookings {
		if b.Status == entity.BookingStatusPending && b.CreatedAt.Before(cutoff) {
			cp := *b
			expired = append(expired, &cp)
		}
	}
	sort.Slice(expired, func(i, j int) bool { return expired[i].CreatedAt.Before(expired[j].CreatedAt) })
	return expired, nil
}

type MemoryAdminRepository struct {
	mu     sync.RWMutex
	admins map[string]*entity.AdminUser
}

func NewMemoryAdminRepository() *MemoryAdminRepository {
	return &MemoryAdminRepository{admins: make(map[string]*entity.AdminUser)}
}

func (r *MemoryAdminRepository) Create(ctx context.Context, admin *entity.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(admin.Email)
	if _, exists := r.admins[key]; exists {
		return fmt.Errorf("admin user %s already exists", admin.Email)
	}
	cp := *admin
	r.admins[key] = &cp
	return nil
}

func (r *MemoryAdminRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.admins)), nil
}

func (r *MemoryAdminRepository) FindByEmail(ctx context.Context, email string) (*entity.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	admin, ok := r.admins[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	cp := *admin
	return &cp, nil
}
