package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/royalnordicfi/royalnordic/internal/data/entity"
	"github.com/royalnordicfi/royalnordic/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// AvailabilityRepository is the durable ledger of per-(tour, date) capacity
// and committed seat counts. TryCommit is the correctness primitive: under
// concurrent callers for the same key, the check and the increment happen as
// one serialized step, so contested seats can never be granted twice.
type AvailabilityRepository interface {
	// Find returns the ledger row for a date, or nil if the date has never
	// been touched (unseen dates are treated as fully open by the caller).
	Find(ctx context.Context, tourID uuid.UUID, date string) (*entity.TourDate, error)

	// FindRange returns existing ledger rows for dates in [startDate, endDate],
	// ordered by date.
	FindRange(ctx context.Context, tourID uuid.UUID, startDate, endDate string) ([]entity.TourDate, error)

	// SetCapacity sets a date's capacity, creating the row if needed. It
	// fails with entity.ErrCapacityBelowCommitted rather than dropping
	// capacity under seats already committed; it never touches committed.
	SetCapacity(ctx context.Context, tourID uuid.UUID, date string, capacity int) error

	// TryCommit atomically checks committed+seats <= capacity and increments
	// committed, lazily creating the row with defaultCapacity. On shortfall
	// it returns *entity.InsufficientCapacityError with the actual remaining
	// count; on lock contention beyond the deadline, entity.ErrContentionTimeout.
	TryCommit(ctx context.Context, tourID uuid.UUID, date string, seats, defaultCapacity int) error

	// Release returns seats to the pool, flooring committed at 0 so a retried
	// cancellation can never underflow the counter.
	Release(ctx context.Context, tourID uuid.UUID, date string, seats int) error
}

// pg lock_timeout expiry
const pgLockNotAvailable = "55P03"

// lockTimeout bounds how long a commit may wait on a contended row before
// failing with a retryable error instead of hanging.
const lockTimeout = "2000ms"

type availabilityRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAvailabilityRepository(db database.PgxIface, log *zap.Logger) AvailabilityRepository {
	return &availabilityRepository{
		db:  db,
		log: log.With(zap.String("repository", "availability")),
	}
}

func (r *availabilityRepository) Find(ctx context.Context, tourID uuid.UUID, date string) (*entity.TourDate, error) {
	query := `
		SELECT tour_id, date, capacity, committed
		FROM tour_dates
		WHERE tour_id = $1 AND date = $2
	`

	var td entity.TourDate
	err := r.db.QueryRow(ctx, query, tourID, date).Scan(&td.TourID, &td.Date, &td.Capacity, &td.Committed)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find tour date",
			zap.Error(err),
			zap.String("tour_id", tourID.String()),
			zap.String("date", date),
		)
		return nil, fmt.Errorf("find tour date %s/%s: %w", tourID.String(), date, err)
	}

	return &td, nil
}

func (r *availabilityRepository) FindRange(ctx context.Context, tourID uuid.UUID, startDate, endDate string) ([]entity.TourDate, error) {
	query := `
		SELECT tour_id, date, capacity, committed
		FROM tour_dates
		WHERE tour_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := r.db.Query(ctx, query, tourID, startDate, endDate)
	if err != nil {
		r.log.Error("Failed to find tour dates in range",
			zap.Error(err),
			zap.String("tour_id", tourID.String()),
			zap.String("start_date", startDate),
			zap.String("end_date", endDate),
		)
		return nil, fmt.Errorf("find tour dates %s in [%s, %s]: %w", tourID.String(), startDate, endDate, err)
	}
	defer rows.Close()

	var dates []entity.TourDate
	for rows.Next() {
		var td entity.TourDate
		if err := rows.Scan(&td.TourID, &td.Date, &td.Capacity, &td.Committed); err != nil {
			return nil, fmt.Errorf("scan tour date row: %w", err)
		}
		dates = append(dates, td)
	}

	return dates, rows.Err()
}

func (r *availabilityRepository) SetCapacity(ctx context.Context, tourID uuid.UUID, date string, capacity int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin set capacity: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "SET LOCAL lock_timeout = '"+lockTimeout+"'"); err != nil {
		return fmt.Errorf("set lock timeout: %w", err)
	}

	// Lazy create: an unseen date simply takes the requested capacity.
	tag, err := tx.Exec(ctx, `
		INSERT INTO tour_dates (tour_id, date, capacity, committed)
		VALUES ($1, $2, $3, 0)
		ON CONFLICT (tour_id, date) DO NOTHING
	`, tourID, date, capacity)
	if err != nil {
		return r.mapLockErr(err, "insert tour date")
	}

	if tag.RowsAffected() == 0 {
		// Row exists: lock it and validate against committed. Capacity edits
		// never reset committed; they are rejected when they would break the
		// committed <= capacity invariant.
		var committed int
		err = tx.QueryRow(ctx, `
			SELECT committed FROM tour_dates
			WHERE tour_id = $1 AND date = $2
			FOR UPDATE
		`, tourID, date).Scan(&committed)
		if err != nil {
			return r.mapLockErr(err, "lock tour date")
		}

		if capacity < committed {
			return fmt.Errorf("set capacity to %d with %d seats committed: %w",
				capacity, committed, entity.ErrCapacityBelowCommitted)
		}

		if _, err := tx.Exec(ctx, `
			UPDATE tour_dates SET capacity = $3
			WHERE tour_id = $1 AND date = $2
		`, tourID, date, capacity); err != nil {
			return fmt.Errorf("update capacity: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit set capacity: %w", err)
	}

	r.log.Info("Capacity updated",
		zap.String("tour_id", tourID.String()),
		zap.String("date", date),
		zap.Int("capacity", capacity),
	)
	return nil
}

func (r *availabilityRepository) TryCommit(ctx context.Context, tourID uuid.UUID, date string, seats, defaultCapacity int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin commit seats: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "SET LOCAL lock_timeout = '"+lockTimeout+"'"); err != nil {
		return fmt.Errorf("set lock timeout: %w", err)
	}

	// Unseen future dates are fully open at the tour's default capacity.
	if _, err := tx.Exec(ctx, `
		INSERT INTO tour_dates (tour_id, date, capacity, committed)
		VALUES ($1, $2, $3, 0)
		ON CONFLICT (tour_id, date) DO NOTHING
	`, tourID, date, defaultCapacity); err != nil {
		return r.mapLockErr(err, "insert tour date")
	}

	// The row lock serializes concurrent commits per (tour, date); commits
	// against other dates and tours proceed independently.
	var capacity, committed int
	err = tx.QueryRow(ctx, `
		SELECT capacity, committed FROM tour_dates
		WHERE tour_id = $1 AND date = $2
		FOR UPDATE
	`, tourID, date).Scan(&capacity, &committed)
	if err != nil {
		return r.mapLockErr(err, "lock tour date")
	}

	if committed+seats > capacity {
		return &entity.InsufficientCapacityError{Requested: seats, Remaining: capacity - committed}
	}

	if _, err := tx.Exec(ctx, `
		UPDATE tour_dates SET committed = committed + $3
		WHERE tour_id = $1 AND date = $2
	`, tourID, date, seats); err != nil {
		return fmt.Errorf("increment committed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit seats: %w", err)
	}

	return nil
}

func (r *availabilityRepository) Release(ctx context.Context, tourID uuid.UUID, date string, seats int) error {
	// GREATEST floors the counter: a double release must never drive
	// committed negative.
	_, err := r.db.Exec(ctx, `
		UPDATE tour_dates SET committed = GREATEST(committed - $3, 0)
		WHERE tour_id = $1 AND date = $2
	`, tourID, date, seats)
	if err != nil {
		r.log.Error("Failed to release seats",
			zap.Error(err),
			zap.String("tour_id", tourID.String()),
			zap.String("date", date),
			zap.Int("seats", seats),
		)
		return fmt.Errorf("release %d seats for %s/%s: %w", seats, tourID.String(), date, err)
	}

	return nil
}

// mapLockErr translates a lock_timeout expiry into the retryable
// entity.ErrContentionTimeout; other errors are wrapped as-is.
func (r *availabilityRepository) mapLockErr(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgLockNotAvailable {
		return entity.ErrContentionTimeout
	}
	return fmt.Errorf("%s: %w", op, err)
}
