package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/royalnordicfi/royalnordic/internal/data/entity"
	"github.com/royalnordicfi/royalnordic/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// TourRepository reads the tour catalog. The booking subsystem never mutates
// tours apart from seeding defaults on an empty database.
type TourRepository interface {
	Create(ctx context.Context, tour *entity.Tour) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Tour, error)
	FindAll(ctx context.Context) ([]*entity.Tour, error)
	Count(ctx context.Context) (int64, error)
}

type tourRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTourRepository(db database.PgxIface, log *zap.Logger) TourRepository {
	return &tourRepository{
		db:  db,
		log: log.With(zap.String("repository", "tour")),
	}
}

const tourColumns = `id, name, description, adult_price, child_price, max_capacity, season_start, season_end, created_at, updated_at`

func (r *tourRepository) Create(ctx context.Context, tour *entity.Tour) error {
	query := `
		INSERT INTO tours (` + tourColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		tour.ID,
		tour.Name,
		tour.Description,
		tour.AdultPrice,
		tour.ChildPrice,
		tour.MaxCapacity,
		tour.SeasonStart,
		tour.SeasonEnd,
		tour.CreatedAt,
		tour.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create tour",
			zap.Error(err),
			zap.String("name", tour.Name),
		)
		return fmt.Errorf("create tour %s: %w", tour.Name, err)
	}

	return nil
}

func (r *tourRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tour, error) {
	query := `SELECT ` + tourColumns + ` FROM tours WHERE id = $1`

	var tour entity.Tour
	err := r.db.QueryRow(ctx, query, id).Scan(
		&tour.ID,
		&tour.Name,
		&tour.Description,
		&tour.AdultPrice,
		&tour.ChildPrice,
		&tour.MaxCapacity,
		&tour.SeasonStart,
		&tour.SeasonEnd,
		&tour.CreatedAt,
		&tour.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("tour %s: %w", id.String(), entity.ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to find tour by ID",
			zap.Error(err),
			zap.String("tour_id", id.String()),
		)
		return nil, fmt.Errorf("find tour by ID %s: %w", id.String(), err)
	}

	return &tour, nil
}

func (r *tourRepository) FindAll(ctx context.Context) ([]*entity.Tour, error) {
	query := `SELECT ` + tourColumns + ` FROM tours ORDER BY created_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find tours", zap.Error(err))
		return nil, fmt.Errorf("find tours: %w", err)
	}
	defer rows.Close()

	var tours []*entity.Tour
	for rows.Next() {
		var tour entity.Tour
		err := rows.Scan(
			&tour.ID,
			&tour.Name,
			&tour.Description,
			&tour.AdultPrice,
			&tour.ChildPrice,
			&tour.MaxCapacity,
			&tour.SeasonStart,
			&tour.SeasonEnd,
			&tour.CreatedAt,
			&tour.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan tour row: %w", err)
		}
		tours = append(tours, &tour)
	}

	return tours, rows.Err()
}

func (r *tourRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tours`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count tours: %w", err)
	}
	return count, nil
}
