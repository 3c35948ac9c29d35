package database

import (
	"context"
	"fmt"
)

// schema mirrors the deployed migrations; applied idempotently on startup so
// a fresh database is usable without a separate migration step.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS tours (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		adult_price DOUBLE PRECISION NOT NULL,
		child_price DOUBLE PRECISION NOT NULL,
		max_capacity INTEGER NOT NULL CHECK (max_capacity >= 1),
		season_start TEXT NOT NULL DEFAULT '',
		season_end TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tour_dates (
		tour_id UUID NOT NULL REFERENCES tours (id),
		date TEXT NOT NULL,
		capacity INTEGER NOT NULL CHECK (capacity >= 0),
		committed INTEGER NOT NULL DEFAULT 0 CHECK (committed >= 0 AND committed <= capacity),
		PRIMARY KEY (tour_id, date)
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id UUID PRIMARY KEY,
		order_id TEXT NOT NULL UNIQUE,
		tour_id UUID NOT NULL REFERENCES tours (id),
		date TEXT NOT NULL,
		customer_name TEXT NOT NULL,
		customer_email TEXT NOT NULL,
		customer_phone TEXT NOT NULL DEFAULT '',
		adults INTEGER NOT NULL CHECK (adults >= 0),
		children INTEGER NOT NULL CHECK (children >= 0),
		total_price DOUBLE PRECISION NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		payment_reference TEXT NOT NULL DEFAULT '',
		special_requests TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		CHECK (adults + children >= 1)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_status_created ON bookings (status, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_tour_date ON bookings (tour_id, date)`,
	`CREATE TABLE IF NOT EXISTS admin_users (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		secure_key_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
}

// EnsureSchema creates missing tables and indexes.
func EnsureSchema(ctx context.Context, db PgxIface) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}
	return nil
}
