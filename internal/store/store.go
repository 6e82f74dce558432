// Package store provides an optional PostgreSQL mirror of application
// records. Rows carry a 24-hour retention window so reruns within a day can
// see what was already handled without the table growing unbounded.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/swapnil/naukri-auto-apply/internal/types"
)

// RecordTTL is how long a mirrored record stays visible.
const RecordTTL = 24 * time.Hour

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// SaveRecord upserts one application record keyed by the posting link.
// Re-processing a job within the retention window refreshes the row.
func (db *DB) SaveRecord(ctx context.Context, rec types.ApplicationRecord) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO application_records
		     (link, title, company, location, status, reason, applied_at, match_percentage, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		 ON CONFLICT (link) DO UPDATE SET
		     status = $5, reason = $6, applied_at = $7, match_percentage = $8, created_at = NOW()`,
		rec.Link, rec.Title, rec.Company, rec.Location,
		string(rec.Status), rec.Reason, rec.AppliedAt, rec.MatchPercentage,
	)
	if err != nil {
		return fmt.Errorf("failed to save record for %s: %w", rec.Link, err)
	}
	return nil
}

// SaveBatch mirrors every record of the batch. The first failure aborts;
// the mirror is advisory and the batch result is already persisted as
// artifacts by then.
func (db *DB) SaveBatch(ctx context.Context, report types.BatchReport) error {
	for _, rec := range report.Applied {
		if err := db.SaveRecord(ctx, rec); err != nil {
			return err
		}
	}
	for _, rec := range report.Skipped {
		if err := db.SaveRecord(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

// GetRecord looks up a non-expired record by posting link.
func (db *DB) GetRecord(ctx context.Context, link string) (*types.ApplicationRecord, error) {
	var rec types.ApplicationRecord
	var status string
	err := db.pool.QueryRow(ctx,
		`SELECT link, title, company, location, status, reason, applied_at, match_percentage
		 FROM application_records
		 WHERE link = $1 AND created_at > NOW() - $2::interval`,
		link, RecordTTL.String(),
	).Scan(&rec.Link, &rec.Title, &rec.Company, &rec.Location, &status, &rec.Reason, &rec.AppliedAt, &rec.MatchPercentage)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get record for %s: %w", link, err)
	}
	rec.Status = types.Status(status)
	return &rec, nil
}

// PurgeExpired deletes rows older than the retention window and returns
// how many were removed.
func (db *DB) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM application_records WHERE created_at <= NOW() - $1::interval`,
		RecordTTL.String(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired records: %w", err)
	}
	return tag.RowsAffected(), nil
}

// EnsureSchema creates the mirror table when it does not exist.
func (db *DB) EnsureSchema(ctx context.Context) error {
	_, err := db.pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS application_records (
		     link TEXT PRIMARY KEY,
		     title TEXT NOT NULL,
		     company TEXT NOT NULL,
		     location TEXT,
		     status TEXT NOT NULL,
		     reason TEXT,
		     applied_at TEXT,
		     match_percentage DOUBLE PRECISION,
		     created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		 )`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
