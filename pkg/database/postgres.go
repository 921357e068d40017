package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/grunt24/grading-api/pkg/config"
)

// DSN renders the lib/pq connection string for cfg.
func DSN(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)
}

// NewPostgres returns a configured PostgreSQL client.
func NewPostgres(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", DSN(cfg))
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	db.SetConnMaxLifetime(1 * time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// schema holds the two configuration tables the calculator reads.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS grade_percentages (
		id TEXT PRIMARY KEY,
		quiz_weighted NUMERIC(5,4) NOT NULL DEFAULT 0,
		class_standing_weighted NUMERIC(5,4) NOT NULL DEFAULT 0,
		sep_weighted NUMERIC(5,4) NOT NULL DEFAULT 0,
		project_weighted NUMERIC(5,4) NOT NULL DEFAULT 0,
		midterm_weighted NUMERIC(5,4) NOT NULL DEFAULT 0,
		finals_weighted NUMERIC(5,4) NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS grade_equivalents (
		id TEXT PRIMARY KEY,
		min_percentage NUMERIC(6,2),
		max_percentage NUMERIC(6,2) NOT NULL,
		grade_point NUMERIC(4,2) NOT NULL,
		description TEXT,
		sort_order INT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_grade_equivalents_sort ON grade_equivalents (sort_order)`,
}

// EnsureSchema creates the grade configuration tables when they are missing.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
