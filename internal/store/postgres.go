// PostgreSQL-backed intake archive.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "embed"

	_ "github.com/lib/pq"

	"github.com/zhenyakul/ghub-international/internal/models"
)

// Connection pool configuration.
const (
	DefaultMaxOpenConns    = 25
	DefaultMaxIdleConns    = 25
	DefaultConnMaxLifetime = 5 * time.Minute
)

//go:embed migrations_postgres.sql
var postgresMigrations string

// PostgresStore archives intake records in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to the configured database and applies
// migrations.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewPostgresStore invoked", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("PostgresStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		slog.Error("Failed to open Postgres connection", "error", err)
		return nil, err
	}
	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetMaxIdleConns(DefaultMaxIdleConns)
	db.SetConnMaxLifetime(DefaultConnMaxLifetime)

	if err := db.Ping(); err != nil {
		slog.Error("Postgres ping failed", "error", err)
		return nil, err
	}
	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("Failed to run Postgres migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("Postgres archive ready")
	return &PostgresStore{db: db}, nil
}

// SaveIntake appends one completed intake record.
func (s *PostgresStore) SaveIntake(rec models.IntakeRecord) error {
	servicesJSON, err := json.Marshal(rec.Services)
	if err != nil {
		return fmt.Errorf("failed to encode services: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO intakes (user_id, language, operator, product_request, services, payment, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.UserID, string(rec.Language), rec.Operator, rec.ProductRequest,
		string(servicesJSON), string(rec.Payment), rec.CompletedAt,
	)
	if err != nil {
		slog.Error("PostgresStore SaveIntake failed", "error", err, "user", rec.UserID)
		return fmt.Errorf("failed to insert intake for %s: %w", rec.UserID, err)
	}
	slog.Debug("PostgresStore SaveIntake succeeded", "user", rec.UserID)
	return nil
}

// ListIntakes returns all archived records in insertion order.
func (s *PostgresStore) ListIntakes() ([]models.IntakeRecord, error) {
	rows, err := s.db.Query(
		`SELECT user_id, language, operator, product_request, services, payment, completed_at
		 FROM intakes ORDER BY id`)
	if err != nil {
		slog.Error("PostgresStore ListIntakes query failed", "error", err)
		return nil, fmt.Errorf("failed to query intakes: %w", err)
	}
	defer rows.Close()

	var records []models.IntakeRecord
	for rows.Next() {
		rec, err := scanIntake(rows)
		if err != nil {
			slog.Error("PostgresStore ListIntakes scan failed", "error", err)
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate intake rows: %w", err)
	}
	slog.Debug("PostgresStore ListIntakes succeeded", "count", len(records))
	return records, nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
