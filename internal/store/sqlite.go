// SQLite-backed intake archive.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "embed"

	_ "github.com/mattn/go-sqlite3"

	"github.com/zhenyakul/ghub-international/internal/catalog"
	"github.com/zhenyakul/ghub-international/internal/models"
)

// DefaultDirPermissions is used when creating the database directory.
const DefaultDirPermissions = 0755

//go:embed migrations_sqlite.sql
var sqliteMigrations string

// SQLiteStore archives intake records in a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if needed creates) the SQLite archive at the
// configured file path and applies migrations.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewSQLiteStore invoked", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("SQLiteStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		slog.Error("Failed to create database directory", "error", err, "dir", dir)
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		slog.Error("Failed to open SQLite connection", "error", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		slog.Error("SQLite ping failed", "error", err)
		return nil, err
	}
	if _, err := db.Exec(sqliteMigrations); err != nil {
		slog.Error("Failed to run SQLite migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("SQLite archive ready", "path", dsn)
	return &SQLiteStore{db: db}, nil
}

// SaveIntake appends one completed intake record.
func (s *SQLiteStore) SaveIntake(rec models.IntakeRecord) error {
	servicesJSON, err := json.Marshal(rec.Services)
	if err != nil {
		return fmt.Errorf("failed to encode services: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO intakes (user_id, language, operator, product_request, services, payment, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.UserID, string(rec.Language), rec.Operator, rec.ProductRequest,
		string(servicesJSON), string(rec.Payment), rec.CompletedAt,
	)
	if err != nil {
		slog.Error("SQLiteStore SaveIntake failed", "error", err, "user", rec.UserID)
		return fmt.Errorf("failed to insert intake for %s: %w", rec.UserID, err)
	}
	slog.Debug("SQLiteStore SaveIntake succeeded", "user", rec.UserID)
	return nil
}

// ListIntakes returns all archived records in insertion order.
func (s *SQLiteStore) ListIntakes() ([]models.IntakeRecord, error) {
	rows, err := s.db.Query(
		`SELECT user_id, language, operator, product_request, services, payment, completed_at
		 FROM intakes ORDER BY id`)
	if err != nil {
		slog.Error("SQLiteStore ListIntakes query failed", "error", err)
		return nil, fmt.Errorf("failed to query intakes: %w", err)
	}
	defer rows.Close()

	var records []models.IntakeRecord
	for rows.Next() {
		rec, err := scanIntake(rows)
		if err != nil {
			slog.Error("SQLiteStore ListIntakes scan failed", "error", err)
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate intake rows: %w", err)
	}
	slog.Debug("SQLiteStore ListIntakes succeeded", "count", len(records))
	return records, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// scanIntake decodes one archive row shared by the SQL backends.
func scanIntake(rows *sql.Rows) (models.IntakeRecord, error) {
	var rec models.IntakeRecord
	var language, payment, servicesJSON string
	var completedAt time.Time
	if err := rows.Scan(&rec.UserID, &language, &rec.Operator, &rec.ProductRequest,
		&servicesJSON, &payment, &completedAt); err != nil {
		return rec, fmt.Errorf("scan intake failed: %w", err)
	}
	rec.Language = catalog.Language(language)
	rec.Payment = catalog.PaymentID(payment)
	rec.CompletedAt = completedAt
	if servicesJSON != "" {
		if err := json.Unmarshal([]byte(servicesJSON), &rec.Services); err != nil {
			return rec, fmt.Errorf("decode services failed: %w", err)
		}
	}
	return rec, nil
}
