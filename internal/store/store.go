// Package store provides archive backends for completed intake records.
//
// Session state is deliberately never persisted; only the final record
// handed to an operator is kept, so the sales team can review past
// requests. Backends: in-memory (default), SQLite, and PostgreSQL.
package store

import (
	"strings"
	"sync"

	"github.com/zhenyakul/ghub-international/internal/models"
)

// Store is the archive contract consumed by the workflow engine.
type Store interface {
	// SaveIntake appends one completed intake record.
	SaveIntake(rec models.IntakeRecord) error
	// ListIntakes returns all archived records in insertion order.
	ListIntakes() ([]models.IntakeRecord, error)
	// Close releases any underlying resources.
	Close() error
}

// Opts holds backend configuration assembled from Options.
type Opts struct {
	DSN string
}

// Option configures a store backend.
type Option func(*Opts)

// WithSQLiteDSN selects a SQLite database file path.
func WithSQLiteDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// WithPostgresDSN selects a PostgreSQL connection string.
func WithPostgresDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// DetectDSNType classifies a DSN as "postgres" or "sqlite". File paths
// are assumed to be SQLite databases.
func DetectDSNType(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		return "postgres"
	}
	return "sqlite"
}

// InMemoryStore is the default archive backend; records vanish with the
// process. It doubles as the test fake across packages.
type InMemoryStore struct {
	mu      sync.Mutex
	records []models.IntakeRecord
}

// NewInMemoryStore creates an empty in-memory archive.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// SaveIntake appends the record.
func (s *InMemoryStore) SaveIntake(rec models.IntakeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

// ListIntakes returns a copy of the archived records.
func (s *InMemoryStore) ListIntakes() ([]models.IntakeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.IntakeRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

// Close is a no-op for the in-memory backend.
func (s *InMemoryStore) Close() error { return nil }
