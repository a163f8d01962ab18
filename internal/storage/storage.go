// Package storage implements the entity store and read-model queries over
// PostgreSQL via sqlx.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var (
	// ErrNotFound reports that the referenced row does not exist or is no
	// longer active.
	ErrNotFound = errors.New("storage: not found")

	// ErrNotConfigured reports that an optional sub-resource table is absent
	// from the schema. Callers reading aggregate metrics treat it as zero.
	ErrNotConfigured = errors.New("storage: sub-resource not configured")
)

// Store is the sqlx-backed repository used by all bot operations.
type Store struct {
	db *sqlx.DB

	// optional sub-resource presence, resolved once by Probe.
	tables map[string]bool
}

// NewStore wraps an open database handle.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// optionalTables are the sub-resources the statistics view tolerates missing.
var optionalTables = []string{"lectures", "vacancies", "projects"}

// Probe checks schema presence of optional tables. It must run once before
// the store serves statistics requests.
func (s *Store) Probe(ctx context.Context) error {
	present := make(map[string]bool, len(optionalTables))
	for _, name := range optionalTables {
		var ok bool
		err := s.db.GetContext(ctx, &ok,
			`SELECT EXISTS (
			     SELECT 1 FROM information_schema.tables
			     WHERE table_schema = current_schema() AND table_name = $1
			 )`, name)
		if err != nil {
			return fmt.Errorf("probe table %s: %w", name, err)
		}
		present[name] = ok
	}
	s.tables = present
	return nil
}

// configured reports whether an optional table is available. A store that was
// never probed assumes full schema, matching the migration-managed default.
func (s *Store) configured(table string) bool {
	if s.tables == nil {
		return true
	}
	return s.tables[table]
}
