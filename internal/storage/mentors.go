package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/itjamaat/jamaatbot/internal/models"
)

// CreateMentor inserts an active mentor and returns its id.
func (s *Store) CreateMentor(ctx context.Context, m *models.Mentor) (int64, error) {
	var id int64
	err := s.db.GetContext(ctx, &id,
		`INSERT INTO mentors (name, bio, specialization, contact_info, is_active)
		 VALUES ($1, $2, $3, $4, TRUE)
		 RETURNING id`,
		m.Name, m.Bio, m.Specialization, m.ContactInfo)
	if err != nil {
		return 0, fmt.Errorf("insert mentor: %w", err)
	}
	return id, nil
}

// ActiveMentors lists active mentors ordered by name for stable menus.
func (s *Store) ActiveMentors(ctx context.Context) ([]models.Mentor, error) {
	var mentors []models.Mentor
	err := s.db.SelectContext(ctx, &mentors,
		`SELECT id, name, bio, specialization, contact_info, is_active
		 FROM mentors WHERE is_active ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("select mentors: %w", err)
	}
	return mentors, nil
}

// GetMentor loads a mentor row regardless of its active flag, so historical
// references stay resolvable after deactivation.
func (s *Store) GetMentor(ctx context.Context, id int64) (*models.Mentor, error) {
	var m models.Mentor
	err := s.db.GetContext(ctx, &m,
		`SELECT id, name, bio, specialization, contact_info, is_active
		 FROM mentors WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get mentor: %w", err)
	}
	return &m, nil
}

// DeactivateMentor soft-deletes a mentor. Affecting no active row reports
// ErrNotFound so a concurrent delete surfaces to the caller.
func (s *Store) DeactivateMentor(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE mentors SET is_active = FALSE WHERE id = $1 AND is_active`, id)
	if err != nil {
		return fmt.Errorf("deactivate mentor: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountActiveMentors returns the number of active mentors.
func (s *Store) CountActiveMentors(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM mentors WHERE is_active`); err != nil {
		return 0, fmt.Errorf("count mentors: %w", err)
	}
	return n, nil
}
