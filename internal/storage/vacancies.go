package storage

import (
	"context"
	"fmt"

	"github.com/itjamaat/jamaatbot/internal/models"
)

// ActiveVacancies lists active vacancies, newest posting first.
func (s *Store) ActiveVacancies(ctx context.Context, limit int) ([]models.Vacancy, error) {
	if !s.configured("vacancies") {
		return nil, ErrNotConfigured
	}

	var vacancies []models.Vacancy
	err := s.db.SelectContext(ctx, &vacancies,
		`SELECT id, title, company, description, requirements, salary_range,
		        location, contact_info, is_active, posted_at, posted_by
		 FROM vacancies
		 WHERE is_active
		 ORDER BY posted_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("select vacancies: %w", err)
	}
	return vacancies, nil
}

// CountActiveVacancies returns the number of active vacancies.
func (s *Store) CountActiveVacancies(ctx context.Context) (int, error) {
	if !s.configured("vacancies") {
		return 0, ErrNotConfigured
	}
	var n int
	if err := s.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM vacancies WHERE is_active`); err != nil {
		return 0, fmt.Errorf("count vacancies: %w", err)
	}
	return n, nil
}
