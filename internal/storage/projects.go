package storage

import (
	"context"
	"fmt"

	"github.com/itjamaat/jamaatbot/internal/models"
)

// ActiveProjects lists active projects, newest first.
func (s *Store) ActiveProjects(ctx context.Context, limit int) ([]models.Project, error) {
	if !s.configured("projects") {
		return nil, ErrNotConfigured
	}

	var projects []models.Project
	err := s.db.SelectContext(ctx, &projects,
		`SELECT id, title, description, status, required_skills,
		        contact_person, is_active, created_at
		 FROM projects
		 WHERE is_active
		 ORDER BY created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("select projects: %w", err)
	}
	return projects, nil
}

// ProjectStatusCounts returns the active project total and the per-status
// breakdown. Statuses outside the known set land in their stored value and
// are folded into the unknown bucket by the caller.
func (s *Store) ProjectStatusCounts(ctx context.Context) (total int, byStatus map[string]int, err error) {
	if !s.configured("projects") {
		return 0, nil, ErrNotConfigured
	}

	rows := []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}{}
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT status, COUNT(*) AS count
		 FROM projects WHERE is_active GROUP BY status`); err != nil {
		return 0, nil, fmt.Errorf("count projects: %w", err)
	}

	byStatus = make(map[string]int, len(rows))
	for _, r := range rows {
		byStatus[r.Status] += r.Count
		total += r.Count
	}
	return total, byStatus, nil
}
