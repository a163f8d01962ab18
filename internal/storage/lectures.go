package storage

import (
	"context"
	"fmt"

	"github.com/itjamaat/jamaatbot/internal/models"
)

// LecturesByCategory lists lectures for an exact category match, or every
// lecture when category is CategoryAll. Newest uploads come first.
func (s *Store) LecturesByCategory(ctx context.Context, category models.LectureCategory, limit int) ([]models.Lecture, error) {
	if !s.configured("lectures") {
		return nil, ErrNotConfigured
	}

	const columns = `
		l.id, l.title, l.description, l.category, l.mentor_id, l.file_path,
		l.video_url, l.duration_minutes, l.uploaded_at, l.uploaded_by,
		m.name AS mentor_name`

	var lectures []models.Lecture
	var err error
	if category == models.CategoryAll {
		err = s.db.SelectContext(ctx, &lectures,
			`SELECT`+columns+`
			 FROM lectures l
			 LEFT JOIN mentors m ON m.id = l.mentor_id
			 ORDER BY l.uploaded_at DESC
			 LIMIT $1`, limit)
	} else {
		err = s.db.SelectContext(ctx, &lectures,
			`SELECT`+columns+`
			 FROM lectures l
			 LEFT JOIN mentors m ON m.id = l.mentor_id
			 WHERE l.category = $1
			 ORDER BY l.uploaded_at DESC
			 LIMIT $2`, string(category), limit)
	}
	if err != nil {
		return nil, fmt.Errorf("select lectures: %w", err)
	}
	return lectures, nil
}

// LectureCategoryCounts returns the total lecture count and per-category
// breakdown in one pass.
func (s *Store) LectureCategoryCounts(ctx context.Context) (total int, byCategory map[string]int, err error) {
	if !s.configured("lectures") {
		return 0, nil, ErrNotConfigured
	}

	rows := []struct {
		Category string `db:"category"`
		Count    int    `db:"count"`
	}{}
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT category, COUNT(*) AS count FROM lectures GROUP BY category`); err != nil {
		return 0, nil, fmt.Errorf("count lectures: %w", err)
	}

	byCategory = make(map[string]int, len(rows))
	for _, r := range rows {
		byCategory[r.Category] += r.Count
		total += r.Count
	}
	return total, byCategory, nil
}
