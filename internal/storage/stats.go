package storage

import (
	"context"
	"fmt"
	"time"
)

// EventCounts splits active events into future and past relative to `now` in
// a single aggregate pass. active == future + past always holds.
type EventCounts struct {
	Active int `db:"active"`
	Future int `db:"future"`
	Past   int `db:"past"`
}

// CountEvents returns the active/future/past event breakdown.
func (s *Store) CountEvents(ctx context.Context, now time.Time) (EventCounts, error) {
	var c EventCounts
	err := s.db.GetContext(ctx, &c,
		`SELECT COUNT(*)                                   AS active,
		        COUNT(*) FILTER (WHERE date_time > $1)     AS future,
		        COUNT(*) FILTER (WHERE date_time <= $1)    AS past
		 FROM events WHERE is_active`, now)
	if err != nil {
		return EventCounts{}, fmt.Errorf("count events: %w", err)
	}
	return c, nil
}

// CountEventsScheduledBetween counts active events with date_time in
// [from, to). A zero `to` means no upper bound.
func (s *Store) CountEventsScheduledBetween(ctx context.Context, from, to time.Time) (int, error) {
	var n int
	var err error
	if to.IsZero() {
		err = s.db.GetContext(ctx, &n,
			`SELECT COUNT(*) FROM events WHERE is_active AND date_time >= $1`, from)
	} else {
		err = s.db.GetContext(ctx, &n,
			`SELECT COUNT(*) FROM events
			 WHERE is_active AND date_time >= $1 AND date_time < $2`, from, to)
	}
	if err != nil {
		return 0, fmt.Errorf("count events window: %w", err)
	}
	return n, nil
}

// CountLecturesUploadedBetween counts lecture uploads in [from, to).
func (s *Store) CountLecturesUploadedBetween(ctx context.Context, from, to time.Time) (int, error) {
	if !s.configured("lectures") {
		return 0, ErrNotConfigured
	}
	return s.countBetween(ctx, `lectures`, `uploaded_at`, from, to)
}

// CountVacanciesPostedBetween counts vacancy postings in [from, to).
func (s *Store) CountVacanciesPostedBetween(ctx context.Context, from, to time.Time) (int, error) {
	if !s.configured("vacancies") {
		return 0, ErrNotConfigured
	}
	return s.countBetween(ctx, `vacancies`, `posted_at`, from, to)
}

// CountProjectsCreatedBetween counts project creations in [from, to).
func (s *Store) CountProjectsCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	if !s.configured("projects") {
		return 0, ErrNotConfigured
	}
	return s.countBetween(ctx, `projects`, `created_at`, from, to)
}

// countBetween builds the window count for a fixed table/column pair. Both
// identifiers come from callers in this package, never from input.
func (s *Store) countBetween(ctx context.Context, table, column string, from, to time.Time) (int, error) {
	var n int
	var err error
	if to.IsZero() {
		err = s.db.GetContext(ctx, &n,
			fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s >= $1`, table, column), from)
	} else {
		err = s.db.GetContext(ctx, &n,
			fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s >= $1 AND %s < $2`, table, column, column), from, to)
	}
	if err != nil {
		return 0, fmt.Errorf("count %s window: %w", table, err)
	}
	return n, nil
}

// MentorRank pairs a mentor with the number of active events referencing it.
type MentorRank struct {
	Name   string `db:"name"`
	Events int    `db:"events"`
}

// TopMentors ranks mentors by active event count, descending, ties broken by
// name for deterministic output.
func (s *Store) TopMentors(ctx context.Context, limit int) ([]MentorRank, error) {
	var ranks []MentorRank
	err := s.db.SelectContext(ctx, &ranks,
		`SELECT m.name AS name, COUNT(e.id) AS events
		 FROM events e
		 JOIN mentors m ON m.id = e.mentor_id
		 WHERE e.is_active
		 GROUP BY m.name
		 ORDER BY events DESC, name
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("top mentors: %w", err)
	}
	return ranks, nil
}
