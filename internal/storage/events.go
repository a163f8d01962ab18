package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/itjamaat/jamaatbot/internal/models"
)

// EventField names an editable event column.
type EventField string

const (
	EventTitle       EventField = "title"
	EventDescription EventField = "description"
	EventDateTime    EventField = "date_time"
	EventLocation    EventField = "location"
	EventMentor      EventField = "mentor"
)

const eventColumns = `
	e.id, e.title, e.description, e.event_type, e.mentor_id, e.date_time,
	e.location, e.is_active, e.created_by, m.name AS mentor_name`

// CreateEvent inserts an active event and returns its id.
func (s *Store) CreateEvent(ctx context.Context, e *models.Event) (int64, error) {
	var id int64
	err := s.db.GetContext(ctx, &id,
		`INSERT INTO events (title, description, event_type, mentor_id, date_time, location, is_active, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7)
		 RETURNING id`,
		e.Title, e.Description, e.EventType, e.MentorID, e.DateTime, e.Location, e.CreatedBy)
	if err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}
	return id, nil
}

// UpcomingEvents lists active events strictly after `now`, soonest first.
func (s *Store) UpcomingEvents(ctx context.Context, now time.Time, limit int) ([]models.Event, error) {
	var events []models.Event
	err := s.db.SelectContext(ctx, &events,
		`SELECT`+eventColumns+`
		 FROM events e
		 LEFT JOIN mentors m ON m.id = e.mentor_id
		 WHERE e.is_active AND e.date_time > $1
		 ORDER BY e.date_time
		 LIMIT $2`, now, limit)
	if err != nil {
		return nil, fmt.Errorf("select upcoming events: %w", err)
	}
	return events, nil
}

// ActiveEvents lists all active events by ascending date, used by the admin
// edit/delete pick lists.
func (s *Store) ActiveEvents(ctx context.Context, limit int) ([]models.Event, error) {
	var events []models.Event
	err := s.db.SelectContext(ctx, &events,
		`SELECT`+eventColumns+`
		 FROM events e
		 LEFT JOIN mentors m ON m.id = e.mentor_id
		 WHERE e.is_active
		 ORDER BY e.date_time
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("select active events: %w", err)
	}
	return events, nil
}

// GetActiveEvent loads an active event with its mentor name resolved.
func (s *Store) GetActiveEvent(ctx context.Context, id int64) (*models.Event, error) {
	var e models.Event
	err := s.db.GetContext(ctx, &e,
		`SELECT`+eventColumns+`
		 FROM events e
		 LEFT JOIN mentors m ON m.id = e.mentor_id
		 WHERE e.id = $1 AND e.is_active`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &e, nil
}

// UpdateEventField mutates exactly one event column, leaving the rest of the
// row and its active flag untouched. ErrNotFound is returned when the event
// was deactivated or removed concurrently.
func (s *Store) UpdateEventField(ctx context.Context, id int64, field EventField, value any) error {
	var query string
	switch field {
	case EventTitle:
		query = `UPDATE events SET title = $1 WHERE id = $2 AND is_active`
	case EventDescription:
		query = `UPDATE events SET description = $1 WHERE id = $2 AND is_active`
	case EventDateTime:
		query = `UPDATE events SET date_time = $1 WHERE id = $2 AND is_active`
	case EventLocation:
		query = `UPDATE events SET location = $1 WHERE id = $2 AND is_active`
	case EventMentor:
		query = `UPDATE events SET mentor_id = $1 WHERE id = $2 AND is_active`
	default:
		return fmt.Errorf("update event: unknown field %q", field)
	}

	res, err := s.db.ExecContext(ctx, query, value, id)
	if err != nil {
		return fmt.Errorf("update event %s: %w", field, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeactivateEvent soft-deletes an event.
func (s *Store) DeactivateEvent(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE events SET is_active = FALSE WHERE id = $1 AND is_active`, id)
	if err != nil {
		return fmt.Errorf("deactivate event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
