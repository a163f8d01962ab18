// Package service implements the bot's application operations over the
// entity store: registration, catalog read-models, admin mutations, and the
// statistics snapshot.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/itjamaat/jamaatbot/internal/logger"
	"github.com/itjamaat/jamaatbot/internal/models"
	"github.com/itjamaat/jamaatbot/internal/storage"
)

// listLimit caps every catalog view, matching the rendered message size.
const listLimit = 10

// Store is the persistence surface the service depends on. *storage.Store
// satisfies it; tests substitute an in-memory fake.
type Store interface {
	UpsertUser(ctx context.Context, telegramID int64, username, fullName string) (*models.User, error)
	CountUsers(ctx context.Context) (int, error)
	CountUsersCreatedBetween(ctx context.Context, from, to time.Time) (int, error)

	CreateMentor(ctx context.Context, m *models.Mentor) (int64, error)
	ActiveMentors(ctx context.Context) ([]models.Mentor, error)
	GetMentor(ctx context.Context, id int64) (*models.Mentor, error)
	DeactivateMentor(ctx context.Context, id int64) error
	CountActiveMentors(ctx context.Context) (int, error)

	CreateEvent(ctx context.Context, e *models.Event) (int64, error)
	UpcomingEvents(ctx context.Context, now time.Time, limit int) ([]models.Event, error)
	ActiveEvents(ctx context.Context, limit int) ([]models.Event, error)
	GetActiveEvent(ctx context.Context, id int64) (*models.Event, error)
	UpdateEventField(ctx context.Context, id int64, field storage.EventField, value any) error
	DeactivateEvent(ctx context.Context, id int64) error
	CountEvents(ctx context.Context, now time.Time) (storage.EventCounts, error)
	CountEventsScheduledBetween(ctx context.Context, from, to time.Time) (int, error)

	LecturesByCategory(ctx context.Context, category models.LectureCategory, limit int) ([]models.Lecture, error)
	LectureCategoryCounts(ctx context.Context) (int, map[string]int, error)
	CountLecturesUploadedBetween(ctx context.Context, from, to time.Time) (int, error)

	ActiveVacancies(ctx context.Context, limit int) ([]models.Vacancy, error)
	CountActiveVacancies(ctx context.Context) (int, error)
	CountVacanciesPostedBetween(ctx context.Context, from, to time.Time) (int, error)

	ActiveProjects(ctx context.Context, limit int) ([]models.Project, error)
	ProjectStatusCounts(ctx context.Context) (int, map[string]int, error)
	CountProjectsCreatedBetween(ctx context.Context, from, to time.Time) (int, error)

	TopMentors(ctx context.Context, limit int) ([]storage.MentorRank, error)
}

// ErrNotFound mirrors the storage sentinel for callers that do not import
// storage directly.
var ErrNotFound = storage.ErrNotFound

// Service wires the store to the handlers.
type Service struct {
	store Store
	now   func() time.Time
}

// New constructs a Service. The clock defaults to time.Now.
func New(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// NewWithClock constructs a Service with an injected clock for tests.
func NewWithClock(store Store, now func() time.Time) *Service {
	return &Service{store: store, now: now}
}

// RegisterUser upserts a user row on /start.
func (s *Service) RegisterUser(ctx context.Context, telegramID int64, username, fullName string) (*models.User, error) {
	u, err := s.store.UpsertUser(ctx, telegramID, username, fullName)
	if err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}
	logger.Debug(ctx, "service.users", "user.registered",
		slog.Int64("user_id", telegramID),
	)
	return u, nil
}

// UpcomingEvents lists active future events, soonest first.
func (s *Service) UpcomingEvents(ctx context.Context) ([]models.Event, error) {
	return s.store.UpcomingEvents(ctx, s.now(), listLimit)
}

// ActiveEvents lists all active events by date for admin pick lists.
func (s *Service) ActiveEvents(ctx context.Context) ([]models.Event, error) {
	return s.store.ActiveEvents(ctx, listLimit)
}

// GetEvent loads an active event.
func (s *Service) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	return s.store.GetActiveEvent(ctx, id)
}

// ActiveMentors lists active mentors.
func (s *Service) ActiveMentors(ctx context.Context) ([]models.Mentor, error) {
	return s.store.ActiveMentors(ctx)
}

// GetMentor loads a mentor regardless of its active flag.
func (s *Service) GetMentor(ctx context.Context, id int64) (*models.Mentor, error) {
	return s.store.GetMentor(ctx, id)
}

// Lectures lists lectures for a category, or all of them. An unconfigured
// lectures sub-resource renders as an empty catalog.
func (s *Service) Lectures(ctx context.Context, category models.LectureCategory) ([]models.Lecture, error) {
	lectures, err := s.store.LecturesByCategory(ctx, category, listLimit)
	if errors.Is(err, storage.ErrNotConfigured) {
		logger.Warn(ctx, "service.catalog", "lectures.not_configured")
		return nil, nil
	}
	return lectures, err
}

// Vacancies lists active vacancies, newest first.
func (s *Service) Vacancies(ctx context.Context) ([]models.Vacancy, error) {
	vacancies, err := s.store.ActiveVacancies(ctx, listLimit)
	if errors.Is(err, storage.ErrNotConfigured) {
		logger.Warn(ctx, "service.catalog", "vacancies.not_configured")
		return nil, nil
	}
	return vacancies, err
}

// Projects lists active projects, newest first.
func (s *Service) Projects(ctx context.Context) ([]models.Project, error) {
	projects, err := s.store.ActiveProjects(ctx, listLimit)
	if errors.Is(err, storage.ErrNotConfigured) {
		logger.Warn(ctx, "service.catalog", "projects.not_configured")
		return nil, nil
	}
	return projects, err
}

// CreateMentor commits a completed add-mentor flow.
func (s *Service) CreateMentor(ctx context.Context, name, specialization, bio, contact string) (int64, error) {
	id, err := s.store.CreateMentor(ctx, &models.Mentor{
		Name:           name,
		Specialization: specialization,
		Bio:            bio,
		ContactInfo:    contact,
		IsActive:       true,
	})
	if err != nil {
		return 0, fmt.Errorf("create mentor: %w", err)
	}
	logger.Info(ctx, "service.mentors", "mentor.created",
		slog.Int64("mentor_id", id),
	)
	return id, nil
}

// CreateEvent commits a completed add-event flow. creatorID references the
// acting admin's user row.
func (s *Service) CreateEvent(ctx context.Context, title, description string, dateTime time.Time, location string, mentorID *int64, creatorID int64) (int64, error) {
	id, err := s.store.CreateEvent(ctx, &models.Event{
		Title:       title,
		Description: description,
		DateTime:    dateTime,
		Location:    location,
		MentorID:    mentorID,
		IsActive:    true,
		CreatedBy:   &creatorID,
	})
	if err != nil {
		return 0, fmt.Errorf("create event: %w", err)
	}
	logger.Info(ctx, "service.events", "event.created",
		slog.Int64("event_id", id),
	)
	return id, nil
}

// UpdateEventField mutates a single event column.
func (s *Service) UpdateEventField(ctx context.Context, id int64, field storage.EventField, value any) error {
	if err := s.store.UpdateEventField(ctx, id, field, value); err != nil {
		return err
	}
	logger.Info(ctx, "service.events", "event.updated",
		slog.Int64("event_id", id),
		slog.String("field", string(field)),
	)
	return nil
}

// AssignMentor points an event at a mentor, or clears the reference when
// mentorID is nil. It returns the mentor's display name for confirmation.
func (s *Service) AssignMentor(ctx context.Context, eventID int64, mentorID *int64) (string, error) {
	name := ""
	if mentorID != nil {
		mentor, err := s.store.GetMentor(ctx, *mentorID)
		if err != nil {
			return "", err
		}
		name = mentor.Name
	}
	if err := s.store.UpdateEventField(ctx, eventID, storage.EventMentor, mentorID); err != nil {
		return "", err
	}
	logger.Info(ctx, "service.events", "event.mentor_assigned",
		slog.Int64("event_id", eventID),
	)
	return name, nil
}

// DeleteEvent soft-deletes an event after confirmation.
func (s *Service) DeleteEvent(ctx context.Context, id int64) error {
	if err := s.store.DeactivateEvent(ctx, id); err != nil {
		return err
	}
	logger.Info(ctx, "service.events", "event.deleted",
		slog.Int64("event_id", id),
	)
	return nil
}

// DeleteMentor soft-deletes a mentor after confirmation. Events referencing
// the mentor keep their reference.
func (s *Service) DeleteMentor(ctx context.Context, id int64) error {
	if err := s.store.DeactivateMentor(ctx, id); err != nil {
		return err
	}
	logger.Info(ctx, "service.mentors", "mentor.deleted",
		slog.Int64("mentor_id", id),
	)
	return nil
}
