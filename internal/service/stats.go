package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/itjamaat/jamaatbot/internal/models"
	"github.com/itjamaat/jamaatbot/internal/storage"
)

const topMentorsLimit = 5

// ActivityWindow holds creation counters over one time window.
type ActivityWindow struct {
	NewUsers     int
	NewEvents    int
	NewLectures  int
	NewVacancies int
	NewProjects  int
}

// Statistics is the aggregate snapshot rendered by the admin stats screens.
// Counters for unconfigured sub-resources are zero.
type Statistics struct {
	TotalUsers    int
	ActiveMentors int

	ActiveEvents int
	FutureEvents int
	PastEvents   int

	TotalLectures      int
	LecturesByCategory map[models.LectureCategory]int

	ActiveVacancies int

	TotalProjects    int
	ProjectsByStatus map[models.ProjectStatus]int

	Last30Days ActivityWindow
	Today      ActivityWindow
	Yesterday  ActivityWindow
	ThisWeek   ActivityWindow

	TopMentors []storage.MentorRank
}

// tolerant maps an unconfigured sub-resource to a zero counter and passes
// every other error through.
func tolerant(n int, err error) (int, error) {
	if errors.Is(err, storage.ErrNotConfigured) {
		return 0, nil
	}
	return n, err
}

// Statistics assembles the full snapshot. Every counter comes from the store
// at call time; nothing is cached.
func (s *Service) Statistics(ctx context.Context) (*Statistics, error) {
	now := s.now()
	st := &Statistics{
		LecturesByCategory: make(map[models.LectureCategory]int),
		ProjectsByStatus:   make(map[models.ProjectStatus]int),
	}

	var err error
	if st.TotalUsers, err = s.store.CountUsers(ctx); err != nil {
		return nil, fmt.Errorf("stats: users: %w", err)
	}
	if st.ActiveMentors, err = s.store.CountActiveMentors(ctx); err != nil {
		return nil, fmt.Errorf("stats: mentors: %w", err)
	}

	events, err := s.store.CountEvents(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("stats: events: %w", err)
	}
	st.ActiveEvents = events.Active
	st.FutureEvents = events.Future
	st.PastEvents = events.Past

	total, byCategory, err := s.store.LectureCategoryCounts(ctx)
	if st.TotalLectures, err = tolerant(total, err); err != nil {
		return nil, fmt.Errorf("stats: lectures: %w", err)
	}
	for raw, n := range byCategory {
		st.LecturesByCategory[models.ParseLectureCategory(raw)] += n
	}

	if st.ActiveVacancies, err = tolerant(s.store.CountActiveVacancies(ctx)); err != nil {
		return nil, fmt.Errorf("stats: vacancies: %w", err)
	}

	total, byStatus, err := s.store.ProjectStatusCounts(ctx)
	if st.TotalProjects, err = tolerant(total, err); err != nil {
		return nil, fmt.Errorf("stats: projects: %w", err)
	}
	for raw, n := range byStatus {
		st.ProjectsByStatus[models.ParseProjectStatus(raw)] += n
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	windows := []struct {
		dst      *ActivityWindow
		from, to time.Time
	}{
		{&st.Last30Days, now.AddDate(0, 0, -30), time.Time{}},
		{&st.Today, midnight, time.Time{}},
		{&st.Yesterday, midnight.AddDate(0, 0, -1), midnight},
		{&st.ThisWeek, midnight.AddDate(0, 0, -7), time.Time{}},
	}
	for _, w := range windows {
		if err := s.fillWindow(ctx, w.dst, w.from, w.to); err != nil {
			return nil, err
		}
	}

	if st.TopMentors, err = s.store.TopMentors(ctx, topMentorsLimit); err != nil {
		return nil, fmt.Errorf("stats: top mentors: %w", err)
	}
	return st, nil
}

func (s *Service) fillWindow(ctx context.Context, w *ActivityWindow, from, to time.Time) error {
	var err error
	if w.NewUsers, err = s.store.CountUsersCreatedBetween(ctx, from, to); err != nil {
		return fmt.Errorf("stats: window users: %w", err)
	}
	if w.NewEvents, err = s.store.CountEventsScheduledBetween(ctx, from, to); err != nil {
		return fmt.Errorf("stats: window events: %w", err)
	}
	if w.NewLectures, err = tolerant(s.store.CountLecturesUploadedBetween(ctx, from, to)); err != nil {
		return fmt.Errorf("stats: window lectures: %w", err)
	}
	if w.NewVacancies, err = tolerant(s.store.CountVacanciesPostedBetween(ctx, from, to)); err != nil {
		return fmt.Errorf("stats: window vacancies: %w", err)
	}
	if w.NewProjects, err = tolerant(s.store.CountProjectsCreatedBetween(ctx, from, to)); err != nil {
		return fmt.Errorf("stats: window projects: %w", err)
	}
	return nil
}
