package handlers

import (
	"strings"
	"testing"
	"time"

	"github.com/itjamaat/jamaatbot/internal/models"
	"github.com/itjamaat/jamaatbot/internal/service"
	"github.com/itjamaat/jamaatbot/internal/storage"
)

func TestEventButtonLabel(t *testing.T) {
	e := models.Event{
		Title:    "Go Meetup",
		DateTime: time.Date(2026, 12, 24, 19, 0, 0, 0, time.Local),
	}
	if got := eventButtonLabel(e); got != "Go Meetup (24.12 19:00)" {
		t.Fatalf("label = %q", got)
	}
}

func TestEventButtonLabelTruncatesLongTitle(t *testing.T) {
	e := models.Event{
		Title:    strings.Repeat("x", 60),
		DateTime: time.Date(2026, 12, 24, 19, 0, 0, 0, time.Local),
	}
	got := eventButtonLabel(e)
	if !strings.Contains(got, "…") {
		t.Fatalf("expected truncation marker in %q", got)
	}
	if !strings.HasSuffix(got, "(24.12 19:00)") {
		t.Fatalf("date suffix missing in %q", got)
	}
}

func TestEventsViewEmpty(t *testing.T) {
	got := eventsViewText(nil)
	if !strings.Contains(got, "No upcoming events") {
		t.Fatalf("empty view = %q", got)
	}
}

func TestEventsViewListsMentor(t *testing.T) {
	mentor := "Bilal"
	events := []models.Event{
		{
			Title:      "Go Meetup",
			DateTime:   time.Date(2026, 12, 24, 19, 0, 0, 0, time.Local),
			Location:   "Online",
			MentorName: &mentor,
		},
	}
	got := eventsViewText(events)
	for _, want := range []string{"Go Meetup", "24.12.2026 19:00", "Online", "Bilal"} {
		if !strings.Contains(got, want) {
			t.Fatalf("view missing %q:\n%s", want, got)
		}
	}
}

func TestLecturesViewHeaders(t *testing.T) {
	got := lecturesViewText(models.CategoryAll, nil)
	if !strings.Contains(got, "Nothing here yet") {
		t.Fatalf("empty view = %q", got)
	}
	got = lecturesViewText(models.CategorySecurity, nil)
	if !strings.Contains(got, "Security") {
		t.Fatalf("category header missing: %q", got)
	}
}

func TestStatsViews(t *testing.T) {
	st := &service.Statistics{
		TotalUsers:    42,
		ActiveMentors: 3,
		ActiveEvents:  5,
		FutureEvents:  2,
		PastEvents:    3,
		TotalLectures: 7,
		LecturesByCategory: map[models.LectureCategory]int{
			models.CategoryProgramming: 7,
		},
		ActiveVacancies: 1,
		TotalProjects:   2,
		ProjectsByStatus: map[models.ProjectStatus]int{
			models.StatusDevelopment: 2,
		},
		Last30Days: service.ActivityWindow{NewUsers: 9, NewEvents: 4},
		Today:      service.ActivityWindow{NewUsers: 1},
		Yesterday:  service.ActivityWindow{NewUsers: 2},
		ThisWeek:   service.ActivityWindow{NewUsers: 5, NewEvents: 2},
		TopMentors: []storage.MentorRank{{Name: "Bilal", Events: 4}},
	}

	top := statsViewText(st)
	for _, want := range []string{"42", "5 active (2 upcoming, 3 past)", "7", "Vacancies: 1"} {
		if !strings.Contains(top, want) {
			t.Fatalf("stats view missing %q:\n%s", want, top)
		}
	}

	detailed := detailedStatsViewText(st)
	for _, want := range []string{"New users: 9", "Programming: 7", "development: 2", "1. Bilal — 4"} {
		if !strings.Contains(detailed, want) {
			t.Fatalf("detailed view missing %q:\n%s", want, detailed)
		}
	}

	daily := dailyStatsViewText(st)
	for _, want := range []string{"Today: 1 new users", "Yesterday: 2 new users", "Last 7 days: 5 new users, 2 events"} {
		if !strings.Contains(daily, want) {
			t.Fatalf("daily view missing %q:\n%s", want, daily)
		}
	}
}

func TestEditFieldValidators(t *testing.T) {
	if _, err := editFieldValidator(storage.EventDateTime)("31.12.2026 23:59"); err != nil {
		t.Fatalf("date validator rejected valid input: %v", err)
	}
	if _, err := editFieldValidator(storage.EventDateTime)("soon"); err == nil {
		t.Fatal("date validator accepted bad input")
	}
	if _, err := editFieldValidator(storage.EventTitle)(""); err == nil {
		t.Fatal("text validator accepted empty input")
	}
}

func TestEditableFieldMatchesOfferedButtons(t *testing.T) {
	for _, f := range editableFieldLabels {
		got, ok := editableField(string(f.Field))
		if !ok || got != f.Field {
			t.Fatalf("editableField(%q) = %q, %v", f.Field, got, ok)
		}
	}
	for _, name := range []string{"mentor", "id", "is_active", ""} {
		if _, ok := editableField(name); ok {
			t.Fatalf("editableField(%q) accepted", name)
		}
	}
}
