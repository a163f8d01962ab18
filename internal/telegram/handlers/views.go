package handlers

import (
	"fmt"
	"strings"

	"github.com/itjamaat/jamaatbot/internal/flow"
	"github.com/itjamaat/jamaatbot/internal/models"
	"github.com/itjamaat/jamaatbot/internal/service"
	"github.com/itjamaat/jamaatbot/internal/storage"
)

// shortDateLayout renders a compact date for pick-list button labels.
const shortDateLayout = "02.01 15:04"

// buttonLabelMax caps pick-list button labels so long titles stay readable.
const buttonLabelMax = 32

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// eventButtonLabel renders "title (02.01 15:04)" for event pick lists.
func eventButtonLabel(e models.Event) string {
	return fmt.Sprintf("%s (%s)", truncate(e.Title, buttonLabelMax), e.DateTime.Format(shortDateLayout))
}

func mainMenuText(name string) string {
	if name == "" {
		name = "friend"
	}
	return fmt.Sprintf(
		"👋 Welcome, %s!\n\n"+
			"IT Jama'at is a community of IT folks helping each other grow.\n"+
			"Pick a section below.", name)
}

func eventsViewText(events []models.Event) string {
	if len(events) == 0 {
		return "📅 No upcoming events yet. Check back soon!"
	}
	var b strings.Builder
	b.WriteString("📅 Upcoming events:\n")
	for _, e := range events {
		b.WriteString(fmt.Sprintf("\n🔹 %s\n📆 %s\n📍 %s\n",
			e.Title, e.DateTime.Format(flow.EventDateLayout), e.Location))
		if e.Description != "" {
			b.WriteString(e.Description + "\n")
		}
		if e.MentorName != nil {
			b.WriteString("👤 Mentor: " + *e.MentorName + "\n")
		}
	}
	return b.String()
}

func mentorsViewText(mentors []models.Mentor) string {
	if len(mentors) == 0 {
		return "👥 No mentors are listed yet."
	}
	var b strings.Builder
	b.WriteString("👥 Our mentors:\n")
	for _, m := range mentors {
		b.WriteString(fmt.Sprintf("\n🔹 %s — %s\n", m.Name, m.Specialization))
		if m.Bio != "" {
			b.WriteString(m.Bio + "\n")
		}
		if m.ContactInfo != "" {
			b.WriteString("📬 " + m.ContactInfo + "\n")
		}
	}
	return b.String()
}

func lecturesViewText(category models.LectureCategory, lectures []models.Lecture) string {
	header := "🎓 Lectures"
	if category != models.CategoryAll {
		header = fmt.Sprintf("🎓 Lectures — %s", category)
	}
	if len(lectures) == 0 {
		return header + "\n\nNothing here yet."
	}
	var b strings.Builder
	b.WriteString(header + ":\n")
	for _, l := range lectures {
		b.WriteString(fmt.Sprintf("\n🔹 %s\n", l.Title))
		if l.Description != "" {
			b.WriteString(l.Description + "\n")
		}
		if l.MentorName != nil {
			b.WriteString("👤 " + *l.MentorName + "\n")
		}
		if l.VideoURL != nil && *l.VideoURL != "" {
			b.WriteString("▶️ " + *l.VideoURL + "\n")
		}
	}
	return b.String()
}

func vacanciesViewText(vacancies []models.Vacancy) string {
	if len(vacancies) == 0 {
		return "💼 No open vacancies right now."
	}
	var b strings.Builder
	b.WriteString("💼 Open vacancies:\n")
	for _, v := range vacancies {
		b.WriteString(fmt.Sprintf("\n🔹 %s — %s\n", v.Title, v.Company))
		if v.Description != "" {
			b.WriteString(v.Description + "\n")
		}
		if v.ContactInfo != "" {
			b.WriteString("📬 " + v.ContactInfo + "\n")
		}
	}
	return b.String()
}

func projectsViewText(projects []models.Project) string {
	if len(projects) == 0 {
		return "🚀 No community projects yet."
	}
	var b strings.Builder
	b.WriteString("🚀 Community projects:\n")
	for _, p := range projects {
		status := models.ParseProjectStatus(p.Status)
		b.WriteString(fmt.Sprintf("\n🔹 %s [%s]\n", p.Title, status))
		if p.Description != "" {
			b.WriteString(p.Description + "\n")
		}
		if p.RequiredSkills != "" {
			b.WriteString("🛠 " + p.RequiredSkills + "\n")
		}
	}
	return b.String()
}

func statsViewText(st *service.Statistics) string {
	var b strings.Builder
	b.WriteString("📊 Community statistics\n\n")
	b.WriteString(fmt.Sprintf("👤 Users: %d\n", st.TotalUsers))
	b.WriteString(fmt.Sprintf("👥 Active mentors: %d\n", st.ActiveMentors))
	b.WriteString(fmt.Sprintf("📅 Events: %d active (%d upcoming, %d past)\n",
		st.ActiveEvents, st.FutureEvents, st.PastEvents))
	b.WriteString(fmt.Sprintf("🎓 Lectures: %d\n", st.TotalLectures))
	b.WriteString(fmt.Sprintf("💼 Vacancies: %d\n", st.ActiveVacancies))
	b.WriteString(fmt.Sprintf("🚀 Projects: %d\n", st.TotalProjects))
	return b.String()
}

func detailedStatsViewText(st *service.Statistics) string {
	var b strings.Builder
	b.WriteString("📊 Detailed statistics (last 30 days)\n\n")
	b.WriteString(fmt.Sprintf("👤 New users: %d\n", st.Last30Days.NewUsers))
	b.WriteString(fmt.Sprintf("📅 Events scheduled: %d\n", st.Last30Days.NewEvents))
	b.WriteString(fmt.Sprintf("🎓 Lectures uploaded: %d\n", st.Last30Days.NewLectures))
	b.WriteString(fmt.Sprintf("💼 Vacancies posted: %d\n", st.Last30Days.NewVacancies))
	b.WriteString(fmt.Sprintf("🚀 Projects started: %d\n", st.Last30Days.NewProjects))

	if len(st.LecturesByCategory) > 0 {
		b.WriteString("\n🎓 Lectures by category:\n")
		for _, cat := range models.LectureCategories {
			if n, ok := st.LecturesByCategory[cat]; ok && n > 0 {
				b.WriteString(fmt.Sprintf("  %s: %d\n", cat, n))
			}
		}
		if n := st.LecturesByCategory[models.CategoryUncategorized]; n > 0 {
			b.WriteString(fmt.Sprintf("  %s: %d\n", models.CategoryUncategorized, n))
		}
	}

	if len(st.ProjectsByStatus) > 0 {
		b.WriteString("\n🚀 Projects by status:\n")
		for _, status := range []models.ProjectStatus{
			models.StatusDiscussion, models.StatusDevelopment, models.StatusCompleted, models.StatusUnknown,
		} {
			if n, ok := st.ProjectsByStatus[status]; ok && n > 0 {
				b.WriteString(fmt.Sprintf("  %s: %d\n", status, n))
			}
		}
	}

	if len(st.TopMentors) > 0 {
		b.WriteString("\n🏆 Top mentors by events:\n")
		for i, m := range st.TopMentors {
			b.WriteString(fmt.Sprintf("  %d. %s — %d\n", i+1, m.Name, m.Events))
		}
	}
	return b.String()
}

func dailyStatsViewText(st *service.Statistics) string {
	var b strings.Builder
	b.WriteString("📊 Activity\n\n")
	b.WriteString(fmt.Sprintf("Today: %d new users, %d events, %d lectures, %d vacancies, %d projects\n",
		st.Today.NewUsers, st.Today.NewEvents, st.Today.NewLectures,
		st.Today.NewVacancies, st.Today.NewProjects))
	b.WriteString(fmt.Sprintf("Yesterday: %d new users\n", st.Yesterday.NewUsers))
	b.WriteString(fmt.Sprintf("Last 7 days: %d new users, %d events\n",
		st.ThisWeek.NewUsers, st.ThisWeek.NewEvents))
	return b.String()
}

func eventSummaryText(e *models.Event) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔹 %s\n📆 %s\n📍 %s\n",
		e.Title, e.DateTime.Format(flow.EventDateLayout), e.Location))
	if e.Description != "" {
		b.WriteString(e.Description + "\n")
	}
	if e.MentorName != nil {
		b.WriteString("👤 Mentor: " + *e.MentorName + "\n")
	}
	return b.String()
}

// editableFieldLabels orders the event fields offered on the edit screen.
var editableFieldLabels = []struct {
	Field storage.EventField
	Label string
}{
	{storage.EventTitle, "✏️ Title"},
	{storage.EventDescription, "📝 Description"},
	{storage.EventDateTime, "📆 Date"},
	{storage.EventLocation, "📍 Location"},
}

// editableField resolves a callback-supplied field name against the fields
// the edit screen actually offers. Anything else, mentor included, is not a
// free-text field.
func editableField(name string) (storage.EventField, bool) {
	for _, f := range editableFieldLabels {
		if string(f.Field) == name {
			return f.Field, true
		}
	}
	return "", false
}

func editFieldPrompt(field storage.EventField) string {
	switch field {
	case storage.EventTitle:
		return "Send the new title:"
	case storage.EventDescription:
		return "Send the new description:"
	case storage.EventDateTime:
		return "Send the new date and time (DD.MM.YYYY HH:MM):"
	case storage.EventLocation:
		return "Send the new location:"
	default:
		return "Send the new value:"
	}
}

func editFieldValidator(field storage.EventField) flow.Validator {
	if field == storage.EventDateTime {
		return flow.DateTime
	}
	return flow.Text
}
