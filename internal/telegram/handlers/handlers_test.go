package handlers

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/itjamaat/jamaatbot/internal/flow"
	"github.com/itjamaat/jamaatbot/internal/models"
	"github.com/itjamaat/jamaatbot/internal/service"
	"github.com/itjamaat/jamaatbot/internal/storage"

	tele "gopkg.in/telebot.v4"
)

// stubStore satisfies service.Store with inert defaults; only the mentor
// listing carries data, which is what the flow keyboards read.
type stubStore struct {
	mentors []models.Mentor
}

func (s *stubStore) UpsertUser(context.Context, int64, string, string) (*models.User, error) {
	return &models.User{ID: 1}, nil
}
func (s *stubStore) CountUsers(context.Context) (int, error) { return 0, nil }
func (s *stubStore) CountUsersCreatedBetween(context.Context, time.Time, time.Time) (int, error) {
	return 0, nil
}

func (s *stubStore) CreateMentor(context.Context, *models.Mentor) (int64, error) { return 1, nil }
func (s *stubStore) ActiveMentors(context.Context) ([]models.Mentor, error) {
	return s.mentors, nil
}
func (s *stubStore) GetMentor(_ context.Context, id int64) (*models.Mentor, error) {
	for i := range s.mentors {
		if s.mentors[i].ID == id {
			m := s.mentors[i]
			return &m, nil
		}
	}
	return nil, storage.ErrNotFound
}
func (s *stubStore) DeactivateMentor(context.Context, int64) error   { return nil }
func (s *stubStore) CountActiveMentors(context.Context) (int, error) { return len(s.mentors), nil }

func (s *stubStore) CreateEvent(context.Context, *models.Event) (int64, error) { return 1, nil }
func (s *stubStore) UpcomingEvents(context.Context, time.Time, int) ([]models.Event, error) {
	return nil, nil
}
func (s *stubStore) ActiveEvents(context.Context, int) ([]models.Event, error) { return nil, nil }
func (s *stubStore) GetActiveEvent(context.Context, int64) (*models.Event, error) {
	return nil, storage.ErrNotFound
}
func (s *stubStore) UpdateEventField(context.Context, int64, storage.EventField, any) error {
	return nil
}
func (s *stubStore) DeactivateEvent(context.Context, int64) error { return nil }
func (s *stubStore) CountEvents(context.Context, time.Time) (storage.EventCounts, error) {
	return storage.EventCounts{}, nil
}
func (s *stubStore) CountEventsScheduledBetween(context.Context, time.Time, time.Time) (int, error) {
	return 0, nil
}

func (s *stubStore) LecturesByCategory(context.Context, models.LectureCategory, int) ([]models.Lecture, error) {
	return nil, nil
}
func (s *stubStore) LectureCategoryCounts(context.Context) (int, map[string]int, error) {
	return 0, nil, nil
}
func (s *stubStore) CountLecturesUploadedBetween(context.Context, time.Time, time.Time) (int, error) {
	return 0, nil
}

func (s *stubStore) ActiveVacancies(context.Context, int) ([]models.Vacancy, error) {
	return nil, nil
}
func (s *stubStore) CountActiveVacancies(context.Context) (int, error) { return 0, nil }
func (s *stubStore) CountVacanciesPostedBetween(context.Context, time.Time, time.Time) (int, error) {
	return 0, nil
}

func (s *stubStore) ActiveProjects(context.Context, int) ([]models.Project, error) {
	return nil, nil
}
func (s *stubStore) ProjectStatusCounts(context.Context) (int, map[string]int, error) {
	return 0, nil, nil
}
func (s *stubStore) CountProjectsCreatedBetween(context.Context, time.Time, time.Time) (int, error) {
	return 0, nil
}

func (s *stubStore) TopMentors(context.Context, int) ([]storage.MentorRank, error) {
	return nil, nil
}

type sentMessage struct {
	what any
	opts []any
}

// fakeContext implements the slice of tele.Context the handlers touch.
type fakeContext struct {
	tele.Context
	sender    *tele.User
	text      string
	cb        *tele.Callback
	store     map[string]any
	sent      []sentMessage
	responded int
}

func newFakeContext(userID int64) *fakeContext {
	return &fakeContext{
		sender: &tele.User{ID: userID, Username: "someone"},
		store:  map[string]any{},
	}
}

func (c *fakeContext) Sender() *tele.User { return c.sender }

func (c *fakeContext) Chat() *tele.Chat {
	return &tele.Chat{ID: c.sender.ID, Type: tele.ChatPrivate}
}

func (c *fakeContext) Text() string { return c.text }

func (c *fakeContext) Update() tele.Update {
	return tele.Update{ID: 1, Message: &tele.Message{Text: c.text}, Callback: c.cb}
}

func (c *fakeContext) Callback() *tele.Callback { return c.cb }

func (c *fakeContext) Get(key string) any { return c.store[key] }

func (c *fakeContext) Set(key string, val any) { c.store[key] = val }

func (c *fakeContext) Send(what any, opts ...any) error {
	c.sent = append(c.sent, sentMessage{what: what, opts: opts})
	return nil
}

func (c *fakeContext) Respond(_ ...*tele.CallbackResponse) error {
	c.responded++
	return nil
}

func (c *fakeContext) lastSent(t *testing.T) sentMessage {
	t.Helper()
	if len(c.sent) == 0 {
		t.Fatal("nothing was sent")
	}
	return c.sent[len(c.sent)-1]
}

func markupButtonTexts(t *testing.T, msg sentMessage) []string {
	t.Helper()
	for _, opt := range msg.opts {
		if markup, ok := opt.(*tele.ReplyMarkup); ok {
			var texts []string
			for _, row := range markup.InlineKeyboard {
				for _, btn := range row {
					texts = append(texts, btn.Text)
				}
			}
			return texts
		}
	}
	t.Fatalf("message %v carries no reply markup", msg.what)
	return nil
}

func newTestHandlers(store *stubStore) *Handlers {
	return New(service.New(store), flow.NewManager(), []int64{1})
}

func TestMentorStepRetryKeepsPicker(t *testing.T) {
	h := newTestHandlers(&stubStore{mentors: []models.Mentor{
		{ID: 10, Name: "Bilal", IsActive: true},
	}})
	c := newFakeContext(1)

	if err := h.AddEventStart(c); err != nil {
		t.Fatalf("start: %v", err)
	}
	for _, input := range []string{"Go Meetup", "Talks and pizza", "24.12.2026 19:00", "Online"} {
		c.text = input
		if err := h.HandleText(c); err != nil {
			t.Fatalf("advance %q: %v", input, err)
		}
	}

	texts := markupButtonTexts(t, c.lastSent(t))
	if !containsText(texts, "Bilal") {
		t.Fatalf("mentor step keyboard missing picker: %v", texts)
	}

	// An invalid pick must re-prompt with the same picker, not just cancel.
	c.text = "not-a-mentor"
	if err := h.HandleText(c); err != nil {
		t.Fatalf("retry: %v", err)
	}
	last := c.lastSent(t)
	if msg, ok := last.what.(string); !ok || !strings.HasPrefix(msg, "⚠️") {
		t.Fatalf("expected a retry prompt, got %v", last.what)
	}
	texts = markupButtonTexts(t, last)
	if !containsText(texts, "Bilal") {
		t.Fatalf("retry keyboard lost the picker: %v", texts)
	}
	if !h.InProgress(1) {
		t.Fatal("flow should still be in progress after a retry")
	}
}

func TestEditFieldStartRejectsUnknownField(t *testing.T) {
	h := newTestHandlers(&stubStore{})

	for _, payload := range []string{"42:mentor", "42:garbage", "42:"} {
		c := newFakeContext(1)
		c.cb = &tele.Callback{Data: `\fadm_edit_field|` + payload}
		if err := h.EditEventFieldStart(c); err != nil {
			t.Fatalf("payload %q: %v", payload, err)
		}
		if c.responded == 0 {
			t.Fatalf("payload %q: expected a callback response", payload)
		}
		if h.InProgress(1) {
			t.Fatalf("payload %q started a flow", payload)
		}
	}

	c := newFakeContext(1)
	c.cb = &tele.Callback{Data: `\fadm_edit_field|42:title`}
	if err := h.EditEventFieldStart(c); err != nil {
		t.Fatalf("valid payload: %v", err)
	}
	if !h.InProgress(1) {
		t.Fatal("valid field should start the flow")
	}
}

func containsText(texts []string, want string) bool {
	for _, txt := range texts {
		if txt == want {
			return true
		}
	}
	return false
}
