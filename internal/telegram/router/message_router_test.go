package router

import (
	"testing"

	tg "github.com/itjamaat/jamaatbot/internal/telegram"
	"github.com/itjamaat/jamaatbot/internal/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

// fakeContext implements the slice of tele.Context the text route touches.
type fakeContext struct {
	tele.Context
	sender *tele.User
	text   string
	store  map[string]any
	sent   []any
}

func newFakeContext(userID int64, text string) *fakeContext {
	return &fakeContext{
		sender: &tele.User{ID: userID, Username: "someone"},
		text:   text,
		store:  map[string]any{},
	}
}

func (c *fakeContext) Sender() *tele.User { return c.sender }

func (c *fakeContext) Chat() *tele.Chat {
	return &tele.Chat{ID: c.sender.ID, Type: tele.ChatPrivate}
}

func (c *fakeContext) Text() string { return c.text }

func (c *fakeContext) Update() tele.Update {
	return tele.Update{ID: 1, Message: &tele.Message{Text: c.text}}
}

func (c *fakeContext) Callback() *tele.Callback { return nil }

func (c *fakeContext) Get(key string) any { return c.store[key] }

func (c *fakeContext) Set(key string, val any) { c.store[key] = val }

func (c *fakeContext) Send(what any, _ ...any) error {
	c.sent = append(c.sent, what)
	return nil
}

func (c *fakeContext) Respond(_ ...*tele.CallbackResponse) error { return nil }

func TestTextRouteGatesAdminCommands(t *testing.T) {
	reg := tg.NewRegistry()

	var adminHits, startHits, rejections int
	reg.RegisterCommand("/admin", commands.Command{
		Handler:     func(tele.Context) error { adminHits++; return nil },
		Description: "Open the admin panel",
		AdminOnly:   true,
		Hidden:      true,
	})
	reg.RegisterCommand("/start", commands.Command{
		Handler:     func(tele.Context) error { startHits++; return nil },
		Description: "Main menu",
	})

	routes := TextRoutes(nil, reg, TextOptions{
		AdminIDs:      []int64{1},
		OnAdminReject: func(tele.Context) error { rejections++; return nil },
	})
	if len(routes) != 1 {
		t.Fatalf("routes = %d, want 1", len(routes))
	}
	handler := routes[0].Handler

	// Bare text that resolves to an admin command must still hit the gate.
	for _, text := range []string{"admin", "/admin"} {
		if err := handler(newFakeContext(555, text)); err != nil {
			t.Fatalf("handler(%q): %v", text, err)
		}
	}
	if adminHits != 0 {
		t.Fatalf("admin handler ran %d times for a non-admin", adminHits)
	}
	if rejections != 2 {
		t.Fatalf("rejections = %d, want 2", rejections)
	}

	if err := handler(newFakeContext(1, "admin")); err != nil {
		t.Fatalf("handler admin text: %v", err)
	}
	if adminHits != 1 {
		t.Fatalf("admin handler ran %d times for an allow-listed user", adminHits)
	}

	// Plain commands stay open to everyone.
	if err := handler(newFakeContext(555, "start")); err != nil {
		t.Fatalf("handler start text: %v", err)
	}
	if startHits != 1 {
		t.Fatalf("start handler ran %d times", startHits)
	}
}
