package router

import (
	"time"

	tg "github.com/itjamaat/jamaatbot/internal/telegram"
	"github.com/itjamaat/jamaatbot/internal/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// Conversation is the minimal interface of an in-progress flow dispatcher.
// Text updates are offered to it before command lookup so that an active
// multi-step flow always wins.
type Conversation interface {
	InProgress(userID int64) bool
	HandleText(c tele.Context) error
}

// TextOptions controls fallback behaviour for text updates. AdminIDs gates
// slash-less lookups of admin-only commands the same way CommandRoutes gates
// the registered endpoints.
type TextOptions struct {
	AdminIDs      []int64
	OnAdminReject tele.HandlerFunc
	UnknownText   tele.HandlerFunc
}

// TextRoutes builds the tele.OnText route: active flow first, then command
// lookup, then the registry fallback.
func TextRoutes(conv Conversation, reg *tg.Registry, opts TextOptions) []tg.Route {
	adminGate := middleware.AdminOnlyMiddleware(middleware.AdminOptions{
		AdminIDs: opts.AdminIDs,
		OnReject: opts.OnAdminReject,
	})

	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if conv != nil && conv.InProgress(c.Sender().ID) {
			return handleWithSummary(c, "flow", start, func() error {
				return conv.HandleText(c)
			})
		}

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
				name := normalizeHandlerName(key)
				h := cmd.Handler
				if cmd.AdminOnly {
					h = adminGate(h)
				}
				return handleWithSummary(c, name, start, func() error {
					return h(c)
				})
			}
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, nil)
		return nil
	}

	return []tg.Route{
		{
			Endpoint: tele.OnText,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
		},
	}
}
