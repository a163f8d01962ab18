package middleware

import (
	"log/slog"

	"github.com/itjamaat/jamaatbot/internal/logger"

	tele "gopkg.in/telebot.v4"
)

// AdminOptions defines how admin-only checks behave. AdminIDs is the static
// allow-list of Telegram user IDs permitted to run admin commands.
type AdminOptions struct {
	AdminIDs []int64
	OnReject tele.HandlerFunc
}

func (o AdminOptions) allowed(userID int64) bool {
	for _, id := range o.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// AdminOnlyMiddleware ensures that only allow-listed users reach downstream
// handlers. An empty allow-list rejects everyone.
func AdminOnlyMiddleware(opts AdminOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil || !opts.allowed(user.ID) {
				attrs := []slog.Attr{slog.String("status", "denied")}
				if user != nil {
					attrs = append(attrs, slog.Int64("user_id", user.ID))
				}
				logger.Warn(tghCtx(c), "tg", "admin.denied", attrs...)
				if opts.OnReject != nil {
					return opts.OnReject(c)
				}
				return nil
			}
			return next(c)
		}
	}
}
