package middleware

import (
	"context"

	tghelpers "github.com/itjamaat/jamaatbot/internal/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

func tghCtx(c tele.Context) context.Context {
	return tghelpers.BuildContext(c)
}
