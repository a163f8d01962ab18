// Package callbacks parses Telebot's \f<unique>|<payload> callback encoding.
package callbacks

import (
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"
)

// ParseCallbackData parses Telebot's \f<unique>|<payload> encoding.
// Returns unique and payload (may be empty).
func ParseCallbackData(cb *tele.Callback) (string, string) {
	if cb == nil {
		return "", ""
	}
	raw := strings.TrimPrefix(cb.Data, "\\f")
	parts := strings.SplitN(raw, "|", 2)
	unique := strings.TrimSpace(parts[0])
	payload := ""
	if len(parts) == 2 {
		payload = parts[1]
	}
	return unique, payload
}

// Key returns cb.Unique if present; otherwise parses from Data.
func Key(c tele.Context) string {
	cb := c.Callback()
	if cb == nil {
		return ""
	}
	if cb.Unique != "" {
		return cb.Unique
	}
	k, _ := ParseCallbackData(cb)
	return k
}

// Payload returns the payload (after '|') parsed from Data.
// cb.Data is preferred since cb.Unique may be empty in generic OnCallback.
func Payload(c tele.Context) string {
	cb := c.Callback()
	if cb == nil {
		return ""
	}
	_, payload := ParseCallbackData(cb)
	return payload
}

// PayloadInt64 parses the callback payload as int64.
func PayloadInt64(c tele.Context) (int64, error) {
	return strconv.ParseInt(Payload(c), 10, 64)
}

// PayloadTwoInt64 parses a callback payload like "12:34" into two int64 values.
func PayloadTwoInt64(c tele.Context, sep string) (int64, int64, error) {
	parts := strings.Split(Payload(c), sep)
	if len(parts) != 2 {
		return 0, 0, strconv.ErrSyntax
	}
	a, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
