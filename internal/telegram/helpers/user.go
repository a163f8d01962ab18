package helpers

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// FullName joins the sender's first and last name for persistence.
func FullName(u *tele.User) string {
	if u == nil {
		return ""
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.Username
	}
	return name
}
