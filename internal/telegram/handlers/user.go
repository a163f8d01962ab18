package handlers

import (
	"log/slog"

	"github.com/itjamaat/jamaatbot/internal/logger"
	"github.com/itjamaat/jamaatbot/internal/models"
	"github.com/itjamaat/jamaatbot/internal/telegram/callbacks"
	tghelpers "github.com/itjamaat/jamaatbot/internal/telegram/helpers"
	"github.com/itjamaat/jamaatbot/internal/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

func mainMenuMarkup() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "📅 Events", Unique: cbMenuEvents},
			{Text: "👥 Mentors", Unique: cbMenuMentors},
		},
		[]keyboard.InlineBtn{
			{Text: "🎓 Lectures", Unique: cbMenuLectures},
			{Text: "💼 Vacancies", Unique: cbMenuVacancies},
		},
		[]keyboard.InlineBtn{
			{Text: "🚀 Projects", Unique: cbMenuProjects},
		},
	)
}

func backToMenuMarkup() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "⬅️ Back", Unique: cbMenuMain},
	})
}

// Start registers the sender and shows the main menu. Repeated /start
// refreshes the stored username.
func (h *Handlers) Start(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	user := c.Sender()
	if user == nil {
		return nil
	}

	u, err := h.svc.RegisterUser(ctx, user.ID, user.Username, tghelpers.FullName(user))
	if err != nil {
		logger.Error(ctx, "handlers", "start.register_failed",
			slog.String("err", err.Error()),
		)
		return c.Send("Something went wrong, try again later.")
	}

	return c.Send(mainMenuText(u.FullName), mainMenuMarkup())
}

// MenuMain redraws the main menu in place.
func (h *Handlers) MenuMain(c tele.Context) error {
	name := ""
	if u := c.Sender(); u != nil {
		name = tghelpers.FullName(u)
	}
	return editOrSend(c, mainMenuText(name), mainMenuMarkup())
}

// MenuEvents shows upcoming events.
func (h *Handlers) MenuEvents(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	events, err := h.svc.UpcomingEvents(ctx)
	if err != nil {
		return h.viewError(c, "events", err)
	}
	return editOrSend(c, eventsViewText(events), backToMenuMarkup())
}

// MenuMentors shows active mentors.
func (h *Handlers) MenuMentors(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	mentors, err := h.svc.ActiveMentors(ctx)
	if err != nil {
		return h.viewError(c, "mentors", err)
	}
	return editOrSend(c, mentorsViewText(mentors), backToMenuMarkup())
}

// MenuLectures shows the lecture category picker.
func (h *Handlers) MenuLectures(c tele.Context) error {
	buttons := make([]keyboard.InlineBtn, 0, len(models.LectureCategories)+1)
	for _, cat := range models.LectureCategories {
		buttons = append(buttons, keyboard.InlineBtn{
			Text: string(cat), Unique: cbLecturesCat, Data: string(cat),
		})
	}
	buttons = append(buttons, keyboard.InlineBtn{
		Text: "🗂 All", Unique: cbLecturesCat, Data: string(models.CategoryAll),
	})
	markup := keyboard.InlineButtonsNPerRow(buttons, 2)
	markup.InlineKeyboard = append(markup.InlineKeyboard,
		backToMenuMarkup().InlineKeyboard...)
	return editOrSend(c, "🎓 Pick a lecture category:", markup)
}

// LecturesCategory lists lectures for the chosen category.
func (h *Handlers) LecturesCategory(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	payload := callbacks.Payload(c)
	category := models.CategoryAll
	if payload != string(models.CategoryAll) {
		category = models.ParseLectureCategory(payload)
	}
	lectures, err := h.svc.Lectures(ctx, category)
	if err != nil {
		return h.viewError(c, "lectures", err)
	}
	markup := keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "⬅️ Back", Unique: cbMenuLectures},
	})
	return editOrSend(c, lecturesViewText(category, lectures), markup)
}

// MenuVacancies shows open vacancies.
func (h *Handlers) MenuVacancies(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	vacancies, err := h.svc.Vacancies(ctx)
	if err != nil {
		return h.viewError(c, "vacancies", err)
	}
	return editOrSend(c, vacanciesViewText(vacancies), backToMenuMarkup())
}

// MenuProjects shows community projects.
func (h *Handlers) MenuProjects(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	projects, err := h.svc.Projects(ctx)
	if err != nil {
		return h.viewError(c, "projects", err)
	}
	return editOrSend(c, projectsViewText(projects), backToMenuMarkup())
}

// UnknownText nudges users back to the menu for unrecognized messages.
func (h *Handlers) UnknownText(c tele.Context) error {
	return c.Send("I didn't get that. Use the menu:", mainMenuMarkup())
}

func (h *Handlers) viewError(c tele.Context, view string, err error) error {
	ctx := tghelpers.BuildContext(c)
	logger.Error(ctx, "handlers", "view.failed",
		slog.String("view", view),
		slog.String("err", err.Error()),
	)
	return editOrSend(c, "Something went wrong, try again later.", backToMenuMarkup())
}
