package handlers

import (
	"errors"
	"fmt"

	"log/slog"

	"github.com/itjamaat/jamaatbot/internal/logger"
	"github.com/itjamaat/jamaatbot/internal/storage"
	"github.com/itjamaat/jamaatbot/internal/telegram/callbacks"
	tghelpers "github.com/itjamaat/jamaatbot/internal/telegram/helpers"
	"github.com/itjamaat/jamaatbot/internal/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

const adminPanelText = "🛠 Admin panel"

func adminPanelMarkup() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "➕ Add mentor", Unique: cbAddMentor},
			{Text: "➕ Add event", Unique: cbAddEvent},
		},
		[]keyboard.InlineBtn{
			{Text: "✏️ Edit event", Unique: cbEditEvent},
			{Text: "👤 Assign mentor", Unique: cbAssign},
		},
		[]keyboard.InlineBtn{
			{Text: "🗑 Delete event", Unique: cbDelEvent},
			{Text: "🗑 Delete mentor", Unique: cbDelMentor},
		},
		[]keyboard.InlineBtn{
			{Text: "📊 Statistics", Unique: cbStats},
		},
	)
}

func backToPanelMarkup() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "⬅️ Back", Unique: cbAdminPanel},
	})
}

// AdminPanel handles the /admin command. Any in-progress flow of the sender
// is discarded so the panel always starts clean.
func (h *Handlers) AdminPanel(c tele.Context) error {
	h.flows.Cancel(c.Sender().ID)
	return c.Send(adminPanelText, adminPanelMarkup())
}

// AdminPanelCallback redraws the panel from a back button.
func (h *Handlers) AdminPanelCallback(c tele.Context) error {
	h.flows.Cancel(c.Sender().ID)
	return editOrSend(c, adminPanelText, adminPanelMarkup())
}

// eventPickList renders active events as one button per row.
func (h *Handlers) eventPickList(c tele.Context, title, unique string) error {
	ctx := tghelpers.BuildContext(c)
	events, err := h.svc.ActiveEvents(ctx)
	if err != nil {
		return h.adminError(c, "event_list", err)
	}
	if len(events) == 0 {
		return editOrSend(c, "No active events.", backToPanelMarkup())
	}
	buttons := make([]keyboard.InlineBtn, 0, len(events))
	for _, e := range events {
		buttons = append(buttons, keyboard.InlineBtn{
			Text: eventButtonLabel(e), Unique: unique, Data: formatID(e.ID),
		})
	}
	markup := keyboard.InlineButtons(buttons)
	markup.InlineKeyboard = append(markup.InlineKeyboard,
		backToPanelMarkup().InlineKeyboard...)
	return editOrSend(c, title, markup)
}

// EditEventList shows the events available for editing.
func (h *Handlers) EditEventList(c tele.Context) error {
	return h.eventPickList(c, "✏️ Pick an event to edit:", cbEditEventPick)
}

// EditEventFields shows the field picker for one event.
func (h *Handlers) EditEventFields(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	id, err := callbacks.PayloadInt64(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Bad selection"})
	}
	event, err := h.svc.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return editOrSend(c, "⚠️ That event no longer exists.", backToPanelMarkup())
		}
		return h.adminError(c, "edit_event", err)
	}

	buttons := make([]keyboard.InlineBtn, 0, len(editableFieldLabels)+1)
	for _, f := range editableFieldLabels {
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   f.Label,
			Unique: cbEditEventField,
			Data:   fmt.Sprintf("%d:%s", id, f.Field),
		})
	}
	// The mentor field routes through the assignment picker instead of a
	// free-text step.
	buttons = append(buttons, keyboard.InlineBtn{
		Text:   "👤 Mentor",
		Unique: cbAssignPick,
		Data:   formatID(id),
	})
	markup := keyboard.InlineButtonsNPerRow(buttons, 2)
	markup.InlineKeyboard = append(markup.InlineKeyboard,
		backToPanelMarkup().InlineKeyboard...)

	return editOrSend(c, "✏️ What to change?\n\n"+eventSummaryText(event), markup)
}

// AssignMentorEvents shows the events available for mentor assignment.
func (h *Handlers) AssignMentorEvents(c tele.Context) error {
	return h.eventPickList(c, "👤 Pick an event:", cbAssignPick)
}

// AssignMentorChoices shows the mentor picker for one event. The currently
// assigned mentor is marked.
func (h *Handlers) AssignMentorChoices(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	id, err := callbacks.PayloadInt64(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Bad selection"})
	}
	event, err := h.svc.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return editOrSend(c, "⚠️ That event no longer exists.", backToPanelMarkup())
		}
		return h.adminError(c, "assign_mentor", err)
	}
	mentors, err := h.svc.ActiveMentors(ctx)
	if err != nil {
		return h.adminError(c, "assign_mentor", err)
	}

	buttons := make([]keyboard.InlineBtn, 0, len(mentors)+1)
	for _, m := range mentors {
		label := m.Name
		if event.MentorID != nil && *event.MentorID == m.ID {
			label = "✅ " + label
		}
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   label,
			Unique: cbAssignSet,
			Data:   fmt.Sprintf("%d:%d", id, m.ID),
		})
	}
	noLabel := "🚫 No mentor"
	if event.MentorID == nil {
		noLabel = "✅ " + noLabel
	}
	buttons = append(buttons, keyboard.InlineBtn{
		Text:   noLabel,
		Unique: cbAssignSet,
		Data:   fmt.Sprintf("%d:0", id),
	})
	markup := keyboard.InlineButtons(buttons)
	markup.InlineKeyboard = append(markup.InlineKeyboard,
		backToPanelMarkup().InlineKeyboard...)

	return editOrSend(c, "👤 Pick a mentor for:\n\n"+eventSummaryText(event), markup)
}

// AssignMentorCommit applies the "<eventID>:<mentorID>" selection. Mentor id
// 0 clears the assignment.
func (h *Handlers) AssignMentorCommit(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	eventID, picked, err := callbacks.PayloadTwoInt64(c, ":")
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Bad selection"})
	}

	var mentorID *int64
	if picked != 0 {
		mentorID = &picked
	}

	name, err := h.svc.AssignMentor(ctx, eventID, mentorID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return editOrSend(c, "⚠️ That event or mentor no longer exists.", backToPanelMarkup())
		}
		return h.adminError(c, "assign_mentor", err)
	}
	if mentorID == nil {
		return editOrSend(c, "✅ Mentor cleared.", backToPanelMarkup())
	}
	return editOrSend(c, "✅ Assigned "+name+".", backToPanelMarkup())
}

// DeleteEventList shows the events available for deletion.
func (h *Handlers) DeleteEventList(c tele.Context) error {
	return h.eventPickList(c, "🗑 Pick an event to delete:", cbDelEventPick)
}

// DeleteEventConfirm shows the confirmation screen for one event.
func (h *Handlers) DeleteEventConfirm(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	id, err := callbacks.PayloadInt64(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Bad selection"})
	}
	event, err := h.svc.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return editOrSend(c, "⚠️ That event no longer exists.", backToPanelMarkup())
		}
		return h.adminError(c, "delete_event", err)
	}
	markup := keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "✅ Yes, delete", Unique: cbDelEventDo, Data: formatID(id)},
		},
		[]keyboard.InlineBtn{
			{Text: "⬅️ Back", Unique: cbAdminPanel},
		},
	)
	return editOrSend(c, "Delete this event?\n\n"+eventSummaryText(event), markup)
}

// DeleteEventCommit soft-deletes the confirmed event.
func (h *Handlers) DeleteEventCommit(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	id, err := callbacks.PayloadInt64(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Bad selection"})
	}
	if err := h.svc.DeleteEvent(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return editOrSend(c, "⚠️ Already deleted.", backToPanelMarkup())
		}
		return h.adminError(c, "delete_event", err)
	}
	return editOrSend(c, "✅ Event deleted.", backToPanelMarkup())
}

// DeleteMentorList shows active mentors available for deletion.
func (h *Handlers) DeleteMentorList(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	mentors, err := h.svc.ActiveMentors(ctx)
	if err != nil {
		return h.adminError(c, "mentor_list", err)
	}
	if len(mentors) == 0 {
		return editOrSend(c, "No active mentors.", backToPanelMarkup())
	}
	buttons := make([]keyboard.InlineBtn, 0, len(mentors))
	for _, m := range mentors {
		buttons = append(buttons, keyboard.InlineBtn{
			Text: truncate(m.Name, buttonLabelMax), Unique: cbDelMentorPick, Data: formatID(m.ID),
		})
	}
	markup := keyboard.InlineButtons(buttons)
	markup.InlineKeyboard = append(markup.InlineKeyboard,
		backToPanelMarkup().InlineKeyboard...)
	return editOrSend(c, "🗑 Pick a mentor to delete:", markup)
}

// DeleteMentorConfirm shows the confirmation screen for one mentor.
func (h *Handlers) DeleteMentorConfirm(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	id, err := callbacks.PayloadInt64(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Bad selection"})
	}
	mentor, err := h.svc.GetMentor(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return editOrSend(c, "⚠️ That mentor no longer exists.", backToPanelMarkup())
		}
		return h.adminError(c, "delete_mentor", err)
	}
	markup := keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "✅ Yes, delete", Unique: cbDelMentorDo, Data: formatID(id)},
		},
		[]keyboard.InlineBtn{
			{Text: "⬅️ Back", Unique: cbAdminPanel},
		},
	)
	text := fmt.Sprintf("Delete this mentor?\n\n🔹 %s — %s\nEvents keep their history.",
		mentor.Name, mentor.Specialization)
	return editOrSend(c, text, markup)
}

// DeleteMentorCommit soft-deletes the confirmed mentor.
func (h *Handlers) DeleteMentorCommit(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	id, err := callbacks.PayloadInt64(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Bad selection"})
	}
	if err := h.svc.DeleteMentor(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return editOrSend(c, "⚠️ Already deleted.", backToPanelMarkup())
		}
		return h.adminError(c, "delete_mentor", err)
	}
	return editOrSend(c, "✅ Mentor deleted.", backToPanelMarkup())
}

func statsMarkup() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "📈 Detailed", Unique: cbStatsDetailed},
			{Text: "📆 Daily", Unique: cbStatsDaily},
		},
		[]keyboard.InlineBtn{
			{Text: "⬅️ Back", Unique: cbAdminPanel},
		},
	)
}

func backToStatsMarkup() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "⬅️ Back", Unique: cbStats},
	})
}

// Stats shows the top-level community counters.
func (h *Handlers) Stats(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	st, err := h.svc.Statistics(ctx)
	if err != nil {
		return h.adminError(c, "stats", err)
	}
	return editOrSend(c, statsViewText(st), statsMarkup())
}

// StatsDetailed shows the 30-day breakdown with top mentors.
func (h *Handlers) StatsDetailed(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	st, err := h.svc.Statistics(ctx)
	if err != nil {
		return h.adminError(c, "stats", err)
	}
	return editOrSend(c, detailedStatsViewText(st), backToStatsMarkup())
}

// StatsDaily shows the today/yesterday/week activity.
func (h *Handlers) StatsDaily(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	st, err := h.svc.Statistics(ctx)
	if err != nil {
		return h.adminError(c, "stats", err)
	}
	return editOrSend(c, dailyStatsViewText(st), backToStatsMarkup())
}

func (h *Handlers) adminError(c tele.Context, action string, err error) error {
	ctx := tghelpers.BuildContext(c)
	logger.Error(ctx, "handlers", "admin.failed",
		slog.String("action", action),
		slog.String("err", err.Error()),
	)
	return editOrSend(c, "Something went wrong, try again later.", backToPanelMarkup())
}
