package handlers

import (
	"errors"
	"strings"
	"time"

	"log/slog"

	"github.com/itjamaat/jamaatbot/internal/flow"
	"github.com/itjamaat/jamaatbot/internal/logger"
	"github.com/itjamaat/jamaatbot/internal/storage"
	"github.com/itjamaat/jamaatbot/internal/telegram/callbacks"
	tghelpers "github.com/itjamaat/jamaatbot/internal/telegram/helpers"
	"github.com/itjamaat/jamaatbot/internal/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

const (
	flowAddMentor       = "add_mentor"
	flowAddEvent        = "add_event"
	flowEditEventPrefix = "edit_event."
)

const promptEventMentor = "Pick a mentor for the event:"

var addMentorDef = &flow.Definition{
	Name: flowAddMentor,
	Steps: []flow.Step{
		{Field: "name", Prompt: "Send the mentor's name:", Validate: flow.Text},
		{Field: "specialization", Prompt: "Send the specialization:", Validate: flow.Text},
		{Field: "bio", Prompt: "Send a short bio:", Validate: flow.Text},
		{Field: "contact", Prompt: "Send contact info:", Validate: flow.Text},
	},
}

var addEventDef = &flow.Definition{
	Name: flowAddEvent,
	Steps: []flow.Step{
		{Field: "title", Prompt: "Send the event title:", Validate: flow.Text},
		{Field: "description", Prompt: "Send the event description:", Validate: flow.Text},
		{Field: "date_time", Prompt: "Send the date and time (DD.MM.YYYY HH:MM):", Validate: flow.DateTime},
		{Field: "location", Prompt: "Send the location:", Validate: flow.Text},
		{Field: "mentor", Prompt: promptEventMentor, Validate: flow.MentorChoice},
	},
}

func editEventDef(field storage.EventField) *flow.Definition {
	return &flow.Definition{
		Name: flowEditEventPrefix + string(field),
		Steps: []flow.Step{
			{Field: string(field), Prompt: editFieldPrompt(field), Validate: editFieldValidator(field)},
		},
	}
}

func cancelMarkup() *tele.ReplyMarkup {
	return keyboard.SingleCancelMarkup(cbFlowCancel)
}

// AddMentorStart opens the add-mentor flow.
func (h *Handlers) AddMentorStart(c tele.Context) error {
	prompt := h.flows.Start(c.Sender().ID, addMentorDef, 0)
	return c.Send(prompt, cancelMarkup())
}

// AddEventStart opens the add-event flow.
func (h *Handlers) AddEventStart(c tele.Context) error {
	prompt := h.flows.Start(c.Sender().ID, addEventDef, 0)
	return c.Send(prompt, cancelMarkup())
}

// EditEventFieldStart opens a single-step flow collecting the new value for
// one event field. The payload carries "<eventID>:<field>".
func (h *Handlers) EditEventFieldStart(c tele.Context) error {
	payload := callbacks.Payload(c)
	idPart, fieldPart, ok := strings.Cut(payload, ":")
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Bad selection"})
	}
	eventID, err := parseID(idPart)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Bad selection"})
	}
	field, ok := editableField(fieldPart)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Bad selection"})
	}

	prompt := h.flows.Start(c.Sender().ID, editEventDef(field), eventID)
	return c.Send(prompt, cancelMarkup())
}

// FlowCancel discards the sender's active flow.
func (h *Handlers) FlowCancel(c tele.Context) error {
	h.flows.Cancel(c.Sender().ID)
	return editOrSend(c, "Cancelled.", adminPanelMarkup())
}

// FlowMentorInput feeds a mentor-selection callback into the active flow.
func (h *Handlers) FlowMentorInput(c tele.Context) error {
	return h.advance(c, callbacks.Payload(c))
}

// HandleText feeds a text message into the sender's active flow. It is called
// by the text router only when a flow is in progress.
func (h *Handlers) HandleText(c tele.Context) error {
	return h.advance(c, c.Text())
}

// InProgress reports whether the sender has an active flow.
func (h *Handlers) InProgress(userID int64) bool {
	return h.flows.InProgress(userID)
}

func (h *Handlers) advance(c tele.Context, input string) error {
	userID := c.Sender().ID

	res, err := h.flows.Advance(userID, input)
	switch {
	case errors.Is(err, flow.ErrBusy):
		return c.Send("⏳ Hold on, still processing your previous message.")
	case errors.Is(err, flow.ErrNoSession):
		return nil
	case err != nil:
		return err
	}

	switch res.Kind {
	case flow.Retry:
		markup, err := h.stepMarkup(c, res)
		if err != nil {
			return err
		}
		return c.Send("⚠️ "+res.Err.Error()+"\n\n"+res.Prompt, markup)
	case flow.Next:
		markup, err := h.stepMarkup(c, res)
		if err != nil {
			return err
		}
		return c.Send(res.Prompt, markup)
	case flow.Done:
		return h.commit(c, res)
	}
	return nil
}

// stepMarkup picks the keyboard that belongs to the prompted step: the
// mentor picker on the add-event mentor step, the cancel button everywhere
// else. Retries re-render the same keyboard as the first prompt.
func (h *Handlers) stepMarkup(c tele.Context, res flow.Result) (*tele.ReplyMarkup, error) {
	if res.Flow == flowAddEvent && res.Prompt == promptEventMentor {
		return h.mentorChoiceMarkup(c)
	}
	return cancelMarkup(), nil
}

// mentorChoiceMarkup lists active mentors plus a "no mentor" option for the
// add-event flow's final step.
func (h *Handlers) mentorChoiceMarkup(c tele.Context) (*tele.ReplyMarkup, error) {
	ctx := tghelpers.BuildContext(c)
	mentors, err := h.svc.ActiveMentors(ctx)
	if err != nil {
		return nil, err
	}
	buttons := make([]keyboard.InlineBtn, 0, len(mentors)+1)
	for _, m := range mentors {
		buttons = append(buttons, keyboard.InlineBtn{
			Text: m.Name, Unique: cbFlowMentor, Data: formatID(m.ID),
		})
	}
	buttons = append(buttons, keyboard.InlineBtn{
		Text: "🚫 No mentor", Unique: cbFlowMentor, Data: flow.MentorNone,
	})
	markup := keyboard.InlineButtons(buttons)
	markup.InlineKeyboard = append(markup.InlineKeyboard,
		keyboard.SingleCancelMarkup(cbFlowCancel).InlineKeyboard...)
	return markup, nil
}

func (h *Handlers) commit(c tele.Context, res flow.Result) error {
	ctx := tghelpers.BuildContext(c)

	switch {
	case res.Flow == flowAddMentor:
		_, err := h.svc.CreateMentor(ctx,
			res.Fields["name"].(string),
			res.Fields["specialization"].(string),
			res.Fields["bio"].(string),
			res.Fields["contact"].(string),
		)
		if err != nil {
			return h.commitError(c, res.Flow, err)
		}
		return c.Send("✅ Mentor added.", adminPanelMarkup())

	case res.Flow == flowAddEvent:
		sender := c.Sender()
		creator, err := h.svc.RegisterUser(ctx, sender.ID, sender.Username, tghelpers.FullName(sender))
		if err != nil {
			return h.commitError(c, res.Flow, err)
		}
		_, err = h.svc.CreateEvent(ctx,
			res.Fields["title"].(string),
			res.Fields["description"].(string),
			res.Fields["date_time"].(time.Time),
			res.Fields["location"].(string),
			res.Fields["mentor"].(*int64),
			creator.ID,
		)
		if err != nil {
			return h.commitError(c, res.Flow, err)
		}
		return c.Send("✅ Event added.", adminPanelMarkup())

	case strings.HasPrefix(res.Flow, flowEditEventPrefix):
		field := storage.EventField(strings.TrimPrefix(res.Flow, flowEditEventPrefix))
		value := res.Fields[string(field)]
		if err := h.svc.UpdateEventField(ctx, res.TargetID, field, value); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return c.Send("⚠️ That event no longer exists.", adminPanelMarkup())
			}
			return h.commitError(c, res.Flow, err)
		}
		return c.Send("✅ Event updated.", adminPanelMarkup())
	}

	logger.Warn(ctx, "handlers", "flow.unknown",
		slog.String("flow", res.Flow),
	)
	return nil
}

func (h *Handlers) commitError(c tele.Context, flowName string, err error) error {
	ctx := tghelpers.BuildContext(c)
	logger.Error(ctx, "handlers", "flow.commit_failed",
		slog.String("flow", flowName),
		slog.String("err", err.Error()),
	)
	return c.Send("Something went wrong, nothing was saved.", adminPanelMarkup())
}
