// Package handlers implements the bot's user and admin screens.
package handlers

import (
	"strconv"
	"strings"

	"github.com/itjamaat/jamaatbot/internal/flow"
	"github.com/itjamaat/jamaatbot/internal/service"
	tg "github.com/itjamaat/jamaatbot/internal/telegram"
	"github.com/itjamaat/jamaatbot/internal/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

// Handlers binds the service layer and flow manager to Telegram endpoints.
type Handlers struct {
	svc    *service.Service
	flows  *flow.Manager
	admins map[int64]struct{}
}

// New constructs the handler set. adminIDs is the static admin allow-list.
func New(svc *service.Service, flows *flow.Manager, adminIDs []int64) *Handlers {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return &Handlers{svc: svc, flows: flows, admins: admins}
}

// Flows exposes the flow manager for text routing.
func (h *Handlers) Flows() *flow.Manager { return h.flows }

func (h *Handlers) isAdmin(userID int64) bool {
	_, ok := h.admins[userID]
	return ok
}

// adminOnly gates callback handlers behind the allow-list. Command handlers
// are gated by router middleware instead.
func (h *Handlers) adminOnly(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		user := c.Sender()
		if user == nil || !h.isAdmin(user.ID) {
			return c.Respond(&tele.CallbackResponse{Text: "Admins only"})
		}
		return next(c)
	}
}

// Register wires every command and callback into the registry.
func (h *Handlers) Register(reg *tg.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.Start,
		Description: "Open the main menu",
	})
	reg.RegisterCommand("/admin", commands.Command{
		Handler:     h.AdminPanel,
		Description: "Open the admin panel",
		AdminOnly:   true,
		Hidden:      true,
	})

	// User navigation.
	_ = reg.RegisterCallback(cbMenuMain, h.MenuMain)
	_ = reg.RegisterCallback(cbMenuEvents, h.MenuEvents)
	_ = reg.RegisterCallback(cbMenuMentors, h.MenuMentors)
	_ = reg.RegisterCallback(cbMenuLectures, h.MenuLectures)
	_ = reg.RegisterCallback(cbLecturesCat, h.LecturesCategory)
	_ = reg.RegisterCallback(cbMenuVacancies, h.MenuVacancies)
	_ = reg.RegisterCallback(cbMenuProjects, h.MenuProjects)

	// Admin panel and flows.
	_ = reg.RegisterCallback(cbAdminPanel, h.adminOnly(h.AdminPanelCallback))
	_ = reg.RegisterCallback(cbAddMentor, h.adminOnly(h.AddMentorStart))
	_ = reg.RegisterCallback(cbAddEvent, h.adminOnly(h.AddEventStart))
	_ = reg.RegisterCallback(cbFlowCancel, h.adminOnly(h.FlowCancel))
	_ = reg.RegisterCallback(cbFlowMentor, h.adminOnly(h.FlowMentorInput))

	_ = reg.RegisterCallback(cbEditEvent, h.adminOnly(h.EditEventList))
	_ = reg.RegisterCallback(cbEditEventPick, h.adminOnly(h.EditEventFields))
	_ = reg.RegisterCallback(cbEditEventField, h.adminOnly(h.EditEventFieldStart))

	_ = reg.RegisterCallback(cbAssign, h.adminOnly(h.AssignMentorEvents))
	_ = reg.RegisterCallback(cbAssignPick, h.adminOnly(h.AssignMentorChoices))
	_ = reg.RegisterCallback(cbAssignSet, h.adminOnly(h.AssignMentorCommit))

	_ = reg.RegisterCallback(cbDelEvent, h.adminOnly(h.DeleteEventList))
	_ = reg.RegisterCallback(cbDelEventPick, h.adminOnly(h.DeleteEventConfirm))
	_ = reg.RegisterCallback(cbDelEventDo, h.adminOnly(h.DeleteEventCommit))

	_ = reg.RegisterCallback(cbDelMentor, h.adminOnly(h.DeleteMentorList))
	_ = reg.RegisterCallback(cbDelMentorPick, h.adminOnly(h.DeleteMentorConfirm))
	_ = reg.RegisterCallback(cbDelMentorDo, h.adminOnly(h.DeleteMentorCommit))

	_ = reg.RegisterCallback(cbStats, h.adminOnly(h.Stats))
	_ = reg.RegisterCallback(cbStatsDetailed, h.adminOnly(h.StatsDetailed))
	_ = reg.RegisterCallback(cbStatsDaily, h.adminOnly(h.StatsDaily))

	reg.SetTextFallback(h.UnknownText)
}

// Callback uniques. Payloads ride after '|' in Telebot's encoding.
const (
	cbMenuMain      = "menu_main"
	cbMenuEvents    = "menu_events"
	cbMenuMentors   = "menu_mentors"
	cbMenuLectures  = "menu_lectures"
	cbLecturesCat   = "lectures_cat"
	cbMenuVacancies = "menu_vacancies"
	cbMenuProjects  = "menu_projects"

	cbAdminPanel = "admin_panel"
	cbAddMentor  = "adm_add_mentor"
	cbAddEvent   = "adm_add_event"
	cbFlowCancel = "flow_cancel"
	cbFlowMentor = "flow_mentor"

	cbEditEvent      = "adm_edit_event"
	cbEditEventPick  = "adm_edit_pick"
	cbEditEventField = "adm_edit_field"

	cbAssign     = "adm_assign"
	cbAssignPick = "adm_assign_pick"
	cbAssignSet  = "adm_assign_set"

	cbDelEvent     = "adm_del_event"
	cbDelEventPick = "adm_del_event_pick"
	cbDelEventDo   = "adm_del_event_do"

	cbDelMentor     = "adm_del_mentor"
	cbDelMentorPick = "adm_del_mentor_pick"
	cbDelMentorDo   = "adm_del_mentor_do"

	cbStats         = "adm_stats"
	cbStatsDetailed = "adm_stats_detailed"
	cbStatsDaily    = "adm_stats_daily"
)

// editOrSend edits the callback message in place, falling back to a fresh
// message when the original cannot be edited.
func editOrSend(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if c.Callback() != nil {
		if err := c.Edit(text, markup); err == nil {
			return nil
		}
	}
	return c.Send(text, markup)
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
