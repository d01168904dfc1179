package api

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/coachdesk/internal/logging"
	"github.com/terraincognita07/coachdesk/internal/models"
	"github.com/terraincognita07/coachdesk/internal/services"
	"go.uber.org/zap"
)

type supportTicketsPageData struct {
	Tickets  []models.SupportTicket `json:"tickets"`
	Status   string                 `json:"status,omitempty"`
	Statuses []string               `json:"statuses"`
}

type impersonationPageData struct {
	Query string               `json:"query"`
	Users []models.UserSummary `json:"users"`
}

func (handler *Handler) ShowFeatureFlags(c *fiber.Ctx) error {
	flags, err := handler.services.FeatureFlags.List(c.UserContext(), sessionToken(c))
	if err != nil {
		return handler.pageError(c, "feature_flags", "Feature flags", err)
	}
	return handler.respond(c, fiber.StatusOK, "feature_flags", View{
		Title: "Feature flags",
		State: readyOrEmpty(len(flags)),
		Data:  flags,
	})
}

// ToggleFeatureFlag shows the local change right away; a failed save is
// reported next to it and the next load shows the backend's state.
func (handler *Handler) ToggleFeatureFlag(c *fiber.Ctx) error {
	ctx := c.UserContext()
	token := sessionToken(c)

	flags, err := handler.services.FeatureFlags.List(ctx, token)
	if err != nil {
		return handler.actionError(c, "/admin/feature-flags", err)
	}
	enabled, err := strconv.ParseBool(strings.TrimSpace(c.FormValue("enabled")))
	if err != nil {
		return handler.actionError(c, "/admin/feature-flags", errors.New("enabled must be true or false"))
	}

	updated, err := handler.services.FeatureFlags.Toggle(ctx, token, flags, c.Params("key"), enabled)
	switch {
	case err == nil:
		return handler.actionDone(c, "/admin/feature-flags", "Feature flag updated.", updated)
	case isSessionError(err):
		return handler.expireSession(c)
	case errors.Is(err, services.ErrFeatureFlagNotFound):
		return handler.actionError(c, "/admin/feature-flags", err)
	}

	logging.L().Warn("feature flag save failed", zap.String("key", c.Params("key")), zap.Error(err))
	message := "The change is shown but could not be saved: " + errorMessage(err)
	return handler.respond(c, statusForError(err), "feature_flags", View{
		Title: "Feature flags",
		State: ViewReady,
		Error: message,
		Toast: errorToast(message),
		Data:  updated,
	})
}

func (handler *Handler) ShowAgentOverrides(c *fiber.Ctx) error {
	overrides, err := handler.services.AgentOverride.List(c.UserContext(), sessionToken(c))
	if err != nil {
		return handler.pageError(c, "agent_overrides", "Agent overrides", err)
	}
	return handler.respond(c, fiber.StatusOK, "agent_overrides", View{
		Title: "Agent overrides",
		State: readyOrEmpty(len(overrides)),
		Data:  overrides,
	})
}

func (handler *Handler) SetAgentOverride(c *fiber.Ctx) error {
	override, err := handler.services.AgentOverride.Set(c.UserContext(), sessionToken(c),
		c.FormValue("user_id"), c.FormValue("agent_id"), c.FormValue("reason"))
	if err != nil {
		return handler.actionError(c, "/admin/agent-overrides", err)
	}
	return handler.actionDone(c, "/admin/agent-overrides", "Agent override saved.", override)
}

func (handler *Handler) ClearAgentOverride(c *fiber.Ctx) error {
	if err := handler.services.AgentOverride.Clear(c.UserContext(), sessionToken(c), c.Params("user_id")); err != nil {
		return handler.actionError(c, "/admin/agent-overrides", err)
	}
	return handler.actionDone(c, "/admin/agent-overrides", "Agent override cleared.", nil)
}

func (handler *Handler) ShowSupportTickets(c *fiber.Ctx) error {
	tickets, err := handler.services.Support.List(c.UserContext(), sessionToken(c))
	if err != nil {
		return handler.pageError(c, "support_tickets", "Support tickets", err)
	}
	status := strings.TrimSpace(c.Query("status"))
	filtered := services.FilterTicketsByStatus(tickets, status)
	return handler.respond(c, fiber.StatusOK, "support_tickets", View{
		Title: "Support tickets",
		State: readyOrEmpty(len(filtered)),
		Data: supportTicketsPageData{
			Tickets:  filtered,
			Status:   status,
			Statuses: services.TicketStatuses(),
		},
	})
}

func (handler *Handler) UpdateSupportTicketStatus(c *fiber.Ctx) error {
	if err := handler.services.Support.UpdateStatus(c.UserContext(), sessionToken(c), c.Params("id"), c.FormValue("status")); err != nil {
		return handler.actionError(c, "/admin/support-tickets", err)
	}
	return handler.actionDone(c, "/admin/support-tickets", "Ticket updated.", nil)
}

func (handler *Handler) ShowChurnRisk(c *fiber.Ctx) error {
	risks, err := handler.services.ChurnRisk.List(c.UserContext(), sessionToken(c))
	if err != nil {
		return handler.pageError(c, "churn_risk", "Churn risk", err)
	}
	return handler.respond(c, fiber.StatusOK, "churn_risk", View{
		Title: "Churn risk",
		State: readyOrEmpty(len(risks)),
		Data:  risks,
	})
}

func (handler *Handler) ShowRefunds(c *fiber.Ctx) error {
	refunds, err := handler.services.Refunds.List(c.UserContext(), sessionToken(c))
	if err != nil {
		return handler.pageError(c, "refunds", "Refunds", err)
	}
	return handler.respond(c, fiber.StatusOK, "refunds", View{
		Title: "Refunds",
		State: readyOrEmpty(len(refunds)),
		Data:  refunds,
	})
}

func (handler *Handler) IssueRefund(c *fiber.Ctx) error {
	amount, err := parseAmountCents(c.FormValue("amount"))
	if err != nil {
		return handler.actionError(c, "/admin/refunds", services.ErrRefundAmountInvalid)
	}
	refund, err := handler.services.Refunds.Issue(c.UserContext(), sessionToken(c), services.RefundInput{
		UserID:      c.FormValue("user_id"),
		AmountCents: amount,
		Currency:    c.FormValue("currency"),
		Reason:      c.FormValue("reason"),
	})
	if err != nil {
		return handler.actionError(c, "/admin/refunds", err)
	}
	return handler.actionDone(c, "/admin/refunds", "Refund issued.", refund)
}

func (handler *Handler) ShowImpersonation(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	data := impersonationPageData{Query: query, Users: []models.UserSummary{}}
	if query == "" {
		return handler.respond(c, fiber.StatusOK, "impersonation", View{Title: "Impersonation", State: ViewEmpty, Data: data})
	}

	users, err := handler.services.Impersonation.SearchUsers(c.UserContext(), sessionToken(c), query)
	if errors.Is(err, services.ErrSearchQueryTooShort) {
		return handler.respond(c, fiber.StatusOK, "impersonation", View{
			Title: "Impersonation",
			State: ViewEmpty,
			Error: err.Error(),
			Data:  data,
		})
	}
	if err != nil {
		return handler.pageError(c, "impersonation", "Impersonation", err)
	}
	data.Users = users
	return handler.respond(c, fiber.StatusOK, "impersonation", View{
		Title: "Impersonation",
		State: readyOrEmpty(len(users)),
		Data:  data,
	})
}

// Impersonate swaps the browser session for the target user's token.
func (handler *Handler) Impersonate(c *fiber.Ctx) error {
	token, err := handler.services.Impersonation.Impersonate(c.UserContext(), sessionToken(c), c.Params("user_id"))
	if err != nil {
		return handler.actionError(c, "/admin/impersonation", err)
	}
	if err := handler.cookieStore(c).Save(c.UserContext(), token); err != nil {
		return handler.actionError(c, "/admin/impersonation", err)
	}
	logging.L().Info("admin impersonation started", zap.String("target", c.Params("user_id")))
	return handler.actionDone(c, "/dashboard", "You are now viewing the app as this user.", nil)
}

// parseAmountCents reads an unsigned decimal amount such as "12.5" into cents.
func parseAmountCents(raw string) (int64, error) {
	whole, fraction, _ := strings.Cut(strings.TrimSpace(raw), ".")
	if !isDigits(whole) || (fraction != "" && !isDigits(fraction)) {
		return 0, errors.New("invalid amount")
	}
	if len(fraction) > 2 {
		return 0, errors.New("amount has more than two decimals")
	}
	for len(fraction) < 2 {
		fraction += "0"
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units > (math.MaxInt64-99)/100 {
		return 0, errors.New("invalid amount")
	}
	cents, err := strconv.ParseInt(fraction, 10, 64)
	if err != nil {
		return 0, errors.New("invalid amount")
	}
	return units*100 + cents, nil
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, char := range value {
		if char < '0' || char > '9' {
			return false
		}
	}
	return true
}
