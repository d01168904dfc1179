package services

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/terraincognita07/coachdesk/internal/client"
	"github.com/terraincognita07/coachdesk/internal/models"
)

var (
	ErrAgentOverrideInvalid = errors.New("agent override needs a user and an agent")
	ErrTicketStatusInvalid  = errors.New("support ticket status invalid")
	ErrRefundAmountInvalid  = errors.New("refund amount must be positive")
	ErrRefundUserRequired   = errors.New("refund user is required")
	ErrImpersonationTarget  = errors.New("impersonation target is required")
	ErrSearchQueryTooShort  = errors.New("search query must have at least 2 characters")
)

const MinUserSearchLength = 2

type AgentOverrideService struct {
	backend Requester
}

func NewAgentOverrideService(backend Requester) *AgentOverrideService {
	return &AgentOverrideService{backend: backend}
}

func (service *AgentOverrideService) List(ctx context.Context, token string) ([]models.AgentOverride, error) {
	return fetchList[models.AgentOverride](ctx, service.backend, client.Request{
		Path:  "/admin/agent-overrides",
		Token: token,
	})
}

func (service *AgentOverrideService) Set(ctx context.Context, token string, userID string, agentID string, reason string) (models.AgentOverride, error) {
	userID = strings.TrimSpace(userID)
	agentID = strings.TrimSpace(agentID)
	if userID == "" || agentID == "" {
		return models.AgentOverride{}, ErrAgentOverrideInvalid
	}

	return fetchOne[models.AgentOverride](ctx, service.backend, client.Request{
		Method: http.MethodPut,
		Path:   "/admin/agent-overrides/" + url.PathEscape(userID),
		Route:  "/admin/agent-overrides/:user_id",
		Token:  token,
		Body: map[string]string{
			"agent_id": agentID,
			"reason":   strings.TrimSpace(reason),
		},
	})
}

func (service *AgentOverrideService) Clear(ctx context.Context, token string, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrAgentOverrideInvalid
	}
	return send(ctx, service.backend, client.Request{
		Method: http.MethodDelete,
		Path:   "/admin/agent-overrides/" + url.PathEscape(userID),
		Route:  "/admin/agent-overrides/:user_id",
		Token:  token,
	})
}

type SupportTicketService struct {
	backend Requester
}

func NewSupportTicketService(backend Requester) *SupportTicketService {
	return &SupportTicketService{backend: backend}
}

func (service *SupportTicketService) List(ctx context.Context, token string) ([]models.SupportTicket, error) {
	return fetchList[models.SupportTicket](ctx, service.backend, client.Request{
		Path:  "/admin/support-tickets",
		Token: token,
	})
}

func (service *SupportTicketService) UpdateStatus(ctx context.Context, token string, ticketID string, status string) error {
	normalized := strings.ToLower(strings.TrimSpace(status))
	if !slices.Contains(TicketStatuses(), normalized) {
		return ErrTicketStatusInvalid
	}
	return send(ctx, service.backend, client.Request{
		Method: http.MethodPatch,
		Path:   "/admin/support-tickets/" + url.PathEscape(strings.TrimSpace(ticketID)),
		Route:  "/admin/support-tickets/:id",
		Token:  token,
		Body:   map[string]string{"status": normalized},
	})
}

func TicketStatuses() []string {
	return []string{models.TicketStatusOpen, models.TicketStatusPending, models.TicketStatusResolved, models.TicketStatusClosed}
}

// FilterTicketsByStatus keeps tickets with the given status; an empty status keeps all.
func FilterTicketsByStatus(tickets []models.SupportTicket, status string) []models.SupportTicket {
	normalized := strings.ToLower(strings.TrimSpace(status))
	if normalized == "" {
		return slices.Clone(tickets)
	}
	filtered := make([]models.SupportTicket, 0, len(tickets))
	for _, ticket := range tickets {
		if strings.EqualFold(ticket.Status, normalized) {
			filtered = append(filtered, ticket)
		}
	}
	return filtered
}

type ChurnRiskService struct {
	backend Requester
}

func NewChurnRiskService(backend Requester) *ChurnRiskService {
	return &ChurnRiskService{backend: backend}
}

func (service *ChurnRiskService) List(ctx context.Context, token string) ([]models.ChurnRisk, error) {
	risks, err := fetchList[models.ChurnRisk](ctx, service.backend, client.Request{
		Path:  "/admin/churn-risk",
		Token: token,
	})
	if err != nil {
		return nil, err
	}
	RankChurnRisk(risks)
	return risks, nil
}

// RankChurnRisk orders highest score first; equal scores keep backend order.
func RankChurnRisk(risks []models.ChurnRisk) {
	slices.SortStableFunc(risks, func(left models.ChurnRisk, right models.ChurnRisk) int {
		switch {
		case left.Score > right.Score:
			return -1
		case left.Score < right.Score:
			return 1
		default:
			return 0
		}
	})
}

type RefundService struct {
	backend Requester
}

type RefundInput struct {
	UserID      string `json:"user_id"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Reason      string `json:"reason,omitempty"`
}

func NewRefundService(backend Requester) *RefundService {
	return &RefundService{backend: backend}
}

func (service *RefundService) List(ctx context.Context, token string) ([]models.Refund, error) {
	return fetchList[models.Refund](ctx, service.backend, client.Request{
		Path:  "/admin/refunds",
		Token: token,
	})
}

func (service *RefundService) Issue(ctx context.Context, token string, input RefundInput) (models.Refund, error) {
	input.UserID = strings.TrimSpace(input.UserID)
	input.Reason = strings.TrimSpace(input.Reason)
	input.Currency = strings.ToUpper(strings.TrimSpace(input.Currency))
	if input.UserID == "" {
		return models.Refund{}, ErrRefundUserRequired
	}
	if input.AmountCents <= 0 {
		return models.Refund{}, ErrRefundAmountInvalid
	}
	if input.Currency == "" {
		input.Currency = "USD"
	}

	return fetchOne[models.Refund](ctx, service.backend, client.Request{
		Method: http.MethodPost,
		Path:   "/admin/refunds",
		Token:  token,
		Body:   input,
	})
}

type ImpersonationService struct {
	backend Requester
}

func NewImpersonationService(backend Requester) *ImpersonationService {
	return &ImpersonationService{backend: backend}
}

// SearchUsers asks the backend for candidates and narrows them locally, since
// older backends ignore the query parameter.
func (service *ImpersonationService) SearchUsers(ctx context.Context, token string, query string) ([]models.UserSummary, error) {
	trimmed := strings.TrimSpace(query)
	if len([]rune(trimmed)) < MinUserSearchLength {
		return nil, ErrSearchQueryTooShort
	}

	users, err := fetchList[models.UserSummary](ctx, service.backend, client.Request{
		Path:  "/admin/users",
		Token: token,
		Query: url.Values{"q": []string{trimmed}},
	})
	if err != nil {
		return nil, err
	}
	return MatchUsers(users, trimmed), nil
}

func (service *ImpersonationService) Impersonate(ctx context.Context, token string, userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", ErrImpersonationTarget
	}
	response, err := fetchOne[tokenResponse](ctx, service.backend, client.Request{
		Method: http.MethodPost,
		Path:   "/admin/impersonate/" + url.PathEscape(userID),
		Route:  "/admin/impersonate/:user_id",
		Token:  token,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(response.Token), nil
}

// MatchUsers keeps users whose email, name or id contains query, case-insensitively.
func MatchUsers(users []models.UserSummary, query string) []models.UserSummary {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return slices.Clone(users)
	}
	matched := make([]models.UserSummary, 0, len(users))
	for _, user := range users {
		if strings.Contains(strings.ToLower(user.Email), needle) ||
			strings.Contains(strings.ToLower(user.Name), needle) ||
			strings.Contains(strings.ToLower(user.ID), needle) {
			matched = append(matched, user)
		}
	}
	return matched
}
