package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/coachdesk/internal/models"
)

func TestAgentOverrideSetAndClear(t *testing.T) {
	backend := newFakeBackend()
	backend.responses["PUT /admin/agent-overrides/u%201"] = models.AgentOverride{UserID: "u 1", AgentID: "sleep-coach"}
	service := NewAgentOverrideService(backend)

	override, err := service.Set(context.Background(), "token", "u 1", " sleep-coach ", "requested")
	require.NoError(t, err)
	assert.Equal(t, "sleep-coach", override.AgentID)
	assert.Equal(t, "/admin/agent-overrides/u%201", backend.lastRequest(t).Path)

	_, err = service.Set(context.Background(), "token", "", "sleep-coach", "")
	assert.ErrorIs(t, err, ErrAgentOverrideInvalid)

	require.NoError(t, service.Clear(context.Background(), "token", "u-2"))
	assert.Equal(t, "DELETE", backend.lastRequest(t).Method)
}

func TestSupportTicketStatusUpdate(t *testing.T) {
	backend := newFakeBackend()
	service := NewSupportTicketService(backend)

	err := service.UpdateStatus(context.Background(), "token", "t-1", "escalated")
	assert.ErrorIs(t, err, ErrTicketStatusInvalid)
	assert.Empty(t, backend.requests)

	require.NoError(t, service.UpdateStatus(context.Background(), "token", "t-1", " Resolved "))
	assert.Equal(t, map[string]string{"status": models.TicketStatusResolved}, backend.lastRequest(t).Body)
}

func TestFilterTicketsByStatus(t *testing.T) {
	tickets := []models.SupportTicket{
		{ID: "1", Status: models.TicketStatusOpen},
		{ID: "2", Status: models.TicketStatusClosed},
		{ID: "3", Status: models.TicketStatusOpen},
	}

	assert.Len(t, FilterTicketsByStatus(tickets, ""), 3)
	open := FilterTicketsByStatus(tickets, "OPEN")
	require.Len(t, open, 2)
	assert.Equal(t, "3", open[1].ID)
}

func TestChurnRiskListRanksByScore(t *testing.T) {
	backend := newFakeBackend()
	backend.responses["GET /admin/churn-risk"] = []models.ChurnRisk{
		{UserID: "low", Score: 0.1},
		{UserID: "high-a", Score: 0.9},
		{UserID: "high-b", Score: 0.9},
	}

	risks, err := NewChurnRiskService(backend).List(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, []string{"high-a", "high-b", "low"}, []string{risks[0].UserID, risks[1].UserID, risks[2].UserID})
}

func TestChurnRiskRejectsOutOfRangeScore(t *testing.T) {
	backend := newFakeBackend()
	backend.responses["GET /admin/churn-risk"] = []models.ChurnRisk{{UserID: "u", Score: 1.5}}

	_, err := NewChurnRiskService(backend).List(context.Background(), "token")
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestRefundIssueValidatesAndDefaultsCurrency(t *testing.T) {
	backend := newFakeBackend()
	backend.responses["POST /admin/refunds"] = models.Refund{ID: "r-1", UserID: "u-1", AmountCents: 1500, Currency: "USD", Status: models.RefundStatusPending}
	service := NewRefundService(backend)

	_, err := service.Issue(context.Background(), "token", RefundInput{UserID: "u-1"})
	assert.ErrorIs(t, err, ErrRefundAmountInvalid)
	_, err = service.Issue(context.Background(), "token", RefundInput{AmountCents: 100})
	assert.ErrorIs(t, err, ErrRefundUserRequired)

	refund, err := service.Issue(context.Background(), "token", RefundInput{UserID: "u-1", AmountCents: 1500})
	require.NoError(t, err)
	assert.Equal(t, "r-1", refund.ID)
	sent, ok := backend.lastRequest(t).Body.(RefundInput)
	require.True(t, ok)
	assert.Equal(t, "USD", sent.Currency)
}

func TestImpersonationSearchAndImpersonate(t *testing.T) {
	backend := newFakeBackend()
	backend.responses["GET /admin/users"] = []models.UserSummary{
		{ID: "u-1", Email: "ana@example.com", Name: "Ana"},
		{ID: "u-2", Email: "bo@example.com", Name: "Bo"},
	}
	backend.responses["POST /admin/impersonate/u-2"] = map[string]string{"token": "impersonated"}
	service := NewImpersonationService(backend)

	_, err := service.SearchUsers(context.Background(), "token", "a")
	assert.ErrorIs(t, err, ErrSearchQueryTooShort)

	users, err := service.SearchUsers(context.Background(), "token", "ANA")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "u-1", users[0].ID)
	assert.Equal(t, "ANA", backend.lastRequest(t).Query.Get("q"))

	token, err := service.Impersonate(context.Background(), "token", "u-2")
	require.NoError(t, err)
	assert.Equal(t, "impersonated", token)
}
