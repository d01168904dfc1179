package models

import (
	"errors"
	"strings"
	"time"
)

const (
	TicketStatusOpen     = "open"
	TicketStatusPending  = "pending"
	TicketStatusResolved = "resolved"
	TicketStatusClosed   = "closed"
)

const (
	RefundStatusPending  = "pending"
	RefundStatusIssued   = "issued"
	RefundStatusRejected = "rejected"
)

type AgentOverride struct {
	UserID    string    `json:"user_id"`
	AgentID   string    `json:"agent_id"`
	Reason    string    `json:"reason,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (override AgentOverride) Validate() error {
	if strings.TrimSpace(override.UserID) == "" || strings.TrimSpace(override.AgentID) == "" {
		return errors.New("agent override needs user_id and agent_id")
	}
	return nil
}

type SupportTicket struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Subject   string    `json:"subject"`
	Status    string    `json:"status"`
	Priority  string    `json:"priority,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (ticket SupportTicket) Validate() error {
	if strings.TrimSpace(ticket.ID) == "" {
		return errors.New("support ticket id is required")
	}
	return nil
}

type ChurnRisk struct {
	UserID  string   `json:"user_id"`
	Email   string   `json:"email"`
	Score   float64  `json:"score"`
	Tier    string   `json:"tier"`
	Reasons []string `json:"reasons,omitempty"`
}

func (risk ChurnRisk) Validate() error {
	if strings.TrimSpace(risk.UserID) == "" {
		return errors.New("churn risk user_id is required")
	}
	if risk.Score < 0 || risk.Score > 1 {
		return errors.New("churn risk score must be between 0 and 1")
	}
	return nil
}

type Refund struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	Reason      string    `json:"reason,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func (refund Refund) Validate() error {
	if strings.TrimSpace(refund.ID) == "" {
		return errors.New("refund id is required")
	}
	if refund.AmountCents <= 0 {
		return errors.New("refund amount must be positive")
	}
	return nil
}
