package models

import (
	"errors"
	"strings"
	"time"
)

const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusArchived  = "archived"
)

var (
	errJournalIDMissing = errors.New("journal entry id is required")
	errGoalIDMissing    = errors.New("goal id is required")
	errGoalProgress     = errors.New("goal progress must be between 0 and 100")
	errCheckInIDMissing = errors.New("check-in id is required")
	errCheckInDate      = errors.New("check-in date is not an ISO date")
)

type JournalEntry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Mood      string    `json:"mood,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (entry JournalEntry) Validate() error {
	if strings.TrimSpace(entry.ID) == "" {
		return errJournalIDMissing
	}
	return nil
}

type Goal struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Progress    int    `json:"progress"`
	Status      string `json:"status"`
	DueDate     string `json:"due_date,omitempty"`
}

func (goal Goal) Validate() error {
	if strings.TrimSpace(goal.ID) == "" {
		return errGoalIDMissing
	}
	if goal.Progress < 0 || goal.Progress > 100 {
		return errGoalProgress
	}
	return nil
}

type CheckIn struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Energy int    `json:"energy"`
	Focus  int    `json:"focus"`
	Notes  string `json:"notes,omitempty"`
}

func (checkIn CheckIn) Validate() error {
	if strings.TrimSpace(checkIn.ID) == "" {
		return errCheckInIDMissing
	}
	if _, ok := ParseISODate(checkIn.Date); !ok {
		return errCheckInDate
	}
	return nil
}

type Subscription struct {
	Plan        string    `json:"plan"`
	Status      string    `json:"status"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	RenewsAt    time.Time `json:"renews_at"`
}

func (subscription Subscription) Validate() error {
	if strings.TrimSpace(subscription.Plan) == "" {
		return errors.New("subscription plan is required")
	}
	return nil
}
