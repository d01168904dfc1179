package models

import (
	"errors"
	"strings"
	"time"
)

const (
	MoodExcellent = "Excellent"
	MoodGood      = "Good"
	MoodNeutral   = "Neutral"
	MoodStressed  = "Stressed"
	MoodBurnedOut = "Burned Out"
	MoodDepressed = "Depressed"
)

const DateLayout = "2006-01-02"

var (
	errMoodDateMissing = errors.New("mood record date is required")
	errMoodDateInvalid = errors.New("mood record date is not an ISO date")
	errMoodMissing     = errors.New("mood record mood is required")
)

type MoodRecord struct {
	Date string `json:"date"`
	Mood string `json:"mood"`
	Note string `json:"note,omitempty"`
}

func KnownMoods() []string {
	return []string{MoodExcellent, MoodGood, MoodNeutral, MoodStressed, MoodBurnedOut, MoodDepressed}
}

func (record MoodRecord) Validate() error {
	if strings.TrimSpace(record.Date) == "" {
		return errMoodDateMissing
	}
	if _, ok := ParseISODate(record.Date); !ok {
		return errMoodDateInvalid
	}
	if strings.TrimSpace(record.Mood) == "" {
		return errMoodMissing
	}
	return nil
}

// ParseISODate accepts a plain calendar date or a full RFC 3339 timestamp.
func ParseISODate(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, true
	}
	if parsed, err := time.Parse(DateLayout, value); err == nil {
		return parsed, true
	}
	return time.Time{}, false
}

// DateOnly returns the YYYY-MM-DD part of an ISO date string.
func DateOnly(raw string) string {
	value := strings.TrimSpace(raw)
	if len(value) >= len(DateLayout) {
		return value[:len(DateLayout)]
	}
	return value
}
