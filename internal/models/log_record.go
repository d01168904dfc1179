package models

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var (
	errLogRecordIDMissing        = errors.New("log record id is required")
	errLogRecordTimestampMissing = errors.New("log record timestamp is required")
	errLogRecordTypeMissing      = errors.New("log record event type is required")
)

// LogRecord is the shared shape of audit log and agent orchestration log entries.
type LogRecord struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	UserID    string          `json:"user_id"`
	EventType string          `json:"event_type"`
	Details   json.RawMessage `json:"details,omitempty"`
}

func (record LogRecord) Validate() error {
	if strings.TrimSpace(record.ID) == "" {
		return errLogRecordIDMissing
	}
	if record.Timestamp.IsZero() {
		return errLogRecordTimestampMissing
	}
	if strings.TrimSpace(record.EventType) == "" {
		return errLogRecordTypeMissing
	}
	return nil
}
