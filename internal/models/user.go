package models

import (
	"errors"
	"strings"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type UserSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role"`
}

func (user UserSummary) Validate() error {
	if strings.TrimSpace(user.ID) == "" {
		return errors.New("user id is required")
	}
	return nil
}

// Credential is the locally persisted session token used by the command line client.
type Credential struct {
	Key        string    `gorm:"primaryKey"`
	Token      string    `gorm:"not null"`
	BackendURL string    `gorm:"column:backend_url;not null;default:''"`
	UpdatedAt  time.Time `gorm:"not null"`
}
