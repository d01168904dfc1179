package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/coachdesk/internal/models"
)

type Status string

const (
	StatusAnonymous     Status = "anonymous"
	StatusExpired       Status = "expired"
	StatusAuthenticated Status = "authenticated"
)

const LoginPath = "/login"

var (
	ErrRedirectToLogin = errors.New("session is not valid, sign in again")
	ErrMissingExpiry   = errors.New("session token has no expiry claim")
)

type Claims struct {
	Subject   string    `json:"subject"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Session struct {
	Status Status `json:"status"`
	Token  string `json:"-"`
	Claims Claims `json:"claims"`
}

func (current Session) IsAuthenticated() bool {
	return current.Status == StatusAuthenticated
}

func (current Session) IsAdmin() bool {
	return current.IsAuthenticated() && current.Claims.Role == models.RoleAdmin
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// DecodeClaims reads the expiry and role claims without verifying the signature;
// the backend owns the signing key and rejects forged tokens with a 401.
func DecodeClaims(token string) (Claims, error) {
	parsed := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(strings.TrimSpace(token), parsed); err != nil {
		return Claims{}, fmt.Errorf("decode session token: %w", err)
	}
	if parsed.ExpiresAt == nil {
		return Claims{}, ErrMissingExpiry
	}

	return Claims{
		Subject:   parsed.Subject,
		Role:      strings.ToLower(strings.TrimSpace(parsed.Role)),
		ExpiresAt: parsed.ExpiresAt.Time,
	}, nil
}

// Inspect classifies a stored token at the given instant.
func Inspect(token string, now time.Time) Session {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return Session{Status: StatusAnonymous}
	}

	claims, err := DecodeClaims(trimmed)
	if err != nil {
		return Session{Status: StatusExpired, Token: trimmed}
	}
	if !claims.ExpiresAt.After(now) {
		return Session{Status: StatusExpired, Token: trimmed, Claims: claims}
	}
	return Session{Status: StatusAuthenticated, Token: trimmed, Claims: claims}
}
