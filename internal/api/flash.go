package api

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/coachdesk/internal/services"
	"github.com/terraincognita07/coachdesk/internal/session"
)

// FlashPayload survives exactly one redirect.
type FlashPayload struct {
	Toast      *session.Notification `json:"toast,omitempty"`
	LoginEmail string                `json:"login_email,omitempty"`
}

func (payload FlashPayload) isEmpty() bool {
	return (payload.Toast == nil || strings.TrimSpace(payload.Toast.Message) == "") && payload.LoginEmail == ""
}

func errorToast(message string) *session.Notification {
	return &session.Notification{Kind: session.NotificationError, Message: message}
}

func successToast(message string) *session.Notification {
	return &session.Notification{Kind: session.NotificationSuccess, Message: message}
}

// setFlashCookie replaces any flash already set on this response, so one
// request never carries more than one toast.
func (handler *Handler) setFlashCookie(c *fiber.Ctx, payload FlashPayload) {
	payload.LoginEmail = services.NormalizeAuthEmail(payload.LoginEmail)
	if payload.isEmpty() {
		handler.clearFlashCookie(c)
		return
	}

	serialized, err := json.Marshal(payload)
	if err != nil {
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(serialized),
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(5 * time.Minute),
	})
}

func (handler *Handler) popFlashCookie(c *fiber.Ctx) FlashPayload {
	raw := strings.TrimSpace(c.Cookies(flashCookieName))
	if raw == "" {
		return FlashPayload{}
	}
	handler.clearFlashCookie(c)

	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return FlashPayload{}
	}
	payload := FlashPayload{}
	if err := json.Unmarshal(decoded, &payload); err != nil {
		return FlashPayload{}
	}
	payload.LoginEmail = services.NormalizeAuthEmail(payload.LoginEmail)
	return payload
}

func (handler *Handler) clearFlashCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}
