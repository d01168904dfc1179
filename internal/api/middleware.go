package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/coachdesk/internal/session"
)

const (
	authCookieName    = "coachdesk_auth"
	flashCookieName   = "coachdesk_flash"
	csrfCookieName    = "coachdesk_csrf"
	authCookiePurpose = "auth"
	contextSessionKey = "current_session"
	contextCSRFKey    = "csrf"
)

func currentSession(c *fiber.Ctx) (session.Session, bool) {
	current, ok := c.Locals(contextSessionKey).(session.Session)
	return current, ok && current.IsAuthenticated()
}

func acceptsJSON(c *fiber.Ctx) bool {
	return strings.Contains(strings.ToLower(c.Get("Accept")), "application/json")
}

func isAPIPath(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/api/")
}

func wantsJSON(c *fiber.Ctx) bool {
	return acceptsJSON(c) || isAPIPath(c)
}

func csrfToken(c *fiber.Ctx) string {
	token, _ := c.Locals(contextCSRFKey).(string)
	return token
}
