package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/coachdesk/internal/logging"
	"github.com/terraincognita07/coachdesk/internal/session"
	"go.uber.org/zap"
)

// AuthRequired runs the session guard once per page request and installs a
// request-scoped Provider. A later backend 401 invalidates that Provider, whose
// subscriber clears the cookie and queues the expiry toast.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	store := handler.cookieStore(c)
	notifier := session.NotifierFunc(func(notification session.Notification) {
		handler.setFlashCookie(c, FlashPayload{Toast: &notification})
	})

	current, err := session.NewGuard(store, notifier).WithClock(handler.now).Check(c.UserContext())
	if err != nil {
		if !errors.Is(err, session.ErrRedirectToLogin) {
			logging.L().Warn("session guard failed", zap.Error(err))
		}
		return handler.redirectToLogin(c)
	}

	provider := session.NewProvider(current)
	provider.Subscribe(func(next session.Session) {
		if next.IsAuthenticated() {
			return
		}
		_ = store.Clear(c.UserContext())
		handler.setFlashCookie(c, FlashPayload{Toast: errorToast(session.MessageSessionExpired)})
	})

	c.SetUserContext(session.WithProvider(c.UserContext(), provider))
	c.Locals(contextSessionKey, current)
	return c.Next()
}

func (handler *Handler) AdminOnly(c *fiber.Ctx) error {
	current, ok := currentSession(c)
	if !ok {
		return handler.redirectToLogin(c)
	}
	if !current.IsAdmin() {
		if wantsJSON(c) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin access required"})
		}
		return handler.respond(c, fiber.StatusForbidden, "error", View{
			Title: "Forbidden",
			State: ViewError,
			Error: "You need administrator access to view this page.",
		})
	}
	return c.Next()
}

func (handler *Handler) redirectToLogin(c *fiber.Ctx) error {
	if wantsJSON(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":    "unauthorized",
			"redirect": session.LoginPath,
		})
	}
	return c.Redirect(session.LoginPath, fiber.StatusSeeOther)
}
