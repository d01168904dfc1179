package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/coachdesk/internal/client"
	"github.com/terraincognita07/coachdesk/internal/logging"
	"github.com/terraincognita07/coachdesk/internal/services"
	"github.com/terraincognita07/coachdesk/internal/session"
	"go.uber.org/zap"
)

const messageInvalidCredentials = "Invalid email or password."

type loginPageData struct {
	Email string `json:"email,omitempty"`
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) ShowLoginPage(c *fiber.Ctx) error {
	token, _ := handler.cookieStore(c).Load(c.UserContext())
	if session.Inspect(token, handler.now()).IsAuthenticated() {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}

	flash := handler.popFlashCookie(c)
	return handler.respond(c, fiber.StatusOK, "login", View{
		Title: "Sign in",
		Toast: flash.Toast,
		Data:  loginPageData{Email: flash.LoginEmail},
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	token, err := handler.services.Auth.Login(c.UserContext(), email, c.FormValue("password"))
	if err != nil {
		return handler.loginFailed(c, email, err)
	}

	current := session.Inspect(token, handler.now())
	if !current.IsAuthenticated() {
		return handler.loginFailed(c, email, errors.New("backend issued an expired session token"))
	}
	if err := handler.cookieStore(c).Save(c.UserContext(), token); err != nil {
		return handler.loginFailed(c, email, err)
	}

	if wantsJSON(c) {
		return c.JSON(fiber.Map{"ok": true, "session": current})
	}
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

func (handler *Handler) loginFailed(c *fiber.Ctx, email string, err error) error {
	message := messageInvalidCredentials
	status := fiber.StatusUnauthorized
	switch {
	case errors.Is(err, services.ErrAuthCredentialsInvalid):
		status = fiber.StatusBadRequest
	case client.KindOf(err) == client.KindUnauthorized, client.KindOf(err) == client.KindRequest:
	case client.KindOf(err) != "":
		message = client.UserMessage(err)
		status = statusForError(err)
	default:
		logging.L().Error("login failed", zap.Error(err))
		message = "Sign in failed. Please try again."
		status = fiber.StatusInternalServerError
	}

	if wantsJSON(c) {
		return c.Status(status).JSON(fiber.Map{"error": message})
	}
	handler.setFlashCookie(c, FlashPayload{Toast: errorToast(message), LoginEmail: email})
	return c.Redirect(session.LoginPath, fiber.StatusSeeOther)
}

// Logout always ends the local session, even when the backend call fails.
func (handler *Handler) Logout(c *fiber.Ctx) error {
	store := handler.cookieStore(c)
	if token, _ := store.Load(c.UserContext()); token != "" {
		if err := handler.services.Auth.Logout(c.UserContext(), token); err != nil {
			logging.L().Info("backend logout failed", zap.Error(err))
		}
	}
	_ = store.Clear(c.UserContext())

	if wantsJSON(c) {
		return c.JSON(fiber.Map{"ok": true})
	}
	handler.setFlashCookie(c, FlashPayload{Toast: successToast("You have been signed out.")})
	return c.Redirect(session.LoginPath, fiber.StatusSeeOther)
}

func (handler *Handler) SessionStatus(c *fiber.Ctx) error {
	current, _ := c.Locals(contextSessionKey).(session.Session)
	return c.JSON(current)
}
