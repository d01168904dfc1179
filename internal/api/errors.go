package api

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/coachdesk/internal/client"
	"github.com/terraincognita07/coachdesk/internal/logging"
	"github.com/terraincognita07/coachdesk/internal/session"
	"go.uber.org/zap"
)

func statusForError(err error) int {
	switch client.KindOf(err) {
	case client.KindUnauthenticated, client.KindUnauthorized:
		return fiber.StatusUnauthorized
	case client.KindForbidden:
		return fiber.StatusForbidden
	case client.KindNotFound:
		return fiber.StatusNotFound
	case client.KindRequest:
		return fiber.StatusBadRequest
	case client.KindServer, client.KindNetwork, client.KindDecode:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusBadRequest
	}
}

// errorMessage prefers the backend-aware wording and falls back to the
// validation error text, which is written for end users.
func errorMessage(err error) string {
	var backendErr *client.Error
	if errors.As(err, &backendErr) {
		return client.UserMessage(err)
	}
	return err.Error()
}

func isSessionError(err error) bool {
	kind := client.KindOf(err)
	return kind == client.KindUnauthorized || kind == client.KindUnauthenticated
}

// expireSession is the page-side half of the 401 interceptor: whichever page
// triggered the call, the session is dropped and the user is sent to login.
func (handler *Handler) expireSession(c *fiber.Ctx) error {
	session.InvalidateFromContext(c.UserContext())
	handler.clearAuthCookie(c)
	return handler.redirectToLogin(c)
}

// pageError renders a read failure in the page's error state.
func (handler *Handler) pageError(c *fiber.Ctx, page string, title string, err error) error {
	if isSessionError(err) {
		return handler.expireSession(c)
	}
	status := statusForError(err)
	if status >= fiber.StatusInternalServerError {
		logging.L().Warn("backend call failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return handler.respond(c, status, page, View{Title: title, State: ViewError, Error: errorMessage(err)})
}

// actionError reports a failed form submission: a toast plus redirect for
// browsers, an error view for JSON clients.
func (handler *Handler) actionError(c *fiber.Ctx, back string, err error) error {
	if isSessionError(err) {
		return handler.expireSession(c)
	}
	status := statusForError(err)
	if status >= fiber.StatusInternalServerError {
		logging.L().Warn("backend call failed", zap.String("path", c.Path()), zap.Error(err))
	}
	if wantsJSON(c) {
		return c.Status(status).JSON(View{State: ViewError, Error: errorMessage(err)})
	}
	handler.setFlashCookie(c, FlashPayload{Toast: errorToast(errorMessage(err))})
	return c.Redirect(back, fiber.StatusSeeOther)
}

// actionDone finishes a successful form submission.
func (handler *Handler) actionDone(c *fiber.Ctx, back string, message string, data any) error {
	if wantsJSON(c) {
		return c.JSON(View{State: ViewReady, Toast: successToast(message), Data: data})
	}
	handler.setFlashCookie(c, FlashPayload{Toast: successToast(message)})
	return c.Redirect(back, fiber.StatusSeeOther)
}

func withQuery(path string, values url.Values) string {
	if len(values) == 0 {
		return path
	}
	return path + "?" + values.Encode()
}
