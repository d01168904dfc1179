package api

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/coachdesk/internal/logging"
	"github.com/terraincognita07/coachdesk/internal/session"
	"go.uber.org/zap"
)

type ViewState string

const (
	ViewReady ViewState = "ready"
	ViewEmpty ViewState = "empty"
	ViewError ViewState = "error"
)

// View is what every page renders: as HTML by default, as JSON when asked.
type View struct {
	Title string                `json:"title,omitempty"`
	State ViewState             `json:"state"`
	Error string                `json:"error,omitempty"`
	Toast *session.Notification `json:"toast,omitempty"`
	Data  any                   `json:"data,omitempty"`
}

type templatePayload struct {
	View
	Session session.Session
	Path    string
	CSRF    string
}

func readyOrEmpty(count int) ViewState {
	if count == 0 {
		return ViewEmpty
	}
	return ViewReady
}

func (handler *Handler) respond(c *fiber.Ctx, status int, page string, view View) error {
	if view.State == "" {
		view.State = ViewReady
	}
	if view.Toast == nil {
		view.Toast = handler.popFlashCookie(c).Toast
	}
	if wantsJSON(c) {
		return c.Status(status).JSON(view)
	}

	tmpl, ok := handler.templates[page]
	if !ok {
		return c.Status(fiber.StatusInternalServerError).SendString("template not found")
	}

	current, _ := c.Locals(contextSessionKey).(session.Session)
	payload := templatePayload{
		View:    view,
		Session: current,
		Path:    c.Path(),
		CSRF:    csrfToken(c),
	}

	var output bytes.Buffer
	if err := tmpl.ExecuteTemplate(&output, "base", payload); err != nil {
		logging.L().Error("render template", zap.String("page", page), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).SendString("failed to render template")
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(output.Bytes())
}
