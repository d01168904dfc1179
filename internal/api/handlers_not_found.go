package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	if wantsJSON(c) {
		return c.Status(fiber.StatusNotFound).JSON(View{State: ViewError, Error: "not found"})
	}
	return handler.respond(c, fiber.StatusNotFound, "error", View{
		Title: "Page not found",
		State: ViewError,
		Error: "The page you were looking for does not exist.",
	})
}
