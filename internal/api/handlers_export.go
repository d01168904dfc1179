package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/coachdesk/internal/services"
)

func (handler *Handler) ExportPDF(c *fiber.Ctx) error {
	return handler.sendExport(c, services.ExportPDF)
}

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	return handler.sendExport(c, services.ExportJSON)
}

func (handler *Handler) sendExport(c *fiber.Ctx, format services.ExportFormat) error {
	download, err := handler.services.Export.Fetch(c.UserContext(), sessionToken(c), format)
	if err != nil {
		if isSessionError(err) {
			return handler.expireSession(c)
		}
		return handler.actionError(c, "/dashboard", err)
	}

	c.Attachment(download.Filename)
	c.Set(fiber.HeaderContentType, download.ContentType)
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Send(download.Body)
}
