package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	registerPageRoutes(app, handler)
	registerAdminRoutes(app, handler)
	registerAPIRoutes(app, handler)
}

func registerPageRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)

	app.Get("/login", handler.ShowLoginPage)
	app.Post("/login", handler.Login)
	app.Post("/logout", handler.AuthRequired, handler.Logout)

	app.Get("/", handler.AuthRequired, handler.ShowDashboard)
	app.Get("/dashboard", handler.AuthRequired, handler.ShowDashboard)
	app.Get("/moods", handler.AuthRequired, handler.ShowMoods)
	app.Post("/moods", handler.AuthRequired, handler.LogMood)
	app.Get("/moods/trends", handler.AuthRequired, handler.ShowMoodTrends)
	app.Get("/journals", handler.AuthRequired, handler.ShowJournals)
	app.Post("/journals", handler.AuthRequired, handler.CreateJournal)
	app.Get("/goals", handler.AuthRequired, handler.ShowGoals)
	app.Post("/goals", handler.AuthRequired, handler.CreateGoal)
	app.Post("/goals/:id/progress", handler.AuthRequired, handler.UpdateGoalProgress)
	app.Get("/check-ins", handler.AuthRequired, handler.ShowCheckIns)
	app.Post("/check-ins", handler.AuthRequired, handler.CreateCheckIn)
	app.Get("/billing", handler.AuthRequired, handler.ShowBilling)
	app.Get("/export/pdf", handler.AuthRequired, handler.ExportPDF)
	app.Get("/export/json", handler.AuthRequired, handler.ExportJSON)
}

func registerAdminRoutes(app *fiber.App, handler *Handler) {
	admin := app.Group("/admin", handler.AuthRequired, handler.AdminOnly)

	admin.Get("/audit-logs", handler.ShowAuditLogs)
	admin.Get("/orchestration-logs", handler.ShowOrchestrationLogs)

	admin.Get("/feature-flags", handler.ShowFeatureFlags)
	admin.Post("/feature-flags/:key/toggle", handler.ToggleFeatureFlag)

	admin.Get("/agent-overrides", handler.ShowAgentOverrides)
	admin.Post("/agent-overrides", handler.SetAgentOverride)
	admin.Post("/agent-overrides/:user_id/clear", handler.ClearAgentOverride)

	admin.Get("/support-tickets", handler.ShowSupportTickets)
	admin.Post("/support-tickets/:id/status", handler.UpdateSupportTicketStatus)

	admin.Get("/churn-risk", handler.ShowChurnRisk)

	admin.Get("/refunds", handler.ShowRefunds)
	admin.Post("/refunds", handler.IssueRefund)

	admin.Get("/impersonation", handler.ShowImpersonation)
	admin.Post("/impersonation/:user_id", handler.Impersonate)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	api.Get("/session", handler.AuthRequired, handler.SessionStatus)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
