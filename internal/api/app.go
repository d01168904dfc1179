package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/terraincognita07/coachdesk/internal/logging"
	"go.uber.org/zap"
)

type AppOptions struct {
	Registerer   prometheus.Registerer
	Gatherer     prometheus.Gatherer
	CookieSecure bool
	DisableCSRF  bool
	AccessLog    bool
}

// NewApp assembles the fiber app around handler with the standard middleware chain.
func NewApp(handler *Handler, options AppOptions) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Coachdesk",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	if options.AccessLog {
		app.Use(logger.New(logger.Config{
			Output: zap.NewStdLog(logging.L().Named("access")).Writer(),
			Format: "${status} ${method} ${path} ${latency}\n",
		}))
	}
	if options.Registerer != nil {
		app.Use(newRequestMetrics(options.Registerer).middleware)
	}
	app.Use(compress.New())
	if !options.DisableCSRF {
		app.Use(csrf.New(csrf.Config{
			KeyLookup:      "form:csrf_token",
			CookieName:     csrfCookieName,
			CookieSameSite: "Lax",
			CookieHTTPOnly: false,
			CookieSecure:   options.CookieSecure,
			ContextKey:     contextCSRFKey,
			Next: func(c *fiber.Ctx) bool {
				return strings.HasPrefix(c.Path(), "/api/")
			},
		}))
	}

	if options.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(options.Gatherer, promhttp.HandlerOpts{})))
	}
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}
