package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/upk-it/helpdesk/internal/api/http/handlers"
	"github.com/upk-it/helpdesk/internal/auth"
	"github.com/upk-it/helpdesk/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Users          *handlers.UsersHandler
	Profile        *handlers.ProfileHandler
	Metrics        *handlers.MetricsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle)

	tickets := protected.Group("/tickets")
	tickets.Post("", cfg.Tickets.Create)
	tickets.Get("", cfg.Tickets.List)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Patch("/:id", cfg.Tickets.Update)
	tickets.Post("/:id/attachments", cfg.Tickets.UploadAttachment)

	protected.Get("/resolvers", auth.RequireRole(domain.RoleResolver, domain.RoleAdmin), cfg.Users.Resolvers)

	profile := protected.Group("/profile")
	profile.Get("", cfg.Profile.Get)
	profile.Patch("", cfg.Profile.Update)
	profile.Delete("", cfg.Profile.Delete)

	admin := protected.Group("", auth.RequireRole(domain.RoleAdmin))
	admin.Get("/users", cfg.Users.List)
	admin.Post("/users", cfg.Users.Create)
	admin.Patch("/users/:id", cfg.Users.Update)
	admin.Delete("/users/:id", cfg.Users.Delete)
	admin.Get("/api/admin/metrics", cfg.Metrics.Get)
}
