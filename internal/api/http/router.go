package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Ritik-rajput786/internfinder/internal/api/http/handlers"
	"github.com/Ritik-rajput786/internfinder/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Jobs           *handlers.JobsHandler
	Applications   *handlers.ApplicationsHandler
	Companies      *handlers.CompaniesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Users.Me)

	jobs := app.Group("/jobs")
	jobs.Get("/", cfg.Jobs.List)
	jobs.Get("/external", cfg.Jobs.ListExternal)
	jobs.Get("/:id", cfg.Jobs.Get)
	jobs.Post("/", cfg.AuthMiddleware.Handle, cfg.Jobs.Create)

	app.Get("/companies", cfg.Companies.List)

	applications := app.Group("/applications", cfg.AuthMiddleware.Handle)
	applications.Post("/apply", cfg.Applications.Apply)
	applications.Get("/my", cfg.Applications.ListMine)
	applications.Get("/:id/resume", cfg.Applications.DownloadResume)
	applications.Patch("/cancel/:applicationId", cfg.Applications.CancelByApplication)
	applications.Patch("/:jobId/cancel", cfg.Applications.CancelByJob)
	applications.Delete("/:jobId", cfg.Applications.CancelByJob)
}
