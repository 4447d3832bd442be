package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cleankili/backend/internal/api/handlers"
	"github.com/cleankili/backend/internal/middleware"
)

type Router struct {
	app            *fiber.App
	authHandler    *handlers.AuthHandler
	reportHandler  *handlers.ReportHandler
	adminHandler   *handlers.AdminHandler
	healthHandler  *handlers.HealthHandler
	authMiddleware *middleware.AuthMiddleware
}

func NewRouter(
	app *fiber.App,
	authHandler *handlers.AuthHandler,
	reportHandler *handlers.ReportHandler,
	adminHandler *handlers.AdminHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		app:            app,
		authHandler:    authHandler,
		reportHandler:  reportHandler,
		adminHandler:   adminHandler,
		healthHandler:  healthHandler,
		authMiddleware: authMiddleware,
	}
}

func (r *Router) SetupRoutes() {
	api := r.app.Group("/api")

	// Public routes
	api.Get("/health", r.healthHandler.Health)
	api.Post("/reports", r.reportHandler.CreateReport)
	api.Get("/reports", r.reportHandler.ListReports)
	api.Get("/reports/:id", r.reportHandler.GetReport)
	api.Post("/auth/login", r.authHandler.Login)
	api.Post("/auth/verify-otp", r.authHandler.VerifyOTP)

	// Admin routes (verified admin required)
	admin := api.Group("/admin", r.authMiddleware.RequireAdmin())
	admin.Get("/me", r.authHandler.Me)
	admin.Patch("/password", r.authHandler.ChangePassword)
	admin.Patch("/reports/:id/status", r.reportHandler.UpdateReportStatus)

	// Super-admin routes
	superAdmin := api.Group("/super-admin",
		r.authMiddleware.RequireAdmin(),
		r.authMiddleware.RequireSuperAdmin(),
	)
	superAdmin.Post("/invite", r.adminHandler.InviteAdmin)
	superAdmin.Get("/admins", r.adminHandler.ListAdmins)
}
