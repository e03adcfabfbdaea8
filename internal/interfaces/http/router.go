package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-epi/internal/application/dto"
	"github.com/jhoicas/Inventario-epi/pkg/jwt"
	"github.com/jhoicas/Inventario-epi/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      loginService // nil = sin endpoint de login
	AnalyticsUC analyticsService
	JWTSecret   string
	ServiceName string
	Logger      *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: deps.ServiceName})
	})

	api := app.Group("/api")

	// Auth (público)
	if deps.AuthUC != nil {
		authHandler := NewAuthHandler(deps.AuthUC)
		api.Post("/auth/login", authHandler.Login)
	}

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Analytics (gestión de EPI)
	analytics := protected.Group("/analytics", RequireRole(jwt.RoleAdmin, jwt.RoleAlmoxarife, jwt.RoleSeguranca))
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC, deps.Logger)
	analytics.Get("/report", analyticsHandler.GetReport)
	analytics.Get("/rankings/:dimension", analyticsHandler.GetRanking)
	analytics.Get("/risk/pdf", analyticsHandler.GetRiskPDF)
	analytics.Delete("/cache", RequireRole(jwt.RoleAdmin), analyticsHandler.InvalidateCache)
}
