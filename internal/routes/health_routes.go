package routes

import (
	"campus-clinic-backend/internal/handler"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func SetupHealthRoutes(app *fiber.App, db *gorm.DB) {
	hdl := handler.NewHealthHandler(db)

	app.Get("/api/health", hdl.Health)
	app.Get("/api/health/db", hdl.DBHealth)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
