package routes

import (
	"campus-clinic-backend/internal/handler"
	"campus-clinic-backend/internal/mailer"
	"campus-clinic-backend/internal/repository"
	"campus-clinic-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

func SetupGatePassRoutes(app *fiber.App, repos *repository.Repos, m *mailer.Mailer) {
	svc := service.NewGatePassService(repos.GatePasses, repos.Sections)
	hdl := handler.NewGatePassHandler(svc, m)

	api := app.Group("/api/gatepasses")
	api.Post("/", hdl.Create)
	api.Get("/", hdl.List)
	api.Get("/user/:userId", hdl.ByUser)
	api.Get("/:id", hdl.Get)
	api.Patch("/:id/approve", hdl.Approve)
	api.Patch("/:id/decline", hdl.Decline)
	api.Put("/:id", hdl.Update)
	api.Delete("/:id", hdl.Delete)
}
