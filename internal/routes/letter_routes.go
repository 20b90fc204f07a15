package routes

import (
	"campus-clinic-backend/internal/handler"
	"campus-clinic-backend/internal/repository"
	"campus-clinic-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

func SetupLetterRoutes(app *fiber.App, repos *repository.Repos) {
	svc := service.NewLetterService(repos.Letters)
	hdl := handler.NewLetterHandler(svc)

	api := app.Group("/api/letters")
	api.Post("/", hdl.Create)
	api.Get("/", hdl.List)
	api.Get("/user/:userId", hdl.ByUser)
	api.Patch("/:id/issue", hdl.Issue)
	api.Patch("/:id/acknowledge", hdl.Acknowledge)
}
