package routes

import (
	"campus-clinic-backend/internal/handler"
	"campus-clinic-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

func SetupSectionRoutes(app *fiber.App, repos *repository.Repos) {
	hdl := handler.NewSectionHandler(repos.Sections)

	api := app.Group("/api/sections")
	api.Get("/", hdl.List)
	api.Post("/", hdl.Create)
	api.Post("/:name/rolls", hdl.AddRoll)
}
