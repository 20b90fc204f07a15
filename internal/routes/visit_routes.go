package routes

import (
	"campus-clinic-backend/internal/handler"
	"campus-clinic-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

func SetupVisitRoutes(app *fiber.App, repos *repository.Repos) {
	hdl := handler.NewVisitHandler(repos.Visits)

	api := app.Group("/api/visits")
	api.Post("/", hdl.Create)
	api.Get("/recent", hdl.Recent)
	api.Get("/active", hdl.Active)
	api.Get("/active-ids", hdl.ActiveIDs)
	api.Get("/student/:id", hdl.ByStudent)
	api.Patch("/exit/:id", hdl.Exit)
}
