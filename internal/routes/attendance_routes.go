package routes

import (
	"campus-clinic-backend/internal/handler"
	"campus-clinic-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

func SetupAttendanceRoutes(app *fiber.App, repos *repository.Repos) {
	hdl := handler.NewAttendanceHandler(repos.Attendance)

	api := app.Group("/api/attendance")
	api.Post("/", hdl.Submit)
	api.Get("/section/:section/date/:date", hdl.BySectionAndDate)
	api.Get("/section/:section", hdl.LatestBySection)
}
