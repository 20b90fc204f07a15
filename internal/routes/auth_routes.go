package routes

import (
	"campus-clinic-backend/internal/handler"
	"campus-clinic-backend/internal/repository"
	"campus-clinic-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, repos *repository.Repos) {
	svc := service.NewAuthService(repos.Users, repos.SignIns)
	hdl := handler.NewAuthHandler(svc)

	auth := app.Group("/api/auth")
	auth.Post("/register", hdl.Register)
	auth.Post("/login", hdl.Login)
	auth.Get("/signins", hdl.SignIns)

	app.Get("/api/users", hdl.Users)
	app.Get("/api/rolls/names", hdl.RollNames)
}
