package main

import (
	"fmt"

	"campus-clinic-backend/config"
	"campus-clinic-backend/internal/database"
	"campus-clinic-backend/internal/mailer"
	"campus-clinic-backend/internal/repository"
	"campus-clinic-backend/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: no .env file found, using system environment variables.")
	}

	var repos *repository.Repos
	skipDB := config.GetEnv("SKIP_DB", "false") == "true"
	if skipDB {
		// In-memory mode so the frontend can function without MySQL.
		fmt.Println("SKIP_DB=true: running with in-memory stores")
		repos = repository.NewMemoryRepos()
		database.SeedDemoUsers(repos.Users)
	} else {
		config.ConnectDB()
		repos = repository.NewGormRepos(config.DB)
	}

	app := fiber.New()

	app.Use(cors.New())
	app.Use(logger.New())

	routes.SetupHealthRoutes(app, config.DB)
	routes.SetupAuthRoutes(app, repos)
	routes.SetupVisitRoutes(app, repos)
	routes.SetupSectionRoutes(app, repos)
	routes.SetupAttendanceRoutes(app, repos)
	routes.SetupGatePassRoutes(app, repos, mailer.NewFromEnv())
	routes.SetupLetterRoutes(app, repos)

	port := config.GetEnv("PORT", "5500")
	fmt.Println("Server listening on http://localhost:" + port)
	app.Listen(":" + port)
}
