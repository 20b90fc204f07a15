package main

import (
	"fmt"

	"campus-clinic-backend/config"
	"campus-clinic-backend/internal/database"
	"campus-clinic-backend/internal/repository"

	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("Starting database seeding...")

	// Load .env explicitly since this is a separate command
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: no .env file found, using system environment variables.")
	}

	config.ConnectDB()
	repos := repository.NewGormRepos(config.DB)

	database.SeedDemoUsers(repos.Users)
	database.SeedSections(repos.Sections)

	fmt.Println("Seeding complete.")
}
