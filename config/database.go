package config

import (
	"fmt"

	"campus-clinic-backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	// Format: user:password@tcp(host:port)/dbname?charset=utf8mb4&parseTime=True&loc=Local
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		GetEnv("DB_USER", "root"),
		GetEnv("DB_PASSWORD", ""),
		GetEnv("DB_HOST", "127.0.0.1"),
		GetEnv("DB_PORT", "3306"),
		GetEnv("DB_NAME", "clinicdb"),
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("Failed to connect to database!")
	}

	fmt.Println("Database connection established")

	// Auto Migration: creates tables from the structs in internal/model
	db.AutoMigrate(&model.User{})
	db.AutoMigrate(&model.SignInLog{})
	db.AutoMigrate(&model.Section{})
	db.AutoMigrate(&model.Visit{})
	db.AutoMigrate(&model.Attendance{})
	db.AutoMigrate(&model.GatePass{})
	db.AutoMigrate(&model.Letter{})

	DB = db
}
