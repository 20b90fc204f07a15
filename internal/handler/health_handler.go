package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB // nil in SKIP_DB mode
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true, "time": time.Now().Format(time.RFC3339)})
}

func (h *HealthHandler) DBHealth(c *fiber.Ctx) error {
	if h.db == nil {
		return c.JSON(fiber.Map{"ok": true, "connected": false, "skip_db": true})
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"ok": false, "error": err.Error()})
	}
	ping := sqlDB.Ping() == nil
	return c.JSON(fiber.Map{"ok": true, "connected": ping, "ping": ping})
}
