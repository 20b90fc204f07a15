package handler

import (
	"errors"
	"log"
	"time"

	"campus-clinic-backend/internal/model"
	"campus-clinic-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AttendanceHandler struct {
	attendance repository.AttendanceRepository
}

func NewAttendanceHandler(attendance repository.AttendanceRepository) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

type SubmitAttendanceRequest struct {
	Date    string            `json:"date"`
	Section string            `json:"section"`
	Records map[string]string `json:"records"`
	By      string            `json:"by"`
}

// Submit upserts the record for (date, section); date defaults to today. A
// resubmission replaces the whole roll->status map.
func (h *AttendanceHandler) Submit(c *fiber.Ctx) error {
	var req SubmitAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Section == "" || req.Records == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "section and records are required"})
	}
	if req.Date == "" {
		req.Date = time.Now().Format("2006-01-02")
	}
	rec, err := h.attendance.Upsert(&model.Attendance{
		Date:    req.Date,
		Section: req.Section,
		Records: req.Records,
		By:      req.By,
	})
	if err != nil {
		log.Printf("POST /api/attendance error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save attendance"})
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

func (h *AttendanceHandler) BySectionAndDate(c *fiber.Ctx) error {
	section, date := c.Params("section"), c.Params("date")
	rec, err := h.attendance.GetBySectionAndDate(section, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
		}
		log.Printf("GET /api/attendance/section/%s/date/%s error: %v", section, date, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}
	return c.JSON(rec)
}

// LatestBySection backs the HOD aggregate view, which always shows the most
// recent snapshot per section regardless of date.
func (h *AttendanceHandler) LatestBySection(c *fiber.Ctx) error {
	section := c.Params("section")
	rec, err := h.attendance.LatestBySection(section)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
		}
		log.Printf("GET /api/attendance/section/%s error: %v", section, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch latest attendance"})
	}
	return c.JSON(rec)
}
