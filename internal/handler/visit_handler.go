package handler

import (
	"errors"
	"log"
	"time"

	"campus-clinic-backend/internal/metrics"
	"campus-clinic-backend/internal/model"
	"campus-clinic-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type VisitHandler struct {
	visits repository.VisitRepository
}

func NewVisitHandler(visits repository.VisitRepository) *VisitHandler {
	return &VisitHandler{visits: visits}
}

type CreateVisitRequest struct {
	Name     string `json:"name"`
	ID       string `json:"id"`
	Symptoms string `json:"symptoms"`
	LoggedBy string `json:"loggedBy"`
}

func (h *VisitHandler) Create(c *fiber.Ctx) error {
	var req CreateVisitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Name == "" || req.ID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and id are required"})
	}
	loggedBy := req.LoggedBy
	if loggedBy == "" {
		loggedBy = "Unknown"
	}
	visit := model.Visit{
		Name:      req.Name,
		StudentID: req.ID,
		Symptoms:  req.Symptoms,
		EntryTime: time.Now(),
		LoggedBy:  loggedBy,
	}
	if err := h.visits.Create(&visit); err != nil {
		log.Printf("POST /api/visits error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create visit"})
	}
	metrics.VisitsLogged.Inc()
	return c.Status(fiber.StatusCreated).JSON(visit)
}

// Exit stamps the exit time on the student's most recent visit that has no
// exit yet. Older, already-exited visits are untouched.
func (h *VisitHandler) Exit(c *fiber.Ctx) error {
	studentID := c.Params("id")
	visit, err := h.visits.LatestActiveByStudent(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No active visit found"})
		}
		log.Printf("PATCH /api/visits/exit/%s error: %v", studentID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to mark exit"})
	}
	now := time.Now()
	visit.ExitTime = &now
	if err := h.visits.Update(visit); err != nil {
		log.Printf("PATCH /api/visits/exit/%s error: %v", studentID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to mark exit"})
	}
	return c.JSON(visit)
}

func (h *VisitHandler) Recent(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 5)
	if limit > 100 {
		limit = 100
	}
	visits, err := h.visits.Recent(limit)
	if err != nil {
		log.Printf("GET /api/visits/recent error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch recent visits"})
	}
	return c.JSON(visits)
}

func (h *VisitHandler) ByStudent(c *fiber.Ctx) error {
	visits, err := h.visits.ByStudent(c.Params("id"))
	if err != nil {
		log.Printf("GET /api/visits/student error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch visits"})
	}
	return c.JSON(visits)
}

func (h *VisitHandler) ActiveIDs(c *fiber.Ctx) error {
	active, err := h.visits.Active()
	if err != nil {
		log.Printf("GET /api/visits/active-ids error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch active IDs"})
	}
	seen := map[string]bool{}
	ids := []string{}
	for _, v := range active {
		if !seen[v.StudentID] {
			seen[v.StudentID] = true
			ids = append(ids, v.StudentID)
		}
	}
	return c.JSON(ids)
}

// Active lists currently-in-clinic students, one entry per student id
// keeping the most recent check-in.
func (h *VisitHandler) Active(c *fiber.Ctx) error {
	active, err := h.visits.Active()
	if err != nil {
		log.Printf("GET /api/visits/active error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch active visits"})
	}
	seen := map[string]bool{}
	result := []model.Visit{}
	for _, v := range active { // newest first
		if !seen[v.StudentID] {
			seen[v.StudentID] = true
			result = append(result, v)
		}
	}
	return c.JSON(result)
}
