package handler

import (
	"errors"
	"log"
	"net/url"

	"campus-clinic-backend/internal/model"
	"campus-clinic-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SectionHandler struct {
	sections repository.SectionRepository
}

func NewSectionHandler(sections repository.SectionRepository) *SectionHandler {
	return &SectionHandler{sections: sections}
}

func (h *SectionHandler) List(c *fiber.Ctx) error {
	list, err := h.sections.List()
	if err != nil {
		log.Printf("GET /api/sections error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch sections"})
	}
	out := make([]fiber.Map, 0, len(list))
	for _, s := range list {
		rolls := s.Rolls
		if rolls == nil {
			rolls = []string{}
		}
		out = append(out, fiber.Map{"name": s.Name, "rolls": rolls})
	}
	return c.JSON(out)
}

func (h *SectionHandler) Create(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}
	if _, err := h.sections.GetByName(req.Name); err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Section exists"})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("POST /api/sections error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create section"})
	}
	section := model.Section{Name: req.Name, Rolls: []string{}}
	if err := h.sections.Create(&section); err != nil {
		log.Printf("POST /api/sections error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create section"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"name": section.Name, "rolls": section.Rolls})
}

func (h *SectionHandler) AddRoll(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil || name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "section name and roll are required"})
	}
	var req struct {
		Roll string `json:"roll"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Roll == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "section name and roll are required"})
	}
	section, err := h.sections.AddRoll(name, req.Roll)
	if err != nil {
		log.Printf("POST /api/sections/%s/rolls error: %v", name, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add roll"})
	}
	return c.JSON(fiber.Map{"name": section.Name, "rolls": section.Rolls})
}
