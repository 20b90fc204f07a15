package handler

import (
	"errors"
	"log"
	"time"

	"campus-clinic-backend/internal/model"
	"campus-clinic-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type LetterHandler struct {
	svc *service.LetterService
}

func NewLetterHandler(svc *service.LetterService) *LetterHandler {
	return &LetterHandler{svc: svc}
}

type CreateLetterRequest struct {
	UserID       string `json:"userId" validate:"required"`
	SectionID    string `json:"sectionId"`
	LetterType   string `json:"letterType" validate:"required"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	IssuerUserID string `json:"issuerUserId"`
	Remarks      string `json:"remarks"`
}

func (h *LetterHandler) Create(c *fiber.Ctx) error {
	var req CreateLetterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "userId and letterType are required"})
	}
	letter := model.Letter{
		UserID:       req.UserID,
		SectionID:    req.SectionID,
		LetterType:   req.LetterType,
		Title:        req.Title,
		Content:      req.Content,
		IssuerUserID: req.IssuerUserID,
		Remarks:      req.Remarks,
	}
	if err := h.svc.CreateDraft(&letter); err != nil {
		if errors.Is(err, service.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		log.Printf("POST /api/letters error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create letter"})
	}
	return c.Status(fiber.StatusCreated).JSON(letter)
}

type issueLetterBody struct {
	IssuerUserID string     `json:"issuerUserId"`
	ExpiresAt    *time.Time `json:"expiresAt"`
}

func (h *LetterHandler) Issue(c *fiber.Ctx) error {
	id, err := passID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	}
	var body issueLetterBody
	_ = c.BodyParser(&body)
	letter, err := h.svc.Issue(id, body.IssuerUserID, body.ExpiresAt)
	if err != nil {
		return letterError(c, "issue", err)
	}
	return c.JSON(letter)
}

func (h *LetterHandler) Acknowledge(c *fiber.Ctx) error {
	id, err := passID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	}
	letter, err := h.svc.Acknowledge(id)
	if err != nil {
		return letterError(c, "acknowledge", err)
	}
	return c.JSON(letter)
}

func (h *LetterHandler) List(c *fiber.Ctx) error {
	list, err := h.svc.List()
	if err != nil {
		log.Printf("GET /api/letters error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch letters"})
	}
	return c.JSON(list)
}

func (h *LetterHandler) ByUser(c *fiber.Ctx) error {
	list, err := h.svc.ListByUser(c.Params("userId"))
	if err != nil {
		log.Printf("GET /api/letters/user error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch letters"})
	}
	return c.JSON(list)
}

func letterError(c *fiber.Ctx, op string, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	case errors.Is(err, service.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Printf("letter %s error: %v", op, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to " + op + " letter"})
	}
}
