package handler

import (
	"errors"
	"log"
	"strconv"

	"campus-clinic-backend/internal/mailer"
	"campus-clinic-backend/internal/model"
	"campus-clinic-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type GatePassHandler struct {
	svc    *service.GatePassService
	mailer *mailer.Mailer
}

func NewGatePassHandler(svc *service.GatePassService, m *mailer.Mailer) *GatePassHandler {
	return &GatePassHandler{svc: svc, mailer: m}
}

type CreateGatePassRequest struct {
	StudentEmail string `json:"studentEmail"`
	StudentName  string `json:"studentName" validate:"required"`
	StudentRoll  string `json:"studentRoll" validate:"required"`
	StudentYear  string `json:"studentYear" validate:"required"`
	Department   string `json:"department"`
	Reason       string `json:"reason" validate:"required"`
	TimeOut      string `json:"timeOut" validate:"required"`
	UserID       string `json:"userId"`
	HodSectionID string `json:"hodSectionId"`
}

func (h *GatePassHandler) Create(c *fiber.Ctx) error {
	var req CreateGatePassRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "studentName, studentRoll, studentYear, reason and timeOut are required"})
	}
	gp := model.GatePass{
		StudentEmail: req.StudentEmail,
		StudentName:  req.StudentName,
		StudentRoll:  req.StudentRoll,
		StudentYear:  req.StudentYear,
		Department:   req.Department,
		Reason:       req.Reason,
		TimeOut:      req.TimeOut,
		UserID:       req.UserID,
		HodSectionID: req.HodSectionID,
	}
	if err := h.svc.Create(&gp); err != nil {
		log.Printf("POST /api/gatepasses error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create gate pass"})
	}
	return c.Status(fiber.StatusCreated).JSON(gp)
}

func (h *GatePassHandler) List(c *fiber.Ctx) error {
	list, err := h.svc.List()
	if err != nil {
		log.Printf("GET /api/gatepasses error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch gate passes"})
	}
	return c.JSON(list)
}

func (h *GatePassHandler) Get(c *fiber.Ctx) error {
	id, err := passID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	}
	gp, err := h.svc.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
		}
		log.Printf("GET /api/gatepasses/%d error: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch gate pass"})
	}
	return c.JSON(gp)
}

func (h *GatePassHandler) ByUser(c *fiber.Ctx) error {
	list, err := h.svc.ListForUser(c.Params("userId"))
	if err != nil {
		log.Printf("GET /api/gatepasses/user error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch user gate passes"})
	}
	return c.JSON(list)
}

type decisionBody struct {
	Reason    string `json:"reason"`
	HodUserID string `json:"hodUserId"`
}

func (h *GatePassHandler) Approve(c *fiber.Ctx) error {
	id, err := passID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	}
	var body decisionBody
	_ = c.BodyParser(&body) // hodUserId is optional
	gp, err := h.svc.Approve(id, body.HodUserID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
		}
		log.Printf("PATCH /api/gatepasses/%d/approve error: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to approve gate pass"})
	}
	go h.mailer.NotifyGatePassDecision(gp)
	return c.JSON(gp)
}

func (h *GatePassHandler) Decline(c *fiber.Ctx) error {
	id, err := passID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	}
	var body decisionBody
	_ = c.BodyParser(&body)
	reason := c.Query("reason")
	if reason == "" {
		reason = body.Reason
	}
	gp, err := h.svc.Decline(id, reason, body.HodUserID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
		}
		log.Printf("PATCH /api/gatepasses/%d/decline error: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to decline gate pass"})
	}
	go h.mailer.NotifyGatePassDecision(gp)
	return c.JSON(gp)
}

// Update is the generic partial PUT. Unknown status values are rejected; see
// service.Patch.
func (h *GatePassHandler) Update(c *fiber.Ctx) error {
	id, err := passID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	}
	var patch service.Patch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	gp, err := h.svc.Update(id, patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
		case errors.Is(err, service.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			log.Printf("PUT /api/gatepasses/%d error: %v", id, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update gate pass"})
		}
	}
	return c.JSON(gp)
}

func (h *GatePassHandler) Delete(c *fiber.Ctx) error {
	id, err := passID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	}
	if err := h.svc.Delete(id); err != nil {
		log.Printf("DELETE /api/gatepasses/%d error: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete gate pass"})
	}
	return c.JSON(fiber.Map{"ok": true})
}

func passID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	return uint(id), err
}
