package handler

import (
	"errors"
	"log"
	"strings"
	"time"

	"campus-clinic-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Every login attempt takes at least this long before responding, so timing
// does not reveal whether the email exists.
const minLoginDuration = 350 * time.Millisecond

var validate = validator.New()

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=clinic faculty student hod"`
	Name     string `json:"name"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email, password, role are required"})
	}
	user, err := h.auth.Register(req.Email, req.Password, req.Role, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "User already exists"})
		}
		log.Printf("POST /api/auth/register error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to register"})
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	startedAt := time.Now()
	defer func() {
		if elapsed := time.Since(startedAt); elapsed < minLoginDuration {
			time.Sleep(minLoginDuration - elapsed)
		}
	}()

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	user, err := h.auth.Login(service.LoginAttempt{
		Email:     req.Email,
		Password:  req.Password,
		RoleTried: c.Get("X-Role"),
		IP:        clientIP(c),
		UserAgent: c.Get("User-Agent"),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email and password are required"})
		case errors.Is(err, service.ErrBadCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
		default:
			log.Printf("POST /api/auth/login error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to login"})
		}
	}
	return c.JSON(fiber.Map{"user": user})
}

func clientIP(c *fiber.Ctx) string {
	if fwd := c.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
	}
	return c.IP()
}

func (h *AuthHandler) SignIns(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit > 500 {
		limit = 500
	}
	logs, err := h.auth.RecentSignIns(limit)
	if err != nil {
		log.Printf("GET /api/auth/signins error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch sign-ins"})
	}
	return c.JSON(logs)
}

func (h *AuthHandler) Users(c *fiber.Ctx) error {
	users, err := h.auth.Users()
	if err != nil {
		log.Printf("GET /api/users error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch users"})
	}
	return c.JSON(users)
}

func (h *AuthHandler) RollNames(c *fiber.Ctx) error {
	names, err := h.auth.RollNames()
	if err != nil {
		log.Printf("GET /api/rolls/names error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch roll names"})
	}
	return c.JSON(names)
}
