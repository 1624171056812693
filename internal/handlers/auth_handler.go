package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"yenesuq/internal/backend"
	"yenesuq/internal/services"
)

// AuthHandler handles the login, sign-up and logout screens.
type AuthHandler struct {
	service *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/logout", h.HandleLogout)
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin authenticates against the backend and stores the session.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	user, err := h.service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		log.Printf("Error during login for %s: %v", req.Email, err)
		return fail(c, "Login failed. Please check your credentials.", err)
	}
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    user,
	})
}

// HandleRegister creates a new account.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req backend.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.service.Register(c.Context(), req); err != nil {
		log.Printf("Error registering %s: %v", req.Email, err)
		return fail(c, "Sign up failed. Please try again.", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Sign up successful",
		"redirect": "/login",
	})
}

// HandleLogout clears the stored session.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	if err := h.service.Logout(); err != nil {
		log.Printf("Error during logout: %v", err)
		return fail(c, "Logout failed", err)
	}
	return c.JSON(fiber.Map{
		"message":  "Logged out successfully",
		"redirect": "/login",
	})
}
