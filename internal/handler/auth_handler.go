package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/arturoeanton/health-planner/internal/middleware"
	"github.com/arturoeanton/health-planner/internal/service"
)

// AuthHandler handles registration, login and the current user.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register sets up auth routes. protected guards /me.
func (h *AuthHandler) Register(router fiber.Router, protected fiber.Handler) {
	auth := router.Group("/auth")
	auth.Post("/register", h.SignUp)
	auth.Post("/login", h.Login)
	auth.Get("/me", protected, h.Me)
}

// SignUp creates a new account.
func (h *AuthHandler) SignUp(c fiber.Ctx) error {
	var body service.RegisterInput
	if err := c.Bind().JSON(&body); err != nil {
		return invalidRequest(c)
	}

	user, err := h.authService.Register(c.Context(), body)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user.Response())
}

// Login exchanges credentials for a bearer token.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return invalidRequest(c)
	}

	token, err := h.authService.Login(c.Context(), body.Username, body.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(token)
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}
	return c.JSON(user.Response())
}
