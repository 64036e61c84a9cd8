package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/arturoeanton/health-planner/internal/domain"
	"github.com/arturoeanton/health-planner/internal/middleware"
	"github.com/arturoeanton/health-planner/internal/service"
)

// ProfileHandler handles health profile endpoints.
type ProfileHandler struct {
	profiles *service.ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Register sets up profile routes on the /health group.
func (h *ProfileHandler) Register(router fiber.Router) {
	router.Get("/profile", h.Get)
	router.Post("/profile", h.Upsert)
	router.Get("/profile/bmr", h.BMR)
}

// Get returns the caller's profile.
func (h *ProfileHandler) Get(c fiber.Ctx) error {
	uc := middleware.GetUserContext(c)
	if uc == nil {
		return unauthorized(c)
	}

	p, err := h.profiles.Get(c.Context(), uc.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

// Upsert creates or replaces the caller's profile.
func (h *ProfileHandler) Upsert(c fiber.Ctx) error {
	uc := middleware.GetUserContext(c)
	if uc == nil {
		return unauthorized(c)
	}

	var body domain.HealthProfileInput
	if err := c.Bind().JSON(&body); err != nil {
		return invalidRequest(c)
	}

	p, err := h.profiles.Upsert(c.Context(), uc.UserID, body)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

// BMR returns the caller's basal metabolic rate.
func (h *ProfileHandler) BMR(c fiber.Ctx) error {
	uc := middleware.GetUserContext(c)
	if uc == nil {
		return unauthorized(c)
	}

	bmr, err := h.profiles.BMR(c.Context(), uc.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"bmr": bmr})
}
