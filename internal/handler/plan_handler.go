package handler

import (
	"net/url"

	"github.com/gofiber/fiber/v3"

	"github.com/arturoeanton/health-planner/internal/middleware"
	"github.com/arturoeanton/health-planner/internal/service"
)

// PlanHandler serves meal, workout, recipe, notification and orchestrated
// plan endpoints.
type PlanHandler struct {
	plans *service.PlanService
}

// NewPlanHandler creates a new plan handler.
func NewPlanHandler(plans *service.PlanService) *PlanHandler {
	return &PlanHandler{plans: plans}
}

// Register sets up plan routes on the /health group. limiter guards /plan.
func (h *PlanHandler) Register(router fiber.Router, limiter fiber.Handler) {
	router.Post("/mealplan", h.MealPlan)
	router.Post("/workoutplan", h.WorkoutPlan)
	router.Get("/recipe/:meal_name", h.Recipe)
	router.Post("/notify", h.Notify)
	router.Post("/plan", limiter, h.Plan)
}

// MealPlan generates a meal plan. The body is optional.
func (h *PlanHandler) MealPlan(c fiber.Ctx) error {
	uc := middleware.GetUserContext(c)
	if uc == nil {
		return unauthorized(c)
	}

	var body service.MealPlanInput
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&body); err != nil {
			return invalidRequest(c)
		}
	}

	plan, err := h.plans.MealPlan(c.Context(), uc.UserID, body)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(plan)
}

// WorkoutPlan generates a workout plan.
func (h *PlanHandler) WorkoutPlan(c fiber.Ctx) error {
	uc := middleware.GetUserContext(c)
	if uc == nil {
		return unauthorized(c)
	}

	var body service.WorkoutPlanInput
	if err := c.Bind().JSON(&body); err != nil {
		return invalidRequest(c)
	}

	plan, err := h.plans.WorkoutPlan(c.Context(), uc.UserID, body)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(plan)
}

// Recipe returns the recipe for the meal named in the path.
func (h *PlanHandler) Recipe(c fiber.Ctx) error {
	mealName, err := url.PathUnescape(c.Params("meal_name"))
	if err != nil {
		return invalidRequest(c)
	}

	recipe, err := h.plans.Recipe(mealName)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(recipe)
}

// Notify sends a push message to the caller.
func (h *PlanHandler) Notify(c fiber.Ctx) error {
	uc := middleware.GetUserContext(c)
	if uc == nil {
		return unauthorized(c)
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return invalidRequest(c)
	}

	note, err := h.plans.Notify(c.Context(), uc.UserID, body.Message)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(note)
}

// Plan lets the language model choose which generators to run for a goal.
func (h *PlanHandler) Plan(c fiber.Ctx) error {
	uc := middleware.GetUserContext(c)
	if uc == nil {
		return unauthorized(c)
	}

	var body struct {
		Goal string `json:"goal"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return invalidRequest(c)
	}

	result, err := h.plans.Plan(c.Context(), uc.UserID, body.Goal)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
