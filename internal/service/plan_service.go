package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/arturoeanton/health-planner/internal/domain"
	"github.com/arturoeanton/health-planner/internal/planner"
	"github.com/arturoeanton/health-planner/internal/port"
	"github.com/arturoeanton/health-planner/internal/tools"
)

// Defaults for plan requests that omit a day count.
const (
	DefaultMealPlanDays    = planner.DefaultMealPlanDays
	DefaultWorkoutPlanDays = 3
)

// Orchestrator turns a goal into an executed plan.
type Orchestrator interface {
	Plan(ctx context.Context, profile *domain.HealthProfile, goal string) (*domain.PlanResult, error)
}

// MealPlanInput is the payload of a meal plan request. Nil fields take
// their defaults.
type MealPlanInput struct {
	CalorieTarget *float64 `json:"calorie_target"`
	Days          *int     `json:"days"`
}

// WorkoutPlanInput is the payload of a workout plan request.
type WorkoutPlanInput struct {
	Goal        string `json:"goal"`
	DaysPerWeek *int   `json:"days_per_week"`
}

// PlanService generates plans from the stored profile.
type PlanService struct {
	profiles     port.ProfileStore
	meals        *tools.MealPlanner
	notifier     port.Notifier
	orchestrator Orchestrator
}

// NewPlanService creates a new plan service.
func NewPlanService(profiles port.ProfileStore, meals *tools.MealPlanner, notifier port.Notifier, orchestrator Orchestrator) *PlanService {
	return &PlanService{
		profiles:     profiles,
		meals:        meals,
		notifier:     notifier,
		orchestrator: orchestrator,
	}
}

// MealPlan builds a meal plan. The calorie target defaults to the profile BMR.
func (s *PlanService) MealPlan(ctx context.Context, userID string, in MealPlanInput) (*domain.MealPlanResponse, error) {
	days, err := dayCount(in.Days, DefaultMealPlanDays, "days")
	if err != nil {
		return nil, err
	}

	p, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	target := ProfileBMR(p)
	if in.CalorieTarget != nil {
		if *in.CalorieTarget <= 0 {
			return nil, port.NewValidationError("calorie_target must be positive")
		}
		target = *in.CalorieTarget
	}

	return &domain.MealPlanResponse{
		CalorieTarget: target,
		Days:          s.meals.Generate(target, p.DietaryPreferences, days),
	}, nil
}

// WorkoutPlan builds a workout plan honouring the profile's conditions.
func (s *PlanService) WorkoutPlan(ctx context.Context, userID string, in WorkoutPlanInput) (*domain.WorkoutPlanResponse, error) {
	days, err := dayCount(in.DaysPerWeek, DefaultWorkoutPlanDays, "days_per_week")
	if err != nil {
		return nil, err
	}

	p, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &domain.WorkoutPlanResponse{
		Days: tools.GenerateWorkoutPlan(in.Goal, days, p.ExistingConditions),
	}, nil
}

// Recipe returns the recipe for a meal.
func (s *PlanService) Recipe(mealName string) (*domain.Recipe, error) {
	mealName = strings.TrimSpace(mealName)
	if mealName == "" {
		return nil, port.NewValidationError("meal_name is required")
	}
	r := tools.FetchRecipe(mealName)
	return &r, nil
}

// Notify sends a push message to the user.
func (s *PlanService) Notify(ctx context.Context, userID, message string) (*domain.Notification, error) {
	if strings.TrimSpace(message) == "" {
		return nil, port.NewValidationError("message is required")
	}
	return s.notifier.Notify(ctx, userID, message)
}

// Plan asks the orchestrator for a plan matching goal.
func (s *PlanService) Plan(ctx context.Context, userID, goal string) (*domain.PlanResult, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return nil, port.NewValidationError("goal is required")
	}

	p, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	slog.Info("orchestrating plan", "user_id", userID, "goal", goal)
	return s.orchestrator.Plan(ctx, p, goal)
}

func dayCount(v *int, def int, field string) (int, error) {
	if v == nil {
		return def, nil
	}
	if *v < 1 || *v > planner.MaxDays {
		return 0, port.NewValidationError("%s must be between 1 and %d", field, planner.MaxDays)
	}
	return *v, nil
}
