package tools

import (
	"slices"
	"strings"

	"github.com/arturoeanton/health-planner/internal/domain"
)

// GenerateWorkoutPlan builds one exercise list and repeats it for each day.
// Knee pain swaps squats for seated leg extensions; a weight-loss goal adds
// a cardio exercise.
func GenerateWorkoutPlan(goal string, daysPerWeek int, conditions []string) []domain.WorkoutPlanDay {
	exercises := []domain.Exercise{
		{Name: "Push-Ups", Reps: "3x12", Rest: "60s"},
	}
	if slices.Contains(conditions, "knee pain") {
		exercises = append(exercises, domain.Exercise{Name: "Seated Leg Extensions", Reps: "3x15", Rest: "45s"})
	} else {
		exercises = append(exercises, domain.Exercise{Name: "Bodyweight Squats", Reps: "3x15", Rest: "60s"})
	}

	if strings.Contains(strings.ToLower(goal), "lose weight") {
		exercises = append(exercises, domain.Exercise{Name: "Jumping Jacks", Duration: "60s", Rest: "30s"})
	}

	plan := make([]domain.WorkoutPlanDay, 0, max(daysPerWeek, 0))
	for day := 1; day <= daysPerWeek; day++ {
		plan = append(plan, domain.WorkoutPlanDay{
			Day:       day,
			Exercises: slices.Clone(exercises),
		})
	}
	return plan
}
