package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arturoeanton/health-planner/internal/domain"
)

func exerciseNames(exercises []domain.Exercise) []string {
	names := make([]string, len(exercises))
	for i, e := range exercises {
		names[i] = e.Name
	}
	return names
}

func TestGenerateWorkoutPlan(t *testing.T) {
	tests := []struct {
		name       string
		goal       string
		days       int
		conditions []string
		want       []string
	}{
		{
			name: "default",
			goal: "build muscle",
			days: 3,
			want: []string{"Push-Ups", "Bodyweight Squats"},
		},
		{
			name:       "knee pain",
			goal:       "stay fit",
			days:       2,
			conditions: []string{"asthma", "knee pain"},
			want:       []string{"Push-Ups", "Seated Leg Extensions"},
		},
		{
			name: "lose weight adds cardio",
			goal: "I want to LOSE WEIGHT fast",
			days: 4,
			want: []string{"Push-Ups", "Bodyweight Squats", "Jumping Jacks"},
		},
		{
			name:       "knee pain and lose weight",
			goal:       "lose weight",
			days:       1,
			conditions: []string{"knee pain"},
			want:       []string{"Push-Ups", "Seated Leg Extensions", "Jumping Jacks"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := GenerateWorkoutPlan(tt.goal, tt.days, tt.conditions)

			require.Len(t, plan, tt.days)
			for i, day := range plan {
				assert.Equal(t, i+1, day.Day)
				assert.Equal(t, tt.want, exerciseNames(day.Exercises))
				assert.Equal(t, plan[0].Exercises, day.Exercises)
			}
		})
	}
}

func TestGenerateWorkoutPlan_JumpingJacksShape(t *testing.T) {
	plan := GenerateWorkoutPlan("lose weight", 1, nil)
	require.Len(t, plan, 1)

	jj := plan[0].Exercises[2]
	assert.Equal(t, domain.Exercise{Name: "Jumping Jacks", Duration: "60s", Rest: "30s"}, jj)
}

func TestGenerateWorkoutPlan_DaysAreIndependentCopies(t *testing.T) {
	plan := GenerateWorkoutPlan("", 2, nil)
	plan[0].Exercises[0].Name = "changed"
	assert.Equal(t, "Push-Ups", plan[1].Exercises[0].Name)
}

func TestFetchRecipe(t *testing.T) {
	r := FetchRecipe("Lentil soup")

	assert.Equal(t, "Lentil soup", r.MealName)
	assert.Equal(t, []string{"Ingredient A", "Ingredient B"}, r.Ingredients)
	assert.Equal(t, "Step 1: Do something with Lentil soup.", r.Instructions)
	assert.Equal(t, domain.Nutrition{Calories: 400, Protein: 15, Fat: 10, Carbs: 55}, r.Nutrition)
}
