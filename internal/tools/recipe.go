package tools

import (
	"fmt"

	"github.com/arturoeanton/health-planner/internal/domain"
)

// FetchRecipe returns a placeholder recipe for mealName.
// TODO: replace the stub with a Spoonacular recipe lookup.
func FetchRecipe(mealName string) domain.Recipe {
	return domain.Recipe{
		MealName:     mealName,
		Ingredients:  []string{"Ingredient A", "Ingredient B"},
		Instructions: fmt.Sprintf("Step 1: Do something with %s.", mealName),
		Nutrition: domain.Nutrition{
			Calories: 400,
			Protein:  15,
			Fat:      10,
			Carbs:    55,
		},
	}
}
