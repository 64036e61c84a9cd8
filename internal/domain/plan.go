package domain

// Meals is one day's meal selection.
type Meals struct {
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
	Snacks    string `json:"snacks"`
}

// MealPlanDay is a single day of a meal plan.
type MealPlanDay struct {
	Day   int   `json:"day"`
	Meals Meals `json:"meals"`
}

// MealPlanResponse wraps a generated meal plan with its calorie target.
type MealPlanResponse struct {
	CalorieTarget float64       `json:"calorie_target"`
	Days          []MealPlanDay `json:"days"`
}

// Exercise is one entry of a workout day. Either Reps or Duration is set.
type Exercise struct {
	Name     string `json:"name"`
	Reps     string `json:"reps,omitempty"`
	Duration string `json:"duration,omitempty"`
	Rest     string `json:"rest"`
}

// WorkoutPlanDay is a single day of a workout plan.
type WorkoutPlanDay struct {
	Day       int        `json:"day"`
	Exercises []Exercise `json:"exercises"`
}

// WorkoutPlanResponse wraps a generated workout plan.
type WorkoutPlanResponse struct {
	Days []WorkoutPlanDay `json:"days"`
}

// Nutrition holds per-serving nutrition numbers (grams, except calories).
type Nutrition struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Fat      int `json:"fat"`
	Carbs    int `json:"carbs"`
}

// Recipe describes how to prepare a meal.
type Recipe struct {
	MealName     string    `json:"meal_name"`
	Ingredients  []string  `json:"ingredients"`
	Instructions string    `json:"instructions"`
	Nutrition    Nutrition `json:"nutrition"`
}

// PlanResult aggregates the output of an orchestrated plan.
// Fields left unset by the executed steps are omitted.
type PlanResult struct {
	BMR         *float64         `json:"bmr,omitempty"`
	MealPlan    []MealPlanDay    `json:"meal_plan,omitempty"`
	WorkoutPlan []WorkoutPlanDay `json:"workout_plan,omitempty"`
	Recipes     []Recipe         `json:"recipes,omitempty"`
}
