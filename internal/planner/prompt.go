package planner

import (
	"strings"
	"text/template"

	"github.com/arturoeanton/health-planner/internal/domain"
)

var promptTemplate = template.Must(template.New("plan").Parse(`You are a health and fitness planning assistant.

User profile:
- Age: {{.Age}}
- Gender: {{.Gender}}
- Weight: {{.Weight}} kg
- Height: {{.Height}} cm
- Dietary preferences: {{.DietaryPreferences}}
- Existing conditions: {{.ExistingConditions}}

User goal: {{.Goal}}

You can call exactly these tools:
1. calculate_bmr(age: number, weight: number, height: number, gender: string)
2. generate_meal_plan(calorie_target: number, dietary_pref: list of strings, days: integer optional, default 7)
3. generate_workout_plan(goal: string, days_per_week: integer, conditions: list of strings)
4. fetch_recipe(meal_name: string)

Decide which tools to call, in order, to help the user reach the goal.
Respond ONLY with a JSON object of this exact shape:
{"steps": [{"tool": "<tool name>", "args": {<arguments by name>}}, ...]}
Do not add any prose, explanation or code fences.`))

type promptData struct {
	Age                int
	Gender             string
	Weight             float64
	Height             float64
	DietaryPreferences string
	ExistingConditions string
	Goal               string
}

// BuildPrompt renders the instruction template for a profile and goal.
func BuildPrompt(profile *domain.HealthProfile, goal string) string {
	data := promptData{
		Age:                profile.Age,
		Gender:             profile.Gender,
		Weight:             profile.Weight,
		Height:             profile.Height,
		DietaryPreferences: joinOrNone(profile.DietaryPreferences),
		ExistingConditions: joinOrNone(profile.ExistingConditions),
		Goal:               goal,
	}
	var b strings.Builder
	// The template is static and promptData has only plain fields.
	_ = promptTemplate.Execute(&b, data)
	return b.String()
}

func joinOrNone(tags []string) string {
	if len(tags) == 0 {
		return "none"
	}
	return strings.Join(tags, ", ")
}
