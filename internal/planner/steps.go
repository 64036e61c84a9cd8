package planner

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/arturoeanton/health-planner/internal/port"
)

// ToolName identifies one of the plan generators the model may call.
type ToolName string

const (
	ToolCalculateBMR        ToolName = "calculate_bmr"
	ToolGenerateMealPlan    ToolName = "generate_meal_plan"
	ToolGenerateWorkoutPlan ToolName = "generate_workout_plan"
	ToolFetchRecipe         ToolName = "fetch_recipe"
)

// Tools lists every callable tool in prompt order.
var Tools = []ToolName{ToolCalculateBMR, ToolGenerateMealPlan, ToolGenerateWorkoutPlan, ToolFetchRecipe}

const (
	// DefaultMealPlanDays is used when a meal plan step omits "days".
	DefaultMealPlanDays = 7
	// MaxDays bounds day counts requested by the model.
	MaxDays = 31
)

// Step is one decoded tool invocation. The set of implementations is closed.
type Step interface {
	Tool() ToolName
	step()
}

// BMRStep calls the Mifflin-St Jeor estimator.
type BMRStep struct {
	Age    float64 `json:"age"`
	Weight float64 `json:"weight"`
	Height float64 `json:"height"`
	Gender string  `json:"gender"`
}

// MealPlanStep calls the meal table picker.
type MealPlanStep struct {
	CalorieTarget float64  `json:"calorie_target"`
	DietaryPref   []string `json:"dietary_pref"`
	Days          int      `json:"days"`
}

// WorkoutPlanStep calls the workout table picker.
type WorkoutPlanStep struct {
	Goal        string   `json:"goal"`
	DaysPerWeek int      `json:"days_per_week"`
	Conditions  []string `json:"conditions"`
}

// RecipeStep calls the recipe lookup.
type RecipeStep struct {
	MealName string `json:"meal_name"`
}

func (BMRStep) Tool() ToolName         { return ToolCalculateBMR }
func (MealPlanStep) Tool() ToolName    { return ToolGenerateMealPlan }
func (WorkoutPlanStep) Tool() ToolName { return ToolGenerateWorkoutPlan }
func (RecipeStep) Tool() ToolName      { return ToolFetchRecipe }

func (BMRStep) step()         {}
func (MealPlanStep) step()    {}
func (WorkoutPlanStep) step() {}
func (RecipeStep) step()      {}

// requiredArgs are the keys each tool must receive. Optional keys are
// accepted by the strict decode but not listed here.
var requiredArgs = map[ToolName][]string{
	ToolCalculateBMR:        {"age", "weight", "height", "gender"},
	ToolGenerateMealPlan:    {"calorie_target", "dietary_pref"},
	ToolGenerateWorkoutPlan: {"goal", "days_per_week", "conditions"},
	ToolFetchRecipe:         {"meal_name"},
}

// DecodeStep turns a tool name and its raw JSON args into a typed Step.
// Unknown tools, missing or null required keys, unexpected keys, wrongly
// typed values and day counts outside 1..MaxDays each produce a
// *port.UpstreamError.
func DecodeStep(tool string, args json.RawMessage) (Step, error) {
	name := ToolName(tool)
	required, ok := requiredArgs[name]
	if !ok {
		return nil, &port.UpstreamError{
			Kind:     port.UpstreamUnknownTool,
			Detail:   fmt.Sprintf("unknown tool %q", tool),
			Fragment: tool,
		}
	}

	if len(bytes.TrimSpace(args)) == 0 || isNull(args) {
		args = json.RawMessage("{}")
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(args, &keys); err != nil {
		return nil, &port.UpstreamError{
			Kind:     port.UpstreamBadJSON,
			Detail:   fmt.Sprintf("args of %s must be an object", tool),
			Fragment: string(args),
			Err:      err,
		}
	}
	for _, k := range required {
		if v, ok := keys[k]; !ok || isNull(v) {
			return nil, &port.UpstreamError{
				Kind:     port.UpstreamMissingArg,
				Detail:   fmt.Sprintf("%s: missing argument %q", tool, k),
				Fragment: string(args),
			}
		}
	}
	// Optional keys may be omitted but not sent as null.
	for k, v := range keys {
		if isNull(v) {
			return nil, &port.UpstreamError{
				Kind:     port.UpstreamBadJSON,
				Detail:   fmt.Sprintf("%s: argument %q is null", tool, k),
				Fragment: string(args),
			}
		}
	}

	var (
		s   Step
		err error
	)
	switch name {
	case ToolCalculateBMR:
		var v BMRStep
		err = decodeStrict(args, &v)
		s = v
	case ToolGenerateMealPlan:
		v := MealPlanStep{Days: DefaultMealPlanDays}
		err = decodeStrict(args, &v)
		s = v
	case ToolGenerateWorkoutPlan:
		var v WorkoutPlanStep
		err = decodeStrict(args, &v)
		s = v
	case ToolFetchRecipe:
		var v RecipeStep
		err = decodeStrict(args, &v)
		s = v
	}
	if err == nil {
		err = checkDays(s)
	}
	if err != nil {
		return nil, &port.UpstreamError{
			Kind:     port.UpstreamBadJSON,
			Detail:   fmt.Sprintf("invalid args for %s", tool),
			Fragment: string(args),
			Err:      err,
		}
	}
	return s, nil
}

func checkDays(s Step) error {
	var n int
	switch v := s.(type) {
	case MealPlanStep:
		n = v.Days
	case WorkoutPlanStep:
		n = v.DaysPerWeek
	default:
		return nil
	}
	if n < 1 || n > MaxDays {
		return fmt.Errorf("day count %d outside 1..%d", n, MaxDays)
	}
	return nil
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("unexpected trailing data")
	}
	return nil
}
