// Package planner turns a free-text goal into a sequence of plan generator
// calls chosen by a language model, then runs them locally.
package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/arturoeanton/health-planner/internal/domain"
	"github.com/arturoeanton/health-planner/internal/observability"
	"github.com/arturoeanton/health-planner/internal/port"
	"github.com/arturoeanton/health-planner/internal/tools"
)

// Planner prompts a completion provider and executes the returned steps.
type Planner struct {
	llm   port.CompletionProvider
	meals *tools.MealPlanner
}

// New creates a Planner. A nil meals planner uses the global random source.
func New(llm port.CompletionProvider, meals *tools.MealPlanner) *Planner {
	if meals == nil {
		meals = tools.NewMealPlanner(nil)
	}
	return &Planner{llm: llm, meals: meals}
}

// Plan asks the model for steps matching goal and runs them against the
// profile. Any failure discards partial results.
func (p *Planner) Plan(ctx context.Context, profile *domain.HealthProfile, goal string) (*domain.PlanResult, error) {
	prompt := BuildPrompt(profile, goal)

	start := time.Now()
	raw, err := p.llm.Complete(ctx, prompt)
	observability.ObserveLLM(p.llm.ModelName(), start, err)
	if err != nil {
		observability.PlanFailures.WithLabelValues(string(port.UpstreamTransport)).Inc()
		return nil, &port.UpstreamError{
			Kind:   port.UpstreamTransport,
			Detail: "completion provider failed",
			Err:    err,
		}
	}

	steps, err := ParseSteps(raw)
	if err != nil {
		var ue *port.UpstreamError
		if errors.As(err, &ue) {
			observability.PlanFailures.WithLabelValues(string(ue.Kind)).Inc()
			slog.Warn("Rejected model plan", "kind", ue.Kind, "detail", ue.Detail, "fragment", ue.Fragment)
		}
		return nil, err
	}

	slog.Info("Executing plan", "model", p.llm.ModelName(), "steps", len(steps))
	return p.Execute(steps), nil
}

// Execute runs decoded steps in order. Recipes accumulate; every other tool
// overwrites its previous result.
func (p *Planner) Execute(steps []Step) *domain.PlanResult {
	result := &domain.PlanResult{}
	for _, s := range steps {
		observability.PlanSteps.WithLabelValues(string(s.Tool())).Inc()
		switch s := s.(type) {
		case BMRStep:
			bmr := tools.CalculateBMR(s.Age, s.Weight, s.Height, s.Gender)
			result.BMR = &bmr
		case MealPlanStep:
			result.MealPlan = p.meals.Generate(s.CalorieTarget, s.DietaryPref, s.Days)
		case WorkoutPlanStep:
			result.WorkoutPlan = tools.GenerateWorkoutPlan(s.Goal, s.DaysPerWeek, s.Conditions)
		case RecipeStep:
			result.Recipes = append(result.Recipes, tools.FetchRecipe(s.MealName))
		default:
			panic(fmt.Sprintf("planner: unhandled step %T", s))
		}
	}
	return result
}

// Run executes a single step and returns its result value, as used by the
// MCP tools/call endpoint.
func (p *Planner) Run(s Step) any {
	r := p.Execute([]Step{s})
	switch s.(type) {
	case BMRStep:
		return *r.BMR
	case MealPlanStep:
		return r.MealPlan
	case WorkoutPlanStep:
		return r.WorkoutPlan
	default:
		return r.Recipes[0]
	}
}
