package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arturoeanton/health-planner/internal/domain"
	"github.com/arturoeanton/health-planner/internal/port"
	"github.com/arturoeanton/health-planner/internal/tools"
)

func ptr[T any](v T) *T { return &v }

func newTestPlanService(t *testing.T, withProfile bool) (*PlanService, *recordingNotifier, *stubOrchestrator) {
	t.Helper()
	profiles := newMemProfiles()
	if withProfile {
		_, err := profiles.UpsertProfile(context.Background(), &domain.HealthProfile{
			UserID: "u-1", Age: 25, Gender: "male", Weight: 70, Height: 175,
			DietaryPreferences: []string{"Vegetarian"},
			ExistingConditions: []string{"knee pain"},
		})
		require.NoError(t, err)
	}
	notifier := &recordingNotifier{}
	orch := &stubOrchestrator{result: &domain.PlanResult{}}
	return NewPlanService(profiles, tools.NewMealPlanner(nil), notifier, orch), notifier, orch
}

func TestPlanService_MealPlanDefaults(t *testing.T) {
	svc, _, _ := newTestPlanService(t, true)

	resp, err := svc.MealPlan(context.Background(), "u-1", MealPlanInput{})
	require.NoError(t, err)
	assert.Equal(t, 1673.75, resp.CalorieTarget)
	assert.Len(t, resp.Days, DefaultMealPlanDays)
}

func TestPlanService_MealPlanExplicit(t *testing.T) {
	svc, _, _ := newTestPlanService(t, true)

	resp, err := svc.MealPlan(context.Background(), "u-1", MealPlanInput{CalorieTarget: ptr(2200.0), Days: ptr(2)})
	require.NoError(t, err)
	assert.Equal(t, 2200.0, resp.CalorieTarget)
	require.Len(t, resp.Days, 2)
	assert.Equal(t, 1, resp.Days[0].Day)
	assert.Equal(t, 2, resp.Days[1].Day)
}

func TestPlanService_MealPlanValidation(t *testing.T) {
	svc, _, _ := newTestPlanService(t, true)
	var ve *port.ValidationError

	_, err := svc.MealPlan(context.Background(), "u-1", MealPlanInput{Days: ptr(0)})
	assert.True(t, errors.As(err, &ve))

	_, err = svc.MealPlan(context.Background(), "u-1", MealPlanInput{CalorieTarget: ptr(-5.0)})
	assert.True(t, errors.As(err, &ve))
}

func TestPlanService_RequiresProfile(t *testing.T) {
	svc, _, _ := newTestPlanService(t, false)
	ctx := context.Background()

	_, err := svc.MealPlan(ctx, "u-1", MealPlanInput{})
	assert.ErrorIs(t, err, port.ErrProfileNotFound)
	_, err = svc.WorkoutPlan(ctx, "u-1", WorkoutPlanInput{Goal: "x"})
	assert.ErrorIs(t, err, port.ErrProfileNotFound)
	_, err = svc.Plan(ctx, "u-1", "x")
	assert.ErrorIs(t, err, port.ErrProfileNotFound)
}

func TestPlanService_WorkoutPlanUsesConditions(t *testing.T) {
	svc, _, _ := newTestPlanService(t, true)

	resp, err := svc.WorkoutPlan(context.Background(), "u-1", WorkoutPlanInput{Goal: "Lose Weight"})
	require.NoError(t, err)
	require.Len(t, resp.Days, DefaultWorkoutPlanDays)

	var names []string
	for _, e := range resp.Days[0].Exercises {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Push-Ups", "Seated Leg Extensions", "Jumping Jacks"}, names)
}

func TestPlanService_Recipe(t *testing.T) {
	svc, _, _ := newTestPlanService(t, false)

	r, err := svc.Recipe("Lentil soup")
	require.NoError(t, err)
	assert.Equal(t, "Lentil soup", r.MealName)

	_, err = svc.Recipe("  ")
	var ve *port.ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestPlanService_Notify(t *testing.T) {
	svc, notifier, _ := newTestPlanService(t, false)

	note, err := svc.Notify(context.Background(), "u-1", "hydrate")
	require.NoError(t, err)
	assert.Equal(t, "hydrate", note.Message)
	assert.Equal(t, "u-1", notifier.userID)

	_, err = svc.Notify(context.Background(), "u-1", "")
	var ve *port.ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestPlanService_Plan(t *testing.T) {
	svc, _, orch := newTestPlanService(t, true)
	bmr := 1673.75
	orch.result = &domain.PlanResult{BMR: &bmr}

	res, err := svc.Plan(context.Background(), "u-1", "  get stronger ")
	require.NoError(t, err)
	assert.Equal(t, &bmr, res.BMR)
	assert.Equal(t, "get stronger", orch.goal)
	assert.Equal(t, "u-1", orch.profile.UserID)

	_, err = svc.Plan(context.Background(), "u-1", "")
	var ve *port.ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestPlanService_PlanPropagatesUpstreamError(t *testing.T) {
	svc, _, orch := newTestPlanService(t, true)
	orch.result = nil
	orch.err = &port.UpstreamError{Kind: port.UpstreamUnknownTool, Raw: "{}"}

	res, err := svc.Plan(context.Background(), "u-1", "x")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, port.ErrLLMUnknownTool)
}
