package service

import (
	"context"
	"log/slog"

	"github.com/arturoeanton/health-planner/internal/domain"
	"github.com/arturoeanton/health-planner/internal/port"
	"github.com/arturoeanton/health-planner/internal/tools"
)

// ProfileService manages health profiles.
type ProfileService struct {
	profiles port.ProfileStore
}

// NewProfileService creates a new profile service.
func NewProfileService(profiles port.ProfileStore) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// Get returns the user's profile or port.ErrProfileNotFound.
func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.HealthProfile, error) {
	return s.profiles.GetProfile(ctx, userID)
}

// Upsert validates the input and creates or replaces the user's profile.
func (s *ProfileService) Upsert(ctx context.Context, userID string, in domain.HealthProfileInput) (*domain.HealthProfile, error) {
	if err := validateProfile(in); err != nil {
		return nil, err
	}

	p, err := s.profiles.UpsertProfile(ctx, &domain.HealthProfile{
		UserID:             userID,
		Age:                in.Age,
		Gender:             in.Gender,
		Weight:             in.Weight,
		Height:             in.Height,
		DietaryPreferences: domain.CleanTags(in.DietaryPreferences),
		ExistingConditions: domain.CleanTags(in.ExistingConditions),
	})
	if err != nil {
		return nil, err
	}

	slog.Info("profile saved", "user_id", userID)
	return p, nil
}

// BMR computes the basal metabolic rate from the stored profile.
func (s *ProfileService) BMR(ctx context.Context, userID string) (float64, error) {
	p, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return 0, err
	}
	return ProfileBMR(p), nil
}

// ProfileBMR computes the BMR of a profile.
func ProfileBMR(p *domain.HealthProfile) float64 {
	return tools.CalculateBMR(float64(p.Age), p.Weight, p.Height, p.Gender)
}

func validateProfile(in domain.HealthProfileInput) error {
	switch {
	case in.Age < 1 || in.Age > 150:
		return port.NewValidationError("age must be between 1 and 150")
	case !domain.ValidGender(in.Gender):
		return port.NewValidationError("gender must be one of male, female, other")
	case in.Weight <= 0 || in.Weight > 700:
		return port.NewValidationError("weight must be between 0 and 700 kg")
	case in.Height <= 0 || in.Height > 300:
		return port.NewValidationError("height must be between 0 and 300 cm")
	}
	return nil
}
