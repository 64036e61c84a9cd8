package port

import (
	"context"

	"github.com/arturoeanton/health-planner/internal/domain"
)

// ProfileStore persists health profiles, one per user.
type ProfileStore interface {
	// GetProfile returns ErrProfileNotFound when the user has no profile.
	GetProfile(ctx context.Context, userID string) (*domain.HealthProfile, error)

	// UpsertProfile inserts the profile or updates it in place by user id.
	UpsertProfile(ctx context.Context, p *domain.HealthProfile) (*domain.HealthProfile, error)
}

// Notifier delivers push messages to a user.
type Notifier interface {
	Notify(ctx context.Context, userID, message string) (*domain.Notification, error)
}
