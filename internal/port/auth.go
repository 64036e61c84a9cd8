package port

import (
	"context"
	"time"

	"github.com/arturoeanton/health-planner/internal/domain"
)

// PasswordHasher produces and checks one-way password digests.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// TokenService issues and validates signed bearer tokens.
type TokenService interface {
	// Issue returns a token for subject expiring after ttl.
	Issue(subject string, ttl time.Duration) (string, error)

	// Validate returns the token subject, or an *AuthError of kind
	// AuthTokenInvalid or AuthTokenExpired.
	Validate(token string) (string, error)
}

// UserStore persists user records. Lookups return ErrUserNotFound when absent.
type UserStore interface {
	CreateUser(ctx context.Context, u *domain.User) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}
