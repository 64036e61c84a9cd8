package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/arturoeanton/health-planner/internal/adapter/auth"
	"github.com/arturoeanton/health-planner/internal/domain"
	"github.com/arturoeanton/health-planner/internal/observability"
	"github.com/arturoeanton/health-planner/internal/port"
)

// TokenTypeBearer is the token_type returned by Login.
const TokenTypeBearer = "bearer"

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// RegisterInput is the payload of a registration request.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthService implements register, login and identify.
type AuthService struct {
	users  port.UserStore
	hasher port.PasswordHasher
	tokens port.TokenService
	ttl    time.Duration
}

// NewAuthService creates a new authentication service.
func NewAuthService(users port.UserStore, hasher port.PasswordHasher, tokens port.TokenService, ttl time.Duration) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, ttl: ttl}
}

// Register creates a user after checking that username and email are free.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (user *domain.User, err error) {
	defer func() { observability.ObserveAuth("register", err) }()

	if err := validateRegistration(in); err != nil {
		return nil, err
	}

	if err := s.ensureFree(ctx, s.users.GetUserByUsername, in.Username, "username already registered"); err != nil {
		return nil, err
	}
	if err := s.ensureFree(ctx, s.users.GetUserByEmail, in.Email, "email already registered"); err != nil {
		return nil, err
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user, err = s.users.CreateUser(ctx, &domain.User{
		Username:       in.Username,
		Email:          in.Email,
		HashedPassword: digest,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

func (s *AuthService) ensureFree(ctx context.Context, lookup func(context.Context, string) (*domain.User, error), value, msg string) error {
	_, err := lookup(ctx, value)
	switch {
	case err == nil:
		return &port.AuthError{Kind: port.AuthDuplicate, Message: msg}
	case errors.Is(err, port.ErrUserNotFound):
		return nil
	default:
		return fmt.Errorf("check existing user: %w", err)
	}
}

// Login verifies credentials and issues a bearer token whose subject is the
// username. Unknown users and wrong passwords are indistinguishable.
func (s *AuthService) Login(ctx context.Context, username, password string) (token *domain.Token, err error) {
	defer func() { observability.ObserveAuth("login", err) }()

	user, err := s.users.GetUserByUsername(ctx, username)
	if errors.Is(err, port.ErrUserNotFound) {
		return nil, port.ErrBadCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !s.hasher.Verify(password, user.HashedPassword) {
		return nil, port.ErrBadCredentials
	}

	access, err := s.tokens.Issue(user.Username, s.ttl)
	if err != nil {
		return nil, err
	}

	slog.Info("user logged in", "user_id", user.ID)
	return &domain.Token{AccessToken: access, TokenType: TokenTypeBearer}, nil
}

// Identify resolves a bearer token to its current user record.
func (s *AuthService) Identify(ctx context.Context, token string) (user *domain.User, err error) {
	defer func() { observability.ObserveAuth("identify", err) }()

	subject, err := s.tokens.Validate(token)
	if err != nil {
		return nil, unauthenticated(err)
	}

	user, err = s.users.GetUserByUsername(ctx, subject)
	if errors.Is(err, port.ErrUserNotFound) {
		return nil, unauthenticated(err)
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

func unauthenticated(cause error) *port.AuthError {
	return &port.AuthError{
		Kind:    port.AuthUnauthenticated,
		Message: port.ErrUnauthenticated.Message,
		Err:     cause,
	}
}

func validateRegistration(in RegisterInput) error {
	if n := utf8.RuneCountInString(in.Username); n < 3 || n > 50 {
		return port.NewValidationError("username must be between 3 and 50 characters")
	}
	if len(in.Email) > 254 || !emailPattern.MatchString(in.Email) {
		return port.NewValidationError("invalid email format")
	}
	if in.Password == "" {
		return port.NewValidationError("password is required")
	}
	if len(in.Password) > auth.MaxPasswordBytes {
		return port.NewValidationError("password must not exceed %d bytes", auth.MaxPasswordBytes)
	}
	return nil
}
