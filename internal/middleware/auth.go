package middleware

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/arturoeanton/health-planner/internal/domain"
	"github.com/arturoeanton/health-planner/internal/port"
)

// Identifier resolves a bearer token to a user.
type Identifier interface {
	Identify(ctx context.Context, token string) (*domain.User, error)
}

// BearerAuth creates a Fiber middleware that validates the bearer token
// and injects a UserContext into the request locals.
func BearerAuth(identifier Identifier) fiber.Handler {
	return func(c fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return unauthorized(c, "not authenticated")
		}

		user, err := identifier.Identify(c.Context(), token)
		if err != nil {
			var ae *port.AuthError
			if errors.As(err, &ae) {
				return unauthorized(c, ae.Message)
			}
			slog.Error("identify failed", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal server error",
			})
		}

		c.Locals("user", &domain.UserContext{
			UserID:   user.ID,
			Username: user.Username,
			Email:    user.Email,
		})
		c.Locals("account", user)
		return c.Next()
	}
}

// GetUserContext extracts the UserContext from Fiber locals.
func GetUserContext(c fiber.Ctx) *domain.UserContext {
	u, ok := c.Locals("user").(*domain.UserContext)
	if !ok {
		return nil
	}
	return u
}

// GetUser returns the full user record loaded by BearerAuth.
func GetUser(c fiber.Ctx) *domain.User {
	u, ok := c.Locals("account").(*domain.User)
	if !ok {
		return nil
	}
	return u
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func unauthorized(c fiber.Ctx, msg string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": msg,
	})
}
