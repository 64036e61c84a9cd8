package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/arturoeanton/health-planner/internal/port"
)

// respondError maps domain errors to HTTP responses.
func respondError(c fiber.Ctx, err error) error {
	var (
		ae *port.AuthError
		nf *port.NotFoundError
		ve *port.ValidationError
		ue *port.UpstreamError
	)

	switch {
	case errors.As(err, &ae):
		if ae.Kind == port.AuthDuplicate {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ae.Message})
		}
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": ae.Message})

	case errors.As(err, &nf):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": nf.Error()})

	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Message})

	case errors.As(err, &ue):
		slog.Error("upstream failure", "kind", ue.Kind, "error", ue.Error(), "fragment", ue.Fragment)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":    ue.Error(),
			"kind":     ue.Kind,
			"raw":      ue.Raw,
			"fragment": ue.Fragment,
		})

	default:
		slog.Error("request failed", "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}

func invalidRequest(c fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
}

func unauthorized(c fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
}
