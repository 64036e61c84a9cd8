package handler

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

// TableLister reports the tables of the backing database.
type TableLister interface {
	ListTables(ctx context.Context) ([]string, error)
}

// HealthHandler serves liveness and database ping endpoints.
type HealthHandler struct {
	tables  TableLister
	appName string
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(tables TableLister, appName string) *HealthHandler {
	return &HealthHandler{tables: tables, appName: appName}
}

// Liveness reports that the process is up.
func (h *HealthHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"app":     h.appName,
		"version": "1.0.0",
	})
}

// Ping checks the database and lists its tables.
func (h *HealthHandler) Ping(c fiber.Ctx) error {
	tables, err := h.tables.ListTables(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"status":      "alive",
		"collections": tables,
	})
}
