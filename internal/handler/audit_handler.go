package handler

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/arturoeanton/health-planner/internal/domain"
	"github.com/arturoeanton/health-planner/internal/middleware"
)

const maxAuditLimit = 500

// AuditLister reads audit logs of a user.
type AuditLister interface {
	ListAuditLogs(ctx context.Context, userID string, limit int, action string) ([]domain.AuditLog, error)
}

// AuditHandler handles audit log endpoints.
type AuditHandler struct {
	store AuditLister
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(store AuditLister) *AuditHandler {
	return &AuditHandler{store: store}
}

// Register sets up audit routes behind protected.
func (h *AuditHandler) Register(router fiber.Router, protected fiber.Handler) {
	audit := router.Group("/audit", protected)
	audit.Get("/logs", h.ListLogs)
}

// ListLogs returns the caller's audit logs with optional filtering.
func (h *AuditHandler) ListLogs(c fiber.Ctx) error {
	uc := middleware.GetUserContext(c)
	if uc == nil {
		return unauthorized(c)
	}

	limit, err := strconv.Atoi(c.Query("limit", "100"))
	if err != nil || limit < 1 {
		return invalidRequest(c)
	}
	limit = min(limit, maxAuditLimit)
	action := c.Query("action", "")

	logs, err := h.store.ListAuditLogs(c.Context(), uc.UserID, limit, action)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"logs":  logs,
		"count": len(logs),
	})
}
