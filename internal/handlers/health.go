package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"

	"keywatch/internal/models"
	"keywatch/internal/store"
)

const pingTimeout = 2 * time.Second

// HealthHandler reports whether the keyword store is reachable.
type HealthHandler struct {
	store store.Store
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(s store.Store) *HealthHandler {
	return &HealthHandler{store: s}
}

// Check pings the store.
func (h *HealthHandler) Check(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), pingTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		slog.Warn("health check failed", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(models.HealthResponse{Status: "unavailable"})
	}

	return c.JSON(models.HealthResponse{Status: "ok"})
}
