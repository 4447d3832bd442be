package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cleankili/backend/internal/storage"
)

type HealthHandler struct {
	store   storage.Storage
	version string
}

func NewHealthHandler(store storage.Storage, version string) *HealthHandler {
	return &HealthHandler{store: store, version: version}
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	database := "connected"
	status := "healthy"
	if err := h.store.Ping(c.Context()); err != nil {
		database = "unavailable"
		status = "degraded"
	}

	return c.JSON(fiber.Map{
		"status":    status,
		"timestamp": time.Now().UTC(),
		"version":   h.version,
		"database":  database,
	})
}
