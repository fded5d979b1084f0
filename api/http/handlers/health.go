package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/crystalices/backend/pkg/health"
)

// HealthHandler serves liveness and readiness checks.
type HealthHandler struct {
	svc health.ReadinessUseCase
	log zerolog.Logger
}

func NewHealthHandler(svc health.ReadinessUseCase, log zerolog.Logger) *HealthHandler {
	return &HealthHandler{svc: svc, log: log}
}

// Health: basic liveness check.
// @Summary Liveness check
// @Tags    health
// @Produce json
// @Success 200 {object} map[string]string
// @Router  /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}

// Ready: readiness check with DB and Redis ping.
// @Summary Readiness check
// @Tags    health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]any
// @Router  /ready [get]
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 1*time.Second)
	defer cancel()
	if err := h.svc.Ready(ctx); err != nil {
		h.log.Warn().Err(err).Msg("readiness check failed")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "not_ready",
			"details": err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ready"})
}
