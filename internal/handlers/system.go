package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/styoin/styo-server/internal/config"
	"github.com/styoin/styo-server/internal/services"
	"gorm.io/gorm"
)

// SystemHandler handles health, platform status, and the public event feed
type SystemHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// HealthCheck handles GET /health
// @Summary Service, database, and auth provider health
// @Tags System
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *SystemHandler) HealthCheck(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Cfg, h.DB)
	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}

// GetEventMarkers handles GET /api/events
// @Summary Map markers for city events
// @Tags System
// @Produce json
// @Success 200 {array} models.EventMarker
// @Router /events [get]
func (h *SystemHandler) GetEventMarkers(c *fiber.Ctx) error {
	markers, err := services.GetEventMarkers(h.DB)
	if err != nil {
		return serviceError(c, err, "getEventMarkers")
	}
	return c.Status(fiber.StatusOK).JSON(markers)
}

// GetFreeTrialMode handles GET /api/free-trial
// @Summary Whether free trial mode is active
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /free-trial [get]
func (h *SystemHandler) GetFreeTrialMode(c *fiber.Ctx) error {
	enabled, err := services.IsFreeTrialMode(h.DB, h.Cfg.FreeTrialDefault)
	if err != nil {
		return serviceError(c, err, "getFreeTrialMode")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"freeTrial": enabled})
}
