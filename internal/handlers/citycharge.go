package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/styoin/styo-server/internal/models"
	"github.com/styoin/styo-server/internal/services"
	"github.com/styoin/styo-server/internal/utils"
	"gorm.io/gorm"
)

// CityChargeHandler handles the per-city monetization policy table
type CityChargeHandler struct {
	DB *gorm.DB
}

// GetChargeStatus handles GET /api/cities/:city/charges
// @Summary Charge policy for one city
// @Tags Cities
// @Produce json
// @Param city path string true "City name"
// @Success 200 {object} models.CityChargeSettings
// @Router /cities/{city}/charges [get]
func (h *CityChargeHandler) GetChargeStatus(c *fiber.Ctx) error {
	city := c.Params("city")
	if city == "" {
		return utils.ErrorResponse(c, "City is required", fiber.StatusBadRequest, "getChargeStatus")
	}
	settings, err := services.GetChargeStatusForCity(h.DB, city)
	if err != nil {
		return serviceError(c, err, "getChargeStatus")
	}
	return c.Status(fiber.StatusOK).JSON(settings)
}

// GetAllCharges handles GET /api/admin/cities/charges
// @Summary All configured city charge rows
// @Tags Admin
// @Produce json
// @Success 200 {array} models.CityChargeSettings
// @Security CookieAuth
// @Router /admin/cities/charges [get]
func (h *CityChargeHandler) GetAllCharges(c *fiber.Ctx) error {
	settings, err := services.GetCityChargeSettings(h.DB)
	if err != nil {
		return serviceError(c, err, "getAllCharges")
	}
	return c.Status(fiber.StatusOK).JSON(settings)
}

// UpdateCharges handles PUT /api/admin/cities/:city/charges
// @Summary Upsert one city's charge policy
// @Tags Admin
// @Accept json
// @Produce json
// @Param city path string true "City name"
// @Param body body models.CityChargeSettings true "Charge flags"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /admin/cities/{city}/charges [put]
func (h *CityChargeHandler) UpdateCharges(c *fiber.Ctx) error {
	city := c.Params("city")
	if city == "" {
		return utils.ErrorResponse(c, "City is required", fiber.StatusBadRequest, "updateCharges")
	}
	var settings models.CityChargeSettings
	if err := c.BodyParser(&settings); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "updateCharges")
	}
	if err := services.UpdateCityChargeSettings(h.DB, city, settings); err != nil {
		return serviceError(c, err, "updateCharges")
	}
	return utils.MutationSuccessResponse(c, 1)
}

// BulkUpdateCharges handles PUT /api/admin/cities/charges
// @Summary Replace charge policies for many cities at once
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body []services.CityChargeUpdate true "City charge rows"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /admin/cities/charges [put]
func (h *CityChargeHandler) BulkUpdateCharges(c *fiber.Ctx) error {
	var updates []services.CityChargeUpdate
	if err := c.BodyParser(&updates); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "bulkUpdateCharges")
	}
	if err := services.BulkUpdateCityCharges(h.DB, updates); err != nil {
		return serviceError(c, err, "bulkUpdateCharges")
	}
	return utils.MutationSuccessResponse(c, int64(len(updates)))
}
