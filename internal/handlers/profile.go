package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/styoin/styo-server/internal/services"
	"github.com/styoin/styo-server/internal/utils"
	"gorm.io/gorm"
)

// ProfileHandler handles the caller's own profile
type ProfileHandler struct {
	DB *gorm.DB
}

// GetProfile handles GET /api/profile
// @Summary The caller's profile
// @Tags Profile
// @Produce json
// @Success 200 {object} models.UserProfile
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	principal, err := callerPrincipal(c)
	if err != nil {
		return serviceError(c, err, "getProfile")
	}
	profile, err := services.GetUserProfile(h.DB, principal)
	if err != nil {
		return serviceError(c, err, "getProfile")
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// SaveProfile handles PUT /api/profile
// @Summary Create or update the caller's profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param body body services.ProfileInput true "Profile fields"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /profile [put]
func (h *ProfileHandler) SaveProfile(c *fiber.Ctx) error {
	principal, err := callerPrincipal(c)
	if err != nil {
		return serviceError(c, err, "saveProfile")
	}
	var input services.ProfileInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "saveProfile")
	}
	if err := services.SaveUserProfile(h.DB, principal, input, c.IP()); err != nil {
		return serviceError(c, err, "saveProfile")
	}
	return utils.MutationSuccessResponse(c, 1)
}

// GetCallerRole handles GET /api/profile/role
// @Summary Whether the caller holds the admin role
// @Tags Profile
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security CookieAuth
// @Router /profile/role [get]
func (h *ProfileHandler) GetCallerRole(c *fiber.Ctx) error {
	principal, err := callerPrincipal(c)
	if err != nil {
		return serviceError(c, err, "getCallerRole")
	}
	services.TouchLastLogin(h.DB, principal)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"principal": principal,
		"isAdmin":   callerIsAdmin(c),
	})
}
