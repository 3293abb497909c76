package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/styoin/styo-server/internal/config"
	"github.com/styoin/styo-server/internal/services"
	"github.com/styoin/styo-server/internal/utils"
	"gorm.io/gorm"
)

// AdminHandler handles the admin dashboard and platform switches
type AdminHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// GetDashboard handles GET /api/admin/dashboard
// @Summary Composite dashboard payload
// @Tags Admin
// @Produce json
// @Success 200 {object} services.AdminDashboardData
// @Security CookieAuth
// @Router /admin/dashboard [get]
func (h *AdminHandler) GetDashboard(c *fiber.Ctx) error {
	data, err := services.GetAdminDashboardData(h.DB)
	if err != nil {
		return serviceError(c, err, "getDashboard")
	}
	return c.Status(fiber.StatusOK).JSON(data)
}

// GetAllListings handles GET /api/admin/listings
// @Summary All listings regardless of approval status
// @Tags Admin
// @Produce json
// @Success 200 {array} models.Listing
// @Security CookieAuth
// @Router /admin/listings [get]
func (h *AdminHandler) GetAllListings(c *fiber.Ctx) error {
	listings, err := services.GetAllListings(h.DB)
	if err != nil {
		return serviceError(c, err, "getAllListings")
	}
	return c.Status(fiber.StatusOK).JSON(listings)
}

// VerifyListing handles POST /api/admin/listings/:id/verify
// @Summary Set the verified badge on a listing
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "Listing ID"
// @Param body body flagInput true "Flag value"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /admin/listings/{id}/verify [post]
func (h *AdminHandler) VerifyListing(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, "Invalid listing id", fiber.StatusBadRequest, "verifyListing")
	}
	var input flagInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "verifyListing")
	}
	if err := services.VerifyListing(h.DB, id, input.Value); err != nil {
		return serviceError(c, err, "verifyListing")
	}
	return utils.MutationSuccessResponse(c, 1)
}

// FeatureListing handles POST /api/admin/listings/:id/feature
// @Summary Set the featured flag on a listing
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "Listing ID"
// @Param body body flagInput true "Flag value"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /admin/listings/{id}/feature [post]
func (h *AdminHandler) FeatureListing(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, "Invalid listing id", fiber.StatusBadRequest, "featureListing")
	}
	var input flagInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "featureListing")
	}
	if err := services.SetFeatured(h.DB, id, input.Value); err != nil {
		return serviceError(c, err, "featureListing")
	}
	return utils.MutationSuccessResponse(c, 1)
}

type flagInput struct {
	Value bool `json:"value"`
}

// GetUsers handles GET /api/admin/users
// @Summary All registered user profiles
// @Tags Admin
// @Produce json
// @Success 200 {array} models.UserProfile
// @Security CookieAuth
// @Router /admin/users [get]
func (h *AdminHandler) GetUsers(c *fiber.Ctx) error {
	users, err := services.GetAllUserProfiles(h.DB)
	if err != nil {
		return serviceError(c, err, "getUsers")
	}
	return c.Status(fiber.StatusOK).JSON(users)
}

// GetUserProfile handles GET /api/admin/users/:principal
// @Summary One user profile by principal
// @Tags Admin
// @Produce json
// @Param principal path string true "User principal"
// @Success 200 {object} models.UserProfile
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /admin/users/{principal} [get]
func (h *AdminHandler) GetUserProfile(c *fiber.Ctx) error {
	principal := c.Params("principal")
	profile, err := services.GetUserProfile(h.DB, principal)
	if err != nil {
		return serviceError(c, err, "getUserProfile")
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// SetFreeTrialMode handles POST /api/admin/free-trial
// @Summary Toggle platform-wide free trial mode
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body flagInput true "Flag value"
// @Success 200 {object} utils.SuccessResponseStruct
// @Security CookieAuth
// @Router /admin/free-trial [post]
func (h *AdminHandler) SetFreeTrialMode(c *fiber.Ctx) error {
	var input flagInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "setFreeTrialMode")
	}
	if err := services.SetFreeTrialMode(h.DB, input.Value); err != nil {
		return serviceError(c, err, "setFreeTrialMode")
	}
	return utils.MutationSuccessResponse(c, 1)
}

// SeedDemoData handles POST /api/admin/demo-data
// @Summary Load the bundled demo listings and event markers
// @Tags Admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security CookieAuth
// @Router /admin/demo-data [post]
func (h *AdminHandler) SeedDemoData(c *fiber.Ctx) error {
	seeded, err := services.SeedDemoData(h.DB)
	if err != nil {
		return serviceError(c, err, "seedDemoData")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ok":     true,
		"seeded": seeded,
	})
}

// AdvanceStatus handles POST /api/admin/listings/:id/status/advance
// @Summary Advance any listing's booking funnel status
// @Tags Admin
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /admin/listings/{id}/status/advance [post]
func (h *AdminHandler) AdvanceStatus(c *fiber.Ctx) error {
	principal, err := callerPrincipal(c)
	if err != nil {
		return serviceError(c, err, "advanceStatus")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, "Invalid listing id", fiber.StatusBadRequest, "advanceStatus")
	}
	next, err := services.AdvancePropertyStatus(h.DB, principal, true, id)
	if err != nil {
		return serviceError(c, err, "advanceStatus")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ok":             true,
		"propertyStatus": next,
	})
}
