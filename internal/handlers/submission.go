package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/styoin/styo-server/internal/config"
	"github.com/styoin/styo-server/internal/services"
	"github.com/styoin/styo-server/internal/utils"
	"gorm.io/gorm"
)

// SubmissionHandler handles the public listing intake and its moderation queue
type SubmissionHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// SubmitListing handles POST /api/public/listings
// @Summary Submit a listing without an account
// @Tags Public
// @Accept json
// @Produce json
// @Param body body services.PublicListingInput true "Listing and owner contact details"
// @Success 201 {object} utils.CreatedResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 429 {object} utils.ErrorResponseStruct
// @Router /public/listings [post]
func (h *SubmissionHandler) SubmitListing(c *fiber.Ctx) error {
	var input services.PublicListingInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "submitListing")
	}

	window := time.Duration(h.Cfg.SubmissionWindowMinute) * time.Minute
	id, err := services.SubmitPublicListing(h.DB, input, h.Cfg.SubmissionLimit, window)
	if err != nil {
		return serviceError(c, err, "submitListing")
	}
	return utils.CreatedResponse(c, id)
}

// GetPendingSubmissions handles GET /api/admin/submissions
// @Summary Moderation queue, oldest first
// @Tags Admin
// @Produce json
// @Success 200 {array} services.PendingSubmission
// @Security CookieAuth
// @Router /admin/submissions [get]
func (h *SubmissionHandler) GetPendingSubmissions(c *fiber.Ctx) error {
	pending, err := services.GetPendingSubmissions(h.DB)
	if err != nil {
		return serviceError(c, err, "getPendingSubmissions")
	}
	return c.Status(fiber.StatusOK).JSON(pending)
}

// ApproveListing handles POST /api/admin/listings/:id/approve
// @Summary Approve a pending submission
// @Tags Admin
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /admin/listings/{id}/approve [post]
func (h *SubmissionHandler) ApproveListing(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, "Invalid listing id", fiber.StatusBadRequest, "approveListing")
	}
	if err := services.ApproveListing(h.DB, id); err != nil {
		return serviceError(c, err, "approveListing")
	}
	return utils.MutationSuccessResponse(c, 1)
}

// RejectListing handles POST /api/admin/listings/:id/reject
// @Summary Reject a pending submission
// @Tags Admin
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /admin/listings/{id}/reject [post]
func (h *SubmissionHandler) RejectListing(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, "Invalid listing id", fiber.StatusBadRequest, "rejectListing")
	}
	if err := services.RejectListing(h.DB, id); err != nil {
		return serviceError(c, err, "rejectListing")
	}
	return utils.MutationSuccessResponse(c, 1)
}
