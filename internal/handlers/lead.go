package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/styoin/styo-server/internal/services"
	"github.com/styoin/styo-server/internal/utils"
	"gorm.io/gorm"
)

// LeadHandler handles owner-contact unlock routes
type LeadHandler struct {
	DB *gorm.DB
}

// RequestOwnerInfo handles POST /api/listings/:id/unlock
// @Summary Record an owner-contact unlock request
// @Tags Leads
// @Produce json
// @Param id path int true "Listing ID"
// @Success 201 {object} utils.CreatedResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /listings/{id}/unlock [post]
func (h *LeadHandler) RequestOwnerInfo(c *fiber.Ctx) error {
	principal, err := callerPrincipal(c)
	if err != nil {
		return serviceError(c, err, "requestOwnerInfo")
	}
	listingID, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, "Invalid listing id", fiber.StatusBadRequest, "requestOwnerInfo")
	}

	id, err := services.CreateOwnerUnlockRequest(h.DB, principal, listingID)
	if err != nil {
		return serviceError(c, err, "requestOwnerInfo")
	}
	return utils.CreatedResponse(c, id)
}

// GetLeadAnalytics handles GET /api/admin/leads
// @Summary All unlock events, newest first
// @Tags Admin
// @Produce json
// @Success 200 {array} models.LeadView
// @Security CookieAuth
// @Router /admin/leads [get]
func (h *LeadHandler) GetLeadAnalytics(c *fiber.Ctx) error {
	leads, err := services.GetLeadAnalytics(h.DB)
	if err != nil {
		return serviceError(c, err, "getLeadAnalytics")
	}
	return c.Status(fiber.StatusOK).JSON(leads)
}

// GetLeadsForListing handles GET /api/admin/listings/:id/leads
// @Summary Unlock events for one listing
// @Tags Admin
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {array} models.LeadView
// @Security CookieAuth
// @Router /admin/listings/{id}/leads [get]
func (h *LeadHandler) GetLeadsForListing(c *fiber.Ctx) error {
	listingID, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, "Invalid listing id", fiber.StatusBadRequest, "getLeadsForListing")
	}
	leads, err := services.GetLeadsForListing(h.DB, listingID)
	if err != nil {
		return serviceError(c, err, "getLeadsForListing")
	}
	return c.Status(fiber.StatusOK).JSON(leads)
}

// GetNotifications handles GET /api/admin/notifications
// @Summary Admin notification feed, unread first
// @Tags Admin
// @Produce json
// @Success 200 {array} models.AdminNotification
// @Security CookieAuth
// @Router /admin/notifications [get]
func (h *LeadHandler) GetNotifications(c *fiber.Ctx) error {
	notifications, err := services.GetAdminNotifications(h.DB)
	if err != nil {
		return serviceError(c, err, "getNotifications")
	}
	return c.Status(fiber.StatusOK).JSON(notifications)
}

// MarkNotificationRead handles POST /api/admin/notifications/:id/read
// @Summary Mark one notification read
// @Tags Admin
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /admin/notifications/{id}/read [post]
func (h *LeadHandler) MarkNotificationRead(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, "Invalid notification id", fiber.StatusBadRequest, "markNotificationRead")
	}
	if err := services.MarkNotificationAsRead(h.DB, id); err != nil {
		return serviceError(c, err, "markNotificationRead")
	}
	return utils.MutationSuccessResponse(c, 1)
}
