package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/styoin/styo-server/internal/config"
	"github.com/styoin/styo-server/internal/models"
	"github.com/styoin/styo-server/internal/services"
	"github.com/styoin/styo-server/internal/types"
	"github.com/styoin/styo-server/internal/utils"
	"gorm.io/gorm"
)

// PaymentHandler handles checkout session creation and gateway callbacks
type PaymentHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

type checkoutInput struct {
	City string `json:"city"`
	// listing ids arrive as numbers or strings depending on the client
	ListingID types.FlexUint64 `json:"listingId"`
}

func (h *PaymentHandler) checkout(c *fiber.Ctx, kind models.PaymentKind, op string) error {
	principal, err := callerPrincipal(c)
	if err != nil {
		return serviceError(c, err, op)
	}

	var input checkoutInput
	// body is optional for kinds that ignore the city
	_ = c.BodyParser(&input)

	result, err := services.Checkout(h.DB, h.Cfg, principal, kind, input.City, input.ListingID.Uint64())
	if err != nil {
		return serviceError(c, err, op)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// CheckoutUnlock handles POST /api/payments/unlock
// @Summary Start checkout for an owner-contact unlock
// @Tags Payments
// @Accept json
// @Produce json
// @Param body body checkoutInput false "City for charge policy lookup"
// @Success 200 {object} services.CheckoutResult
// @Failure 502 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /payments/unlock [post]
func (h *PaymentHandler) CheckoutUnlock(c *fiber.Ctx) error {
	return h.checkout(c, models.PaymentUnlockOwnerInfo, "checkoutUnlock")
}

// CheckoutFeatured handles POST /api/payments/featured
// @Summary Start checkout for a featured listing slot
// @Tags Payments
// @Accept json
// @Produce json
// @Success 200 {object} services.CheckoutResult
// @Failure 502 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /payments/featured [post]
func (h *PaymentHandler) CheckoutFeatured(c *fiber.Ctx) error {
	return h.checkout(c, models.PaymentFeaturedListing, "checkoutFeatured")
}

// CheckoutListing handles POST /api/payments/listing
// @Summary Start checkout for a property listing fee
// @Tags Payments
// @Accept json
// @Produce json
// @Success 200 {object} services.CheckoutResult
// @Failure 502 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /payments/listing [post]
func (h *PaymentHandler) CheckoutListing(c *fiber.Ctx) error {
	return h.checkout(c, models.PaymentPropertyListing, "checkoutListing")
}

// CheckoutBookingHold handles POST /api/payments/booking-hold
// @Summary Start checkout for a booking hold deposit
// @Tags Payments
// @Accept json
// @Produce json
// @Success 200 {object} services.CheckoutResult
// @Failure 502 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /payments/booking-hold [post]
func (h *PaymentHandler) CheckoutBookingHold(c *fiber.Ctx) error {
	return h.checkout(c, models.PaymentBookingHold, "checkoutBookingHold")
}

type paymentCallbackInput struct {
	AccountID      string `json:"accountId"`
	GatewayCustRef string `json:"custRef"`
}

// PaymentSuccess handles POST /api/payments/:session/success
// @Summary Settle a checkout session
// @Tags Payments
// @Accept json
// @Produce json
// @Param session path string true "Session ID"
// @Param body body paymentCallbackInput false "Gateway references"
// @Success 200 {object} services.PaymentReceipt
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /payments/{session}/success [post]
func (h *PaymentHandler) PaymentSuccess(c *fiber.Ctx) error {
	sessionID := c.Params("session")
	if sessionID == "" {
		return utils.ErrorResponse(c, "Session id is required", fiber.StatusBadRequest, "paymentSuccess")
	}
	var input paymentCallbackInput
	_ = c.BodyParser(&input)

	receipt, err := services.PaymentSuccess(h.DB, sessionID, input.AccountID, input.GatewayCustRef)
	if err != nil {
		return serviceError(c, err, "paymentSuccess")
	}
	return c.Status(fiber.StatusOK).JSON(receipt)
}

// PaymentCancel handles POST /api/payments/:session/cancel
// @Summary Cancel a pending checkout session
// @Tags Payments
// @Produce json
// @Param session path string true "Session ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /payments/{session}/cancel [post]
func (h *PaymentHandler) PaymentCancel(c *fiber.Ctx) error {
	sessionID := c.Params("session")
	if sessionID == "" {
		return utils.ErrorResponse(c, "Session id is required", fiber.StatusBadRequest, "paymentCancel")
	}
	if err := services.PaymentCancel(h.DB, sessionID); err != nil {
		return serviceError(c, err, "paymentCancel")
	}
	return utils.MutationSuccessResponse(c, 1)
}
