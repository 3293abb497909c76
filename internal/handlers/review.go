package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/styoin/styo-server/internal/services"
	"github.com/styoin/styo-server/internal/utils"
	"gorm.io/gorm"
)

// ReviewHandler handles review routes
type ReviewHandler struct {
	DB *gorm.DB
}

type reviewInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=500"`
}

// AddReview handles POST /api/listings/:id/reviews
// @Summary Leave a review on a listing
// @Tags Reviews
// @Accept json
// @Produce json
// @Param id path int true "Listing ID"
// @Param body body reviewInput true "Rating and comment"
// @Success 201 {object} utils.CreatedResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /listings/{id}/reviews [post]
func (h *ReviewHandler) AddReview(c *fiber.Ctx) error {
	principal, err := callerPrincipal(c)
	if err != nil {
		return serviceError(c, err, "addReview")
	}
	listingID, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, "Invalid listing id", fiber.StatusBadRequest, "addReview")
	}

	var input reviewInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "addReview")
	}
	if err := validate.Struct(input); err != nil {
		return utils.ErrorResponse(c, "Rating must be 1-5 and comment at most 500 characters", fiber.StatusBadRequest, "addReview")
	}

	id, err := services.AddReview(h.DB, principal, listingID, input.Rating, input.Comment)
	if err != nil {
		return serviceError(c, err, "addReview")
	}
	return utils.CreatedResponse(c, id)
}

// GetReviews handles GET /api/listings/:id/reviews
// @Summary List reviews for a listing
// @Tags Reviews
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {array} models.Review
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /listings/{id}/reviews [get]
func (h *ReviewHandler) GetReviews(c *fiber.Ctx) error {
	listingID, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, "Invalid listing id", fiber.StatusBadRequest, "getReviews")
	}
	reviews, err := services.GetReviewsForListing(h.DB, listingID)
	if err != nil {
		return serviceError(c, err, "getReviews")
	}
	return c.Status(fiber.StatusOK).JSON(reviews)
}

// GetAverageRating handles GET /api/listings/:id/reviews/average
// @Summary Average rating for a listing
// @Tags Reviews
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /listings/{id}/reviews/average [get]
func (h *ReviewHandler) GetAverageRating(c *fiber.Ctx) error {
	listingID, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, "Invalid listing id", fiber.StatusBadRequest, "getAverageRating")
	}
	avg, err := services.GetAverageRating(h.DB, listingID)
	if err != nil {
		return serviceError(c, err, "getAverageRating")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"listingId":     listingID,
		"averageRating": avg,
	})
}
