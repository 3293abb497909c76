package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/styoin/styo-server/internal/models"
	"github.com/styoin/styo-server/internal/services"
	"github.com/styoin/styo-server/internal/utils"
	"gorm.io/gorm"
)

// ListingHandler handles listing routes
type ListingHandler struct {
	DB *gorm.DB
}

// GetListings handles GET /api/listings
// @Summary List approved listings
// @Tags Listings
// @Produce json
// @Success 200 {array} models.Listing
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /listings [get]
func (h *ListingHandler) GetListings(c *fiber.Ctx) error {
	listings, err := services.GetListings(h.DB)
	if err != nil {
		return serviceError(c, err, "getListings")
	}
	return c.Status(fiber.StatusOK).JSON(listings)
}

// GetListing handles GET /api/listings/:id
// @Summary Get one listing
// @Tags Listings
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} models.Listing
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /listings/{id} [get]
func (h *ListingHandler) GetListing(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, "Invalid listing id", fiber.StatusBadRequest, "getListing")
	}
	listing, err := services.GetListing(h.DB, id)
	if err != nil {
		return serviceError(c, err, "getListing")
	}
	return c.Status(fiber.StatusOK).JSON(listing)
}

// GetListingsByCategory handles GET /api/listings/category/:category
// @Summary List approved listings in a category
// @Tags Listings
// @Produce json
// @Param category path string true "Listing category"
// @Success 200 {array} models.Listing
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /listings/category/{category} [get]
func (h *ListingHandler) GetListingsByCategory(c *fiber.Ctx) error {
	category := models.ListingCategory(c.Params("category"))
	listings, err := services.GetListingsByCategory(h.DB, category)
	if err != nil {
		return serviceError(c, err, "getListingsByCategory")
	}
	return c.Status(fiber.StatusOK).JSON(listings)
}

// GetFeaturedListings handles GET /api/listings/featured
// @Summary List featured listings
// @Tags Listings
// @Produce json
// @Success 200 {array} models.Listing
// @Router /listings/featured [get]
func (h *ListingHandler) GetFeaturedListings(c *fiber.Ctx) error {
	listings, err := services.GetFeaturedListings(h.DB)
	if err != nil {
		return serviceError(c, err, "getFeaturedListings")
	}
	return c.Status(fiber.StatusOK).JSON(listings)
}

// GetVerifiedListings handles GET /api/listings/verified
// @Summary List verified listings
// @Tags Listings
// @Produce json
// @Success 200 {array} models.Listing
// @Router /listings/verified [get]
func (h *ListingHandler) GetVerifiedListings(c *fiber.Ctx) error {
	listings, err := services.GetVerifiedListings(h.DB)
	if err != nil {
		return serviceError(c, err, "getVerifiedListings")
	}
	return c.Status(fiber.StatusOK).JSON(listings)
}

// GetAvailableListings handles GET /api/listings/available
// @Summary List approved listings with units on offer
// @Tags Listings
// @Produce json
// @Success 200 {array} models.Listing
// @Router /listings/available [get]
func (h *ListingHandler) GetAvailableListings(c *fiber.Ctx) error {
	listings, err := services.GetAvailableListings(h.DB)
	if err != nil {
		return serviceError(c, err, "getAvailableListings")
	}
	return c.Status(fiber.StatusOK).JSON(listings)
}

// GetListingsByLocation handles GET /api/listings/nearby?lat=&lon=&radius=
// @Summary List approved listings near a point
// @Tags Listings
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Param radius query number false "Radius in km"
// @Success 200 {array} models.Listing
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /listings/nearby [get]
func (h *ListingHandler) GetListingsByLocation(c *fiber.Ctx) error {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		return utils.ErrorResponse(c, "lat and lon are required", fiber.StatusBadRequest, "getListingsByLocation")
	}

	var radius *float64
	if r := c.Query("radius"); r != "" {
		parsed, err := strconv.ParseFloat(r, 64)
		if err != nil {
			return utils.ErrorResponse(c, "Invalid radius", fiber.StatusBadRequest, "getListingsByLocation")
		}
		radius = &parsed
	}

	listings, err := services.GetListingsByLocation(h.DB, lat, lon, radius)
	if err != nil {
		return serviceError(c, err, "getListingsByLocation")
	}
	return c.Status(fiber.StatusOK).JSON(listings)
}

// GetAvailabilityCounts handles GET /api/listings/counts
// @Summary Unit totals for the headline categories
// @Tags Listings
// @Produce json
// @Success 200 {object} services.AvailabilityCounts
// @Router /listings/counts [get]
func (h *ListingHandler) GetAvailabilityCounts(c *fiber.Ctx) error {
	counts, err := services.GetAvailabilityCounts(h.DB)
	if err != nil {
		return serviceError(c, err, "getAvailabilityCounts")
	}
	return c.Status(fiber.StatusOK).JSON(counts)
}

// GetAvailability handles GET /api/listings/:id/availability
// @Summary Get a listing's unit inventory
// @Tags Listings
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} models.AvailabilityStatus
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /listings/{id}/availability [get]
func (h *ListingHandler) GetAvailability(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, "Invalid listing id", fiber.StatusBadRequest, "getAvailability")
	}
	availability, err := services.GetAvailability(h.DB, id)
	if err != nil {
		return serviceError(c, err, "getAvailability")
	}
	return c.Status(fiber.StatusOK).JSON(availability)
}

// CreateListing handles POST /api/listings
// @Summary Create an owner listing
// @Tags Listings
// @Accept json
// @Produce json
// @Param body body services.ListingInput true "Listing fields"
// @Success 201 {object} utils.CreatedResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /listings [post]
func (h *ListingHandler) CreateListing(c *fiber.Ctx) error {
	principal, err := callerPrincipal(c)
	if err != nil {
		return serviceError(c, err, "createListing")
	}

	var input services.ListingInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "createListing")
	}

	id, err := services.CreateListing(h.DB, principal, input)
	if err != nil {
		return serviceError(c, err, "createListing")
	}
	return utils.CreatedResponse(c, id)
}

// UpdateListing handles PUT /api/listings/:id
// @Summary Update an owned listing
// @Tags Listings
// @Accept json
// @Produce json
// @Param id path int true "Listing ID"
// @Param body body services.ListingInput true "Listing fields"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /listings/{id} [put]
func (h *ListingHandler) UpdateListing(c *fiber.Ctx) error {
	principal, err := callerPrincipal(c)
	if err != nil {
		return serviceError(c, err, "updateListing")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, "Invalid listing id", fiber.StatusBadRequest, "updateListing")
	}

	var input services.ListingInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "updateListing")
	}

	if err := services.UpdateListing(h.DB, principal, callerIsAdmin(c), id, input); err != nil {
		return serviceError(c, err, "updateListing")
	}
	return utils.MutationSuccessResponse(c, 1)
}

// UpdateAvailability handles PUT /api/listings/:id/availability
// @Summary Replace a listing's unit inventory
// @Tags Listings
// @Accept json
// @Produce json
// @Param id path int true "Listing ID"
// @Param body body models.AvailabilityStatus true "Availability"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /listings/{id}/availability [put]
func (h *ListingHandler) UpdateAvailability(c *fiber.Ctx) error {
	principal, err := callerPrincipal(c)
	if err != nil {
		return serviceError(c, err, "updateAvailability")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, "Invalid listing id", fiber.StatusBadRequest, "updateAvailability")
	}

	var availability models.AvailabilityStatus
	if err := c.BodyParser(&availability); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "updateAvailability")
	}

	if err := services.UpdateAvailability(h.DB, principal, callerIsAdmin(c), id, availability); err != nil {
		return serviceError(c, err, "updateAvailability")
	}
	return utils.MutationSuccessResponse(c, 1)
}

// AdvanceStatus handles POST /api/listings/:id/status/advance
// @Summary Advance a listing one step on the booking funnel
// @Tags Listings
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /listings/{id}/status/advance [post]
func (h *ListingHandler) AdvanceStatus(c *fiber.Ctx) error {
	principal, err := callerPrincipal(c)
	if err != nil {
		return serviceError(c, err, "advanceStatus")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, "Invalid listing id", fiber.StatusBadRequest, "advanceStatus")
	}

	next, err := services.AdvancePropertyStatus(h.DB, principal, callerIsAdmin(c), id)
	if err != nil {
		return serviceError(c, err, "advanceStatus")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ok":             true,
		"propertyStatus": next,
	})
}
