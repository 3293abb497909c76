package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/styoin/styo-server/internal/models"
	"github.com/styoin/styo-server/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// ListingInput carries the caller-editable fields of a listing.
type ListingInput struct {
	Title        string                    `json:"title"`
	Description  string                    `json:"description"`
	Category     models.ListingCategory    `json:"category"`
	PricePerDay  int64                     `json:"pricePerDay"`
	ContactInfo  string                    `json:"contactInfo"`
	Availability models.AvailabilityStatus `json:"availability"`
	Location     models.GeoLocation        `json:"location"`
	Images       []string                  `json:"images"`
}

func (in *ListingInput) validate() error {
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", types.ErrInvalidInput)
	}
	if !in.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", types.ErrInvalidInput, in.Category)
	}
	if in.PricePerDay < 0 {
		return fmt.Errorf("%w: pricePerDay must not be negative", types.ErrInvalidInput)
	}
	if in.Availability.Status == "" {
		in.Availability.Status = models.AvailabilityAvailable
	}
	if !in.Availability.Status.Valid() {
		return fmt.Errorf("%w: unknown availability status %q", types.ErrInvalidInput, in.Availability.Status)
	}
	return nil
}

func imagesJSON(images []string) (models.JSON, error) {
	if images == nil {
		images = []string{}
	}
	raw, err := json.Marshal(images)
	if err != nil {
		return models.JSON{}, err
	}
	var j models.JSON
	if err := j.Scan(raw); err != nil {
		return models.JSON{}, err
	}
	return j, nil
}

// CreateListing creates an owner listing. Owner-created listings are
// approved immediately; only public submissions start pending.
func CreateListing(db *gorm.DB, owner string, in ListingInput) (uint64, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}

	imgs, err := imagesJSON(in.Images)
	if err != nil {
		return 0, err
	}

	in.Availability.Normalize()

	listing := models.Listing{
		Owner:          owner,
		Title:          in.Title,
		Description:    in.Description,
		Category:       in.Category,
		PricePerDay:    in.PricePerDay,
		ContactInfo:    in.ContactInfo,
		Availability:   in.Availability,
		PropertyStatus: models.StatusAvailable,
		ApprovalStatus: models.ApprovalApproved,
		Location:       in.Location,
		Images:         imgs,
	}

	if err := db.Create(&listing).Error; err != nil {
		return 0, err
	}

	return listing.ID, nil
}

// UpdateListing replaces the caller-editable fields of a listing. Only the
// owner (or an admin) may update; approval, verification and feature flags
// are not touched here.
func UpdateListing(db *gorm.DB, caller string, admin bool, id uint64, in ListingInput) error {
	if err := in.validate(); err != nil {
		return err
	}

	imgs, err := imagesJSON(in.Images)
	if err != nil {
		return err
	}

	in.Availability.Normalize()

	return db.Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.First(&listing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: listing %d", types.ErrNotFound, id)
			}
			return err
		}

		if !admin && listing.Owner != caller {
			return fmt.Errorf("%w: caller does not own listing %d", types.ErrUnauthorized, id)
		}

		return tx.Model(&listing).Updates(map[string]interface{}{
			"title":                        in.Title,
			"description":                  in.Description,
			"category":                     in.Category,
			"price_per_day":                in.PricePerDay,
			"contact_info":                 in.ContactInfo,
			"availability_status":          in.Availability.Status,
			"availability_available_units": in.Availability.AvailableUnits,
			"availability_unit_type":       in.Availability.UnitType,
			"availability_dates":           in.Availability.Dates,
			"location_lat":                 in.Location.Lat,
			"location_lon":                 in.Location.Lon,
			"location_address":             in.Location.Address,
			"images":                       imgs,
		}).Error
	})
}

// UpdateAvailability replaces only the unit inventory of a listing.
func UpdateAvailability(db *gorm.DB, caller string, admin bool, id uint64, av models.AvailabilityStatus) error {
	if !av.Status.Valid() {
		return fmt.Errorf("%w: unknown availability status %q", types.ErrInvalidInput, av.Status)
	}
	av.Normalize()

	return db.Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.First(&listing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: listing %d", types.ErrNotFound, id)
			}
			return err
		}

		if !admin && listing.Owner != caller {
			return fmt.Errorf("%w: caller does not own listing %d", types.ErrUnauthorized, id)
		}

		return tx.Model(&listing).Updates(map[string]interface{}{
			"availability_status":          av.Status,
			"availability_available_units": av.AvailableUnits,
			"availability_unit_type":       av.UnitType,
			"availability_dates":           av.Dates,
		}).Error
	})
}

// GetListing returns a listing by id regardless of approval status; the
// moderation surface needs to inspect pending and rejected rows.
func GetListing(db *gorm.DB, id uint64) (*models.Listing, error) {
	var listing models.Listing
	if err := db.First(&listing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: listing %d", types.ErrNotFound, id)
		}
		return nil, err
	}
	return &listing, nil
}

// approvedOnly scopes a query to listings seekers are allowed to see.
// Pending and rejected listings never appear in public queries.
func approvedOnly(db *gorm.DB) *gorm.DB {
	return db.Where("approval_status = ?", models.ApprovalApproved)
}

// GetListings returns all approved listings, newest first.
func GetListings(db *gorm.DB) ([]models.Listing, error) {
	var listings []models.Listing
	err := approvedOnly(db).Order("id DESC").Find(&listings).Error
	return listings, err
}

// GetAllListings returns every listing including pending and rejected
// rows. Admin dashboard only.
func GetAllListings(db *gorm.DB) ([]models.Listing, error) {
	var listings []models.Listing
	err := db.Order("id DESC").Find(&listings).Error
	return listings, err
}

// GetListingsByCategory returns approved listings in a category.
func GetListingsByCategory(db *gorm.DB, category models.ListingCategory) ([]models.Listing, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", types.ErrInvalidInput, category)
	}
	var listings []models.Listing
	err := approvedOnly(db).Where("category = ?", category).Order("id DESC").Find(&listings).Error
	return listings, err
}

// GetFeaturedListings returns approved featured listings.
func GetFeaturedListings(db *gorm.DB) ([]models.Listing, error) {
	var listings []models.Listing
	err := approvedOnly(db).Where("featured = ?", true).Order("id DESC").Find(&listings).Error
	return listings, err
}

// GetVerifiedListings returns approved verified listings.
func GetVerifiedListings(db *gorm.DB) ([]models.Listing, error) {
	var listings []models.Listing
	err := approvedOnly(db).Where("verified = ?", true).Order("id DESC").Find(&listings).Error
	return listings, err
}

// GetAvailableListings returns approved listings with units on offer.
func GetAvailableListings(db *gorm.DB) ([]models.Listing, error) {
	var listings []models.Listing
	err := approvedOnly(db).
		Where("availability_status <> ?", models.AvailabilityBooked).
		Order("id DESC").Find(&listings).Error
	return listings, err
}

// DefaultSearchRadiusKm applies when a location query gives no radius.
const DefaultSearchRadiusKm = 25.0

// GetListingsByLocation returns approved listings within radiusKm of the
// given point, nearest first. Distance is great-circle (haversine),
// computed over the candidate set in process.
func GetListingsByLocation(db *gorm.DB, lat, lon float64, radiusKm *float64) ([]models.Listing, error) {
	radius := DefaultSearchRadiusKm
	if radiusKm != nil && *radiusKm > 0 {
		radius = *radiusKm
	}

	var candidates []models.Listing
	if err := approvedOnly(db).Find(&candidates).Error; err != nil {
		return nil, err
	}

	type scored struct {
		listing  models.Listing
		distance float64
	}
	var within []scored
	for _, l := range candidates {
		d := haversineKm(lat, lon, l.Location.Lat, l.Location.Lon)
		if d <= radius {
			within = append(within, scored{l, d})
		}
	}

	// insertion sort by distance; candidate sets are small
	for i := 1; i < len(within); i++ {
		for j := i; j > 0 && within[j].distance < within[j-1].distance; j-- {
			within[j], within[j-1] = within[j-1], within[j]
		}
	}

	listings := make([]models.Listing, len(within))
	for i, s := range within {
		listings[i] = s.listing
	}
	return listings, nil
}

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371.0
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

// AvailabilityCounts are the home-page unit totals per headline category.
type AvailabilityCounts struct {
	PGRooms       int64 `json:"pgRooms"`
	FamilyFlats   int64 `json:"familyFlats"`
	Hotels        int64 `json:"hotels"`
	MarriageHalls int64 `json:"marriageHalls"`
}

// GetAvailabilityCounts sums available units of approved, non-booked
// listings for the four headline categories.
func GetAvailabilityCounts(db *gorm.DB) (AvailabilityCounts, error) {
	var counts AvailabilityCounts

	sum := func(category models.ListingCategory, dst *int64) error {
		var total *int64
		err := approvedOnly(db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)})).
			Model(&models.Listing{}).
			Where("category = ? AND availability_status <> ?", category, models.AvailabilityBooked).
			Select("SUM(availability_available_units)").
			Scan(&total).Error
		if err != nil {
			return err
		}
		if total != nil {
			*dst = *total
		}
		return nil
	}

	if err := sum(models.CategoryPGHostel, &counts.PGRooms); err != nil {
		return counts, err
	}
	if err := sum(models.CategoryFamilyFlat, &counts.FamilyFlats); err != nil {
		return counts, err
	}
	if err := sum(models.CategoryHotel, &counts.Hotels); err != nil {
		return counts, err
	}
	if err := sum(models.CategoryMarriageHall, &counts.MarriageHalls); err != nil {
		return counts, err
	}
	return counts, nil
}

// AdvancePropertyStatus moves a listing one step forward on the booking
// funnel. Transitions are linearized: the row is locked, the next state is
// computed from the locked value, and the update is guarded on the state
// it was computed from. A lost race surfaces as Conflict.
func AdvancePropertyStatus(db *gorm.DB, caller string, admin bool, id uint64) (models.PropertyStatus, error) {
	var next models.PropertyStatus

	err := db.Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&listing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: listing %d", types.ErrNotFound, id)
			}
			return err
		}

		if !admin && listing.Owner != caller {
			return fmt.Errorf("%w: caller does not own listing %d", types.ErrUnauthorized, id)
		}

		n, err := models.NextPropertyStatus(listing.PropertyStatus)
		if err != nil {
			return fmt.Errorf("%w: %v", types.ErrConflict, err)
		}

		result := tx.Model(&models.Listing{}).
			Where("id = ? AND property_status = ?", id, listing.PropertyStatus).
			Update("property_status", n)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: listing %d changed status concurrently", types.ErrConflict, id)
		}

		next = n
		return nil
	})

	return next, err
}

// VerifyListing sets the verified flag on a listing. Admin only.
func VerifyListing(db *gorm.DB, id uint64, verified bool) error {
	return setListingFlag(db, id, "verified", verified)
}

// SetFeatured sets the featured flag on a listing. Admin only; usually
// follows a succeeded featuredListing payment.
func SetFeatured(db *gorm.DB, id uint64, featured bool) error {
	return setListingFlag(db, id, "featured", featured)
}

// setListingFlag fetches before updating so that re-applying the current
// value stays a success. MySQL reports changed rows, not matched rows, and
// a RowsAffected check would read a same-value update as a missing row.
func setListingFlag(db *gorm.DB, id uint64, column string, value bool) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.First(&listing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: listing %d", types.ErrNotFound, id)
			}
			return err
		}
		return tx.Model(&listing).Update(column, value).Error
	})
}

// GetAvailability returns only the availability block of a listing.
func GetAvailability(db *gorm.DB, id uint64) (*models.AvailabilityStatus, error) {
	listing, err := GetListing(db, id)
	if err != nil {
		return nil, err
	}
	return &listing.Availability, nil
}
