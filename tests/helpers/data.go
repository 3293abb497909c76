package helpers

import (
	"testing"

	"github.com/styoin/styo-server/internal/models"
	"gorm.io/gorm"
)

// CreateTestListing creates an approved listing and returns its id.
func CreateTestListing(t *testing.T, db *gorm.DB, owner string, category models.ListingCategory) uint64 {
	t.Helper()
	listing := models.Listing{
		Owner:       owner,
		Title:       "Test " + string(category),
		Category:    category,
		PricePerDay: 150000,
		Availability: models.AvailabilityStatus{
			Status:         models.AvailabilityAvailable,
			AvailableUnits: 4,
			UnitType:       "rooms",
		},
		PropertyStatus: models.StatusAvailable,
		ApprovalStatus: models.ApprovalApproved,
	}
	if err := db.Create(&listing).Error; err != nil {
		t.Fatalf("Failed to create listing: %v", err)
	}
	return listing.ID
}

// CreateTestPendingListing creates a pending listing with its submission row.
func CreateTestPendingListing(t *testing.T, db *gorm.DB, contactNumber string) uint64 {
	t.Helper()
	listing := models.Listing{
		Owner:       "public:" + contactNumber,
		Title:       "Pending submission",
		Category:    models.CategoryPGHostel,
		PricePerDay: 80000,
		Availability: models.AvailabilityStatus{
			Status:         models.AvailabilityAvailable,
			AvailableUnits: 2,
		},
		PropertyStatus: models.StatusAvailable,
		ApprovalStatus: models.ApprovalPending,
	}
	if err := db.Create(&listing).Error; err != nil {
		t.Fatalf("Failed to create pending listing: %v", err)
	}
	submission := models.PublicListingSubmission{
		ListingID:          listing.ID,
		OwnerID:            listing.Owner,
		OwnerName:          "Test Owner",
		OwnerContactNumber: contactNumber,
	}
	if err := db.Create(&submission).Error; err != nil {
		t.Fatalf("Failed to create submission: %v", err)
	}
	return listing.ID
}
