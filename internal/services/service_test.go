package services_test

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/styoin/styo-server/internal/models"
	"github.com/styoin/styo-server/internal/services"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Listing{},
		&models.Review{},
		&models.LeadView{},
		&models.AdminNotification{},
		&models.PublicListingSubmission{},
		&models.CityChargeSettings{},
		&models.UserProfile{},
		&models.PaymentSession{},
		&models.EventMarker{},
		&models.AppSetting{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// createListing inserts an approved listing owned by owner and returns its id
func createListing(t *testing.T, db *gorm.DB, owner string, category models.ListingCategory, units uint) uint64 {
	t.Helper()
	id, err := services.CreateListing(db, owner, services.ListingInput{
		Title:       "Test " + string(category),
		Category:    category,
		PricePerDay: 120000,
		Availability: models.AvailabilityStatus{
			Status:         models.AvailabilityAvailable,
			AvailableUnits: units,
			UnitType:       "rooms",
		},
	})
	if err != nil {
		t.Fatalf("Failed to create listing: %v", err)
	}
	return id
}
