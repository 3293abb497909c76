package services_test

import (
	"errors"
	"testing"

	"github.com/styoin/styo-server/internal/models"
	"github.com/styoin/styo-server/internal/services"
	"github.com/styoin/styo-server/internal/types"
)

// TestCreateListingApprovedImmediately verifies owner-created listings skip moderation
func TestCreateListingApprovedImmediately(t *testing.T) {
	db := setupTestDB(t)

	id := createListing(t, db, "owner:a", models.CategoryHotel, 3)

	listing, err := services.GetListing(db, id)
	if err != nil {
		t.Fatalf("Failed to get listing: %v", err)
	}
	if listing.ApprovalStatus != models.ApprovalApproved {
		t.Errorf("Expected approved, got %s", listing.ApprovalStatus)
	}
	if listing.PropertyStatus != models.StatusAvailable {
		t.Errorf("Expected available, got %s", listing.PropertyStatus)
	}

	listings, err := services.GetListings(db)
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(listings) != 1 {
		t.Errorf("Expected 1 listing, got %d", len(listings))
	}
}

// TestCreateListingValidation rejects bad category and negative price
func TestCreateListingValidation(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.CreateListing(db, "owner:a", services.ListingInput{
		Title:    "Bad",
		Category: "castle",
	})
	if !errors.Is(err, types.ErrInvalidInput) {
		t.Errorf("Expected invalid input for unknown category, got: %v", err)
	}

	_, err = services.CreateListing(db, "owner:a", services.ListingInput{
		Title:       "Bad",
		Category:    models.CategoryHotel,
		PricePerDay: -1,
	})
	if !errors.Is(err, types.ErrInvalidInput) {
		t.Errorf("Expected invalid input for negative price, got: %v", err)
	}
}

// TestUpdateListingOwnership verifies only the owner or an admin may update
func TestUpdateListingOwnership(t *testing.T) {
	db := setupTestDB(t)
	id := createListing(t, db, "owner:a", models.CategoryHotel, 3)

	in := services.ListingInput{
		Title:       "Renamed",
		Category:    models.CategoryHotel,
		PricePerDay: 90000,
		Availability: models.AvailabilityStatus{
			Status:         models.AvailabilityAvailable,
			AvailableUnits: 2,
		},
	}

	if err := services.UpdateListing(db, "owner:b", false, id, in); !errors.Is(err, types.ErrUnauthorized) {
		t.Errorf("Expected unauthorized for non-owner, got: %v", err)
	}
	if err := services.UpdateListing(db, "owner:a", false, id, in); err != nil {
		t.Errorf("Owner update failed: %v", err)
	}
	if err := services.UpdateListing(db, "admin:x", true, id, in); err != nil {
		t.Errorf("Admin update failed: %v", err)
	}

	listing, _ := services.GetListing(db, id)
	if listing.Title != "Renamed" {
		t.Errorf("Update did not stick, title = %q", listing.Title)
	}

	if err := services.UpdateListing(db, "owner:a", false, 999, in); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("Expected not found, got: %v", err)
	}
}

// TestUpdateAvailabilityNormalizes verifies the booked/zero-units invariant
func TestUpdateAvailabilityNormalizes(t *testing.T) {
	db := setupTestDB(t)
	id := createListing(t, db, "owner:a", models.CategoryPGHostel, 5)

	// booked forces units to zero
	err := services.UpdateAvailability(db, "owner:a", false, id, models.AvailabilityStatus{
		Status:         models.AvailabilityBooked,
		AvailableUnits: 7,
	})
	if err != nil {
		t.Fatalf("Failed to update availability: %v", err)
	}
	av, err := services.GetAvailability(db, id)
	if err != nil {
		t.Fatalf("Failed to get availability: %v", err)
	}
	if av.AvailableUnits != 0 {
		t.Errorf("Booked listing should hold 0 units, got %d", av.AvailableUnits)
	}

	// zero units demotes available to booked
	err = services.UpdateAvailability(db, "owner:a", false, id, models.AvailabilityStatus{
		Status:         models.AvailabilityAvailable,
		AvailableUnits: 0,
	})
	if err != nil {
		t.Fatalf("Failed to update availability: %v", err)
	}
	av, _ = services.GetAvailability(db, id)
	if av.Status != models.AvailabilityBooked {
		t.Errorf("Zero units should read as booked, got %s", av.Status)
	}
}

// TestAdvancePropertyStatusChain walks the funnel to its terminal state
func TestAdvancePropertyStatusChain(t *testing.T) {
	db := setupTestDB(t)
	id := createListing(t, db, "owner:a", models.CategoryFamilyFlat, 1)

	want := []models.PropertyStatus{
		models.StatusVisitCompleted,
		models.StatusUnderConfirmation,
		models.StatusBookedViaSTYO,
	}
	for _, expected := range want {
		next, err := services.AdvancePropertyStatus(db, "owner:a", false, id)
		if err != nil {
			t.Fatalf("Failed to advance: %v", err)
		}
		if next != expected {
			t.Errorf("Expected %s, got %s", expected, next)
		}
	}

	if _, err := services.AdvancePropertyStatus(db, "owner:a", false, id); !errors.Is(err, types.ErrConflict) {
		t.Errorf("Expected conflict at terminal state, got: %v", err)
	}
}

// TestAdvancePropertyStatusAuthorization rejects non-owners
func TestAdvancePropertyStatusAuthorization(t *testing.T) {
	db := setupTestDB(t)
	id := createListing(t, db, "owner:a", models.CategoryHotel, 1)

	if _, err := services.AdvancePropertyStatus(db, "owner:b", false, id); !errors.Is(err, types.ErrUnauthorized) {
		t.Errorf("Expected unauthorized, got: %v", err)
	}
	// admins may advance any listing
	if _, err := services.AdvancePropertyStatus(db, "admin:x", true, id); err != nil {
		t.Errorf("Admin advance failed: %v", err)
	}
	if _, err := services.AdvancePropertyStatus(db, "owner:a", false, 999); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("Expected not found, got: %v", err)
	}
}

// TestGetListingsByLocation filters by radius and sorts nearest first
func TestGetListingsByLocation(t *testing.T) {
	db := setupTestDB(t)

	create := func(title string, lat, lon float64) {
		_, err := services.CreateListing(db, "owner:a", services.ListingInput{
			Title:       title,
			Category:    models.CategoryHotel,
			PricePerDay: 100000,
			Availability: models.AvailabilityStatus{
				Status:         models.AvailabilityAvailable,
				AvailableUnits: 1,
			},
			Location: models.GeoLocation{Lat: lat, Lon: lon, Address: title},
		})
		if err != nil {
			t.Fatalf("Failed to create %s: %v", title, err)
		}
	}

	// Bhopal city center and points ~5km, ~12km, and ~200km out
	create("near", 23.26, 77.41)
	create("mid", 23.35, 77.45)
	create("far", 24.9, 78.9)

	listings, err := services.GetListingsByLocation(db, 23.2599, 77.4126, nil)
	if err != nil {
		t.Fatalf("Failed to search: %v", err)
	}
	if len(listings) != 2 {
		t.Fatalf("Expected 2 within default radius, got %d", len(listings))
	}
	if listings[0].Title != "near" {
		t.Errorf("Expected nearest first, got %s", listings[0].Title)
	}

	wide := 500.0
	listings, err = services.GetListingsByLocation(db, 23.2599, 77.4126, &wide)
	if err != nil {
		t.Fatalf("Failed to search: %v", err)
	}
	if len(listings) != 3 {
		t.Errorf("Expected all 3 within 500km, got %d", len(listings))
	}
}

// TestGetAvailabilityCounts sums units per headline category
func TestGetAvailabilityCounts(t *testing.T) {
	db := setupTestDB(t)

	createListing(t, db, "owner:a", models.CategoryPGHostel, 4)
	createListing(t, db, "owner:a", models.CategoryPGHostel, 6)
	createListing(t, db, "owner:a", models.CategoryHotel, 10)
	bookedID := createListing(t, db, "owner:a", models.CategoryHotel, 8)

	// booked listings do not count
	if err := services.UpdateAvailability(db, "owner:a", false, bookedID, models.AvailabilityStatus{
		Status: models.AvailabilityBooked,
	}); err != nil {
		t.Fatalf("Failed to book listing: %v", err)
	}

	counts, err := services.GetAvailabilityCounts(db)
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if counts.PGRooms != 10 {
		t.Errorf("Expected 10 PG rooms, got %d", counts.PGRooms)
	}
	if counts.Hotels != 10 {
		t.Errorf("Expected 10 hotel units, got %d", counts.Hotels)
	}
	if counts.MarriageHalls != 0 {
		t.Errorf("Expected 0 marriage halls, got %d", counts.MarriageHalls)
	}
}

// TestVerifyAndFeatureFlags exercises the admin flag setters
func TestVerifyAndFeatureFlags(t *testing.T) {
	db := setupTestDB(t)
	id := createListing(t, db, "owner:a", models.CategoryEventSpace, 1)

	if err := services.VerifyListing(db, id, true); err != nil {
		t.Fatalf("Failed to verify: %v", err)
	}
	if err := services.SetFeatured(db, id, true); err != nil {
		t.Fatalf("Failed to feature: %v", err)
	}

	verified, err := services.GetVerifiedListings(db)
	if err != nil {
		t.Fatalf("Failed to list verified: %v", err)
	}
	if len(verified) != 1 {
		t.Errorf("Expected 1 verified listing, got %d", len(verified))
	}
	featured, err := services.GetFeaturedListings(db)
	if err != nil {
		t.Fatalf("Failed to list featured: %v", err)
	}
	if len(featured) != 1 {
		t.Errorf("Expected 1 featured listing, got %d", len(featured))
	}

	// re-applying the value already in place is still a success
	if err := services.VerifyListing(db, id, true); err != nil {
		t.Errorf("Re-verify with same value should succeed: %v", err)
	}
	if err := services.SetFeatured(db, id, true); err != nil {
		t.Errorf("Re-feature with same value should succeed: %v", err)
	}

	if err := services.VerifyListing(db, 999, true); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("Expected not found, got: %v", err)
	}
	if err := services.SetFeatured(db, 999, true); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("Expected not found, got: %v", err)
	}
}
