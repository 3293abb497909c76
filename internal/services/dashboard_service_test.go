package services_test

import (
	"testing"

	"github.com/styoin/styo-server/internal/models"
	"github.com/styoin/styo-server/internal/services"
)

// TestGetAdminDashboardData composes every store into one payload
func TestGetAdminDashboardData(t *testing.T) {
	db := setupTestDB(t)

	id := createListing(t, db, "owner:a", models.CategoryHotel, 2)
	if _, err := services.CreateOwnerUnlockRequest(db, "user:v", id); err != nil {
		t.Fatalf("Failed to unlock: %v", err)
	}
	if err := services.SaveUserProfile(db, "user:v", services.ProfileInput{Name: "Asha"}, ""); err != nil {
		t.Fatalf("Failed to save profile: %v", err)
	}
	if err := services.UpdateCityChargeSettings(db, "bhopal", models.CityChargeSettings{
		CustomerLeadCharge: true,
	}); err != nil {
		t.Fatalf("Failed to set charges: %v", err)
	}

	data, err := services.GetAdminDashboardData(db)
	if err != nil {
		t.Fatalf("Failed to get dashboard: %v", err)
	}
	if len(data.LeadViews) != 1 {
		t.Errorf("Expected 1 lead, got %d", len(data.LeadViews))
	}
	if len(data.Notifications) != 1 {
		t.Errorf("Expected 1 notification, got %d", len(data.Notifications))
	}
	if len(data.Listings) != 1 {
		t.Errorf("Expected 1 listing, got %d", len(data.Listings))
	}
	if len(data.Users) != 1 {
		t.Errorf("Expected 1 user, got %d", len(data.Users))
	}
	if len(data.CityCharges) != 1 {
		t.Errorf("Expected 1 city row, got %d", len(data.CityCharges))
	}
}

// TestSeedDemoDataOnce seeds an empty store and refuses a second pass
func TestSeedDemoDataOnce(t *testing.T) {
	db := setupTestDB(t)

	seeded, err := services.SeedDemoData(db)
	if err != nil {
		t.Fatalf("Failed to seed: %v", err)
	}
	if seeded == 0 {
		t.Fatal("Expected demo rows to be seeded")
	}

	listings, err := services.GetListings(db)
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(listings) == 0 {
		t.Error("Demo listings should be approved and publicly visible")
	}

	markers, err := services.GetEventMarkers(db)
	if err != nil {
		t.Fatalf("Failed to get markers: %v", err)
	}
	if len(markers) == 0 {
		t.Error("Expected demo event markers")
	}

	again, err := services.SeedDemoData(db)
	if err != nil {
		t.Fatalf("Reseed errored: %v", err)
	}
	if again != 0 {
		t.Errorf("Reseed should be a no-op, seeded %d", again)
	}
}
