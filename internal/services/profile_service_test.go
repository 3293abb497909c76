package services_test

import (
	"errors"
	"testing"

	"github.com/styoin/styo-server/internal/models"
	"github.com/styoin/styo-server/internal/services"
	"github.com/styoin/styo-server/internal/types"
)

// TestSaveUserProfileCreatesOnFirstSave
func TestSaveUserProfileCreatesOnFirstSave(t *testing.T) {
	db := setupTestDB(t)

	if _, err := services.GetUserProfile(db, "user:new"); !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("Expected not found before first save, got: %v", err)
	}

	in := services.ProfileInput{
		Name:    "Asha",
		Email:   "asha@example.com",
		Phone:   "9876543210",
		IsOwner: true,
		Location: &models.GeoLocation{
			Lat: 23.25, Lon: 77.41, Address: "MP Nagar, Bhopal",
		},
	}
	if err := services.SaveUserProfile(db, "user:new", in, "10.0.0.9"); err != nil {
		t.Fatalf("Failed to save profile: %v", err)
	}

	profile, err := services.GetUserProfile(db, "user:new")
	if err != nil {
		t.Fatalf("Failed to get profile: %v", err)
	}
	if profile.Name != "Asha" || !profile.IsOwner {
		t.Errorf("Profile fields wrong: %+v", profile)
	}
	if profile.IPAddress != "10.0.0.9" {
		t.Errorf("Expected ip captured, got %q", profile.IPAddress)
	}
	if profile.LastLogin == 0 {
		t.Error("Expected last login set on create")
	}
}

// TestSaveUserProfileUpdate preserves location and ip when omitted
func TestSaveUserProfileUpdate(t *testing.T) {
	db := setupTestDB(t)

	first := services.ProfileInput{
		Name: "Asha",
		Location: &models.GeoLocation{
			Lat: 23.25, Lon: 77.41, Address: "MP Nagar, Bhopal",
		},
	}
	if err := services.SaveUserProfile(db, "user:u", first, "10.0.0.9"); err != nil {
		t.Fatalf("Failed first save: %v", err)
	}

	// update without location or ip keeps the stored values
	second := services.ProfileInput{Name: "Asha K"}
	if err := services.SaveUserProfile(db, "user:u", second, ""); err != nil {
		t.Fatalf("Failed second save: %v", err)
	}

	profile, _ := services.GetUserProfile(db, "user:u")
	if profile.Name != "Asha K" {
		t.Errorf("Expected updated name, got %q", profile.Name)
	}
	if profile.Location == nil || profile.Location.Address != "MP Nagar, Bhopal" {
		t.Errorf("Location should survive an update without one: %+v", profile.Location)
	}
	if profile.IPAddress != "10.0.0.9" {
		t.Errorf("IP should survive an update without one, got %q", profile.IPAddress)
	}

	if err := services.SaveUserProfile(db, "user:u", services.ProfileInput{}, ""); !errors.Is(err, types.ErrInvalidInput) {
		t.Errorf("Expected invalid input for empty name, got: %v", err)
	}
}
