package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/styoin/styo-server/internal/handlers"
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

func createApprovedListing(t *testing.T, db *gorm.DB, title string, category models.ListingCategory) uint64 {
	t.Helper()
	id, err := services.CreateListing(db, "owner:h", services.ListingInput{
		Title:       title,
		Category:    category,
		PricePerDay: 100000,
		Availability: models.AvailabilityStatus{
			Status:         models.AvailabilityAvailable,
			AvailableUnits: 3,
		},
	})
	if err != nil {
		t.Fatalf("Failed to create listing: %v", err)
	}
	return id
}

// authedApp simulates an authenticated session by priming locals the way
// the auth middleware does
func authedApp(principal string, admin bool) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("principal", principal)
		c.Locals("isAdmin", admin)
		return c.Next()
	})
	return app
}

// TestGetListings returns approved listings only
func TestGetListings(t *testing.T) {
	db := setupTestDB(t)
	createApprovedListing(t, db, "Visible Hotel", models.CategoryHotel)
	db.Create(&models.Listing{
		Owner: "owner:h", Title: "Hidden", Category: models.CategoryHotel,
		ApprovalStatus: models.ApprovalPending, PropertyStatus: models.StatusAvailable,
	})

	app := fiber.New()
	handler := &handlers.ListingHandler{DB: db}
	app.Get("/api/listings", handler.GetListings)

	req := httptest.NewRequest("GET", "/api/listings", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var listings []models.Listing
	if err := json.NewDecoder(resp.Body).Decode(&listings); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(listings) != 1 {
		t.Fatalf("Expected 1 listing, got %d", len(listings))
	}
	if listings[0].Title != "Visible Hotel" {
		t.Errorf("Wrong listing returned: %s", listings[0].Title)
	}
}

// TestGetListingNotFound maps a missing id to the 404 envelope
func TestGetListingNotFound(t *testing.T) {
	db := setupTestDB(t)

	app := fiber.New()
	handler := &handlers.ListingHandler{DB: db}
	app.Get("/api/listings/:id", handler.GetListing)

	req := httptest.NewRequest("GET", "/api/listings/12345", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Errorf("Expected status 404, got %d", resp.StatusCode)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["ok"] != false {
		t.Errorf("Expected ok=false in error envelope, got %v", body["ok"])
	}
}

// TestGetListingBadID maps a non-numeric id to 400
func TestGetListingBadID(t *testing.T) {
	db := setupTestDB(t)

	app := fiber.New()
	handler := &handlers.ListingHandler{DB: db}
	app.Get("/api/listings/:id", handler.GetListing)

	req := httptest.NewRequest("GET", "/api/listings/abc", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}
}

// TestCreateListingHandler creates through the authed route
func TestCreateListingHandler(t *testing.T) {
	db := setupTestDB(t)

	app := authedApp("owner:h", false)
	handler := &handlers.ListingHandler{DB: db}
	app.Post("/api/listings", handler.CreateListing)

	body, _ := json.Marshal(map[string]interface{}{
		"title":       "New PG",
		"category":    "pgHostel",
		"pricePerDay": 70000,
		"availability": map[string]interface{}{
			"status":         "available",
			"availableUnits": 6,
		},
	})
	req := httptest.NewRequest("POST", "/api/listings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Errorf("Expected status 201, got %d", resp.StatusCode)
	}

	var created map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if created["id"] == nil {
		t.Error("Expected id in create response")
	}
}

// TestAdvanceStatusHandler owner advance plus conflict at terminal state
func TestAdvanceStatusHandler(t *testing.T) {
	db := setupTestDB(t)
	id := createApprovedListing(t, db, "Flat", models.CategoryFamilyFlat)

	app := authedApp("owner:h", false)
	handler := &handlers.ListingHandler{DB: db}
	app.Post("/api/listings/:id/status/advance", handler.AdvanceStatus)

	url := "/api/listings/" + itoa(id) + "/status/advance"
	expected := []string{"visitCompleted", "underConfirmation", "bookedViaSTYO"}
	for _, want := range expected {
		req := httptest.NewRequest("POST", url, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Failed to execute request: %v", err)
		}
		if resp.StatusCode != 200 {
			t.Fatalf("Expected status 200, got %d", resp.StatusCode)
		}
		var body map[string]interface{}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if body["propertyStatus"] != want {
			t.Errorf("Expected %s, got %v", want, body["propertyStatus"])
		}
	}

	// terminal state responds 409
	req := httptest.NewRequest("POST", url, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 409 {
		t.Errorf("Expected status 409 at terminal state, got %d", resp.StatusCode)
	}
}

// TestAdvanceStatusForbidden non-owner gets 403
func TestAdvanceStatusForbidden(t *testing.T) {
	db := setupTestDB(t)
	id := createApprovedListing(t, db, "Hall", models.CategoryMarriageHall)

	app := authedApp("user:other", false)
	handler := &handlers.ListingHandler{DB: db}
	app.Post("/api/listings/:id/status/advance", handler.AdvanceStatus)

	req := httptest.NewRequest("POST", "/api/listings/"+itoa(id)+"/status/advance", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 403 {
		t.Errorf("Expected status 403, got %d", resp.StatusCode)
	}
}

func itoa(id uint64) string {
	return strconv.FormatUint(id, 10)
}
