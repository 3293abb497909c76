package handlers_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/styoin/styo-server/internal/handlers"
)

// TestGetCallerRoleReportsAdmin the role endpoint reflects the session's
// admin standing, not the route it was reached through
func TestGetCallerRoleReportsAdmin(t *testing.T) {
	db := setupTestDB(t)
	handler := &handlers.ProfileHandler{DB: db}

	for _, tc := range []struct {
		name  string
		admin bool
	}{
		{"admin session", true},
		{"user session", false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			app := authedApp("user:role-check", tc.admin)
			app.Get("/api/profile/role", handler.GetCallerRole)

			req := httptest.NewRequest("GET", "/api/profile/role", nil)
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("Failed to execute request: %v", err)
			}
			if resp.StatusCode != 200 {
				t.Fatalf("Expected status 200, got %d", resp.StatusCode)
			}

			var body struct {
				Principal string `json:"principal"`
				IsAdmin   bool   `json:"isAdmin"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if body.Principal != "user:role-check" {
				t.Errorf("Expected principal user:role-check, got %s", body.Principal)
			}
			if body.IsAdmin != tc.admin {
				t.Errorf("Expected isAdmin=%v, got %v", tc.admin, body.IsAdmin)
			}
		})
	}
}
