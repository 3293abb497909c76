package services_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/styoin/styo-server/internal/models"
	"github.com/styoin/styo-server/internal/services"
	"github.com/styoin/styo-server/internal/types"
)

func publicInput(contact string) services.PublicListingInput {
	return services.PublicListingInput{
		Title:              "Public PG near station",
		Category:           models.CategoryPGHostel,
		PricePerDay:        60000,
		Location:           models.GeoLocation{Lat: 23.2, Lon: 77.4, Address: "5 Station Road"},
		Images:             types.FlexList[string]{"https://img.example/a.jpg", "https://img.example/b.jpg"},
		OwnerName:          "S. Verma",
		OwnerContactNumber: contact,
	}
}

// TestSubmitPublicListingPendingInvisible verifies pending listings stay off
// the public surface until approved
func TestSubmitPublicListingPendingInvisible(t *testing.T) {
	db := setupTestDB(t)

	id, err := services.SubmitPublicListing(db, publicInput("9000000001"), 3, time.Hour)
	if err != nil {
		t.Fatalf("Failed to submit: %v", err)
	}

	listings, err := services.GetListings(db)
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(listings) != 0 {
		t.Errorf("Pending listing leaked to public surface")
	}

	listing, err := services.GetListing(db, id)
	if err != nil {
		t.Fatalf("Failed to get by id: %v", err)
	}
	if listing.ApprovalStatus != models.ApprovalPending {
		t.Errorf("Expected pending, got %s", listing.ApprovalStatus)
	}
	if listing.Owner != "public:9000000001" {
		t.Errorf("Expected provisional owner, got %s", listing.Owner)
	}

	pending, err := services.GetPendingSubmissions(db)
	if err != nil {
		t.Fatalf("Failed to get queue: %v", err)
	}
	if len(pending) != 1 || pending[0].Listing.ID != id {
		t.Errorf("Moderation queue missing the submission")
	}
}

// TestSubmitPublicListingValidation covers the intake field checks
func TestSubmitPublicListingValidation(t *testing.T) {
	db := setupTestDB(t)

	cases := []struct {
		name   string
		mutate func(*services.PublicListingInput)
	}{
		{"missing title", func(in *services.PublicListingInput) { in.Title = "" }},
		{"bad category", func(in *services.PublicListingInput) { in.Category = "igloo" }},
		{"zero price", func(in *services.PublicListingInput) { in.PricePerDay = 0 }},
		{"missing address", func(in *services.PublicListingInput) { in.Location.Address = "" }},
		{"missing owner name", func(in *services.PublicListingInput) { in.OwnerName = "" }},
		{"short contact", func(in *services.PublicListingInput) { in.OwnerContactNumber = "12345" }},
		{"one image", func(in *services.PublicListingInput) { in.Images = in.Images[:1] }},
		{"five images", func(in *services.PublicListingInput) {
			in.Images = append(in.Images, "c", "d", "e")
		}},
	}

	for _, tc := range cases {
		in := publicInput("9000000002")
		tc.mutate(&in)
		if _, err := services.SubmitPublicListing(db, in, 3, time.Hour); !errors.Is(err, types.ErrInvalidInput) {
			t.Errorf("%s: expected invalid input, got: %v", tc.name, err)
		}
	}
}

// TestSubmitPublicListingRateLimit enforces the per-contact-number quota
func TestSubmitPublicListingRateLimit(t *testing.T) {
	db := setupTestDB(t)

	for i := 0; i < 3; i++ {
		in := publicInput("9000000003")
		in.Title = fmt.Sprintf("Submission %d", i)
		if _, err := services.SubmitPublicListing(db, in, 3, time.Hour); err != nil {
			t.Fatalf("Submission %d failed: %v", i, err)
		}
	}

	if _, err := services.SubmitPublicListing(db, publicInput("9000000003"), 3, time.Hour); !errors.Is(err, types.ErrRateLimited) {
		t.Errorf("Expected rate limited on 4th submission, got: %v", err)
	}

	// a different contact number has its own quota
	if _, err := services.SubmitPublicListing(db, publicInput("9000000004"), 3, time.Hour); err != nil {
		t.Errorf("Different contact number should not be limited: %v", err)
	}
}

// TestSubmitPublicListingRateLimitSurvivesModeration the quota holds even
// after the pending submissions are moderated away within the window
func TestSubmitPublicListingRateLimitSurvivesModeration(t *testing.T) {
	db := setupTestDB(t)

	var ids []uint64
	for i := 0; i < 3; i++ {
		in := publicInput("9000000007")
		in.Title = fmt.Sprintf("Submission %d", i)
		id, err := services.SubmitPublicListing(db, in, 3, time.Hour)
		if err != nil {
			t.Fatalf("Submission %d failed: %v", i, err)
		}
		ids = append(ids, id)
	}

	if err := services.RejectListing(db, ids[0]); err != nil {
		t.Fatalf("Failed to reject: %v", err)
	}
	if err := services.RejectListing(db, ids[1]); err != nil {
		t.Fatalf("Failed to reject: %v", err)
	}
	if err := services.ApproveListing(db, ids[2]); err != nil {
		t.Fatalf("Failed to approve: %v", err)
	}

	if _, err := services.SubmitPublicListing(db, publicInput("9000000007"), 3, time.Hour); !errors.Is(err, types.ErrRateLimited) {
		t.Errorf("Moderation should not reopen the quota, got: %v", err)
	}
}

// TestApproveListing approval flow and idempotence
func TestApproveListing(t *testing.T) {
	db := setupTestDB(t)
	id, err := services.SubmitPublicListing(db, publicInput("9000000005"), 3, time.Hour)
	if err != nil {
		t.Fatalf("Failed to submit: %v", err)
	}

	if err := services.ApproveListing(db, id); err != nil {
		t.Fatalf("Failed to approve: %v", err)
	}

	listing, _ := services.GetListing(db, id)
	if listing.ApprovalStatus != models.ApprovalApproved {
		t.Errorf("Expected approved, got %s", listing.ApprovalStatus)
	}
	if !listing.Verified {
		t.Error("Approval should mark the listing verified")
	}

	pending, _ := services.GetPendingSubmissions(db)
	if len(pending) != 0 {
		t.Errorf("Submission should leave the queue on approval")
	}

	// re-approve is a no-op, reject afterwards conflicts
	if err := services.ApproveListing(db, id); err != nil {
		t.Errorf("Re-approve should be a no-op: %v", err)
	}
	if err := services.RejectListing(db, id); !errors.Is(err, types.ErrConflict) {
		t.Errorf("Expected conflict rejecting approved listing, got: %v", err)
	}

	if err := services.ApproveListing(db, 999); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("Expected not found, got: %v", err)
	}
}

// TestRejectListing rejection flow retains the listing row
func TestRejectListing(t *testing.T) {
	db := setupTestDB(t)
	id, err := services.SubmitPublicListing(db, publicInput("9000000006"), 3, time.Hour)
	if err != nil {
		t.Fatalf("Failed to submit: %v", err)
	}

	if err := services.RejectListing(db, id); err != nil {
		t.Fatalf("Failed to reject: %v", err)
	}

	listing, err := services.GetListing(db, id)
	if err != nil {
		t.Fatalf("Rejected listing row should be retained: %v", err)
	}
	if listing.ApprovalStatus != models.ApprovalRejected {
		t.Errorf("Expected rejected, got %s", listing.ApprovalStatus)
	}

	// re-reject is a no-op, approve afterwards conflicts
	if err := services.RejectListing(db, id); err != nil {
		t.Errorf("Re-reject should be a no-op: %v", err)
	}
	if err := services.ApproveListing(db, id); !errors.Is(err, types.ErrConflict) {
		t.Errorf("Expected conflict approving rejected listing, got: %v", err)
	}
}
