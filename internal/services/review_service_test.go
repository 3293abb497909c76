package services_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/styoin/styo-server/internal/models"
	"github.com/styoin/styo-server/internal/services"
	"github.com/styoin/styo-server/internal/types"
)

// TestAddReviewBounds rejects out-of-range ratings and oversize comments
func TestAddReviewBounds(t *testing.T) {
	db := setupTestDB(t)
	id := createListing(t, db, "owner:a", models.CategoryHotel, 2)

	if _, err := services.AddReview(db, "user:v", id, 0, ""); !errors.Is(err, types.ErrInvalidInput) {
		t.Errorf("Expected invalid input for rating 0, got: %v", err)
	}
	if _, err := services.AddReview(db, "user:v", id, 6, ""); !errors.Is(err, types.ErrInvalidInput) {
		t.Errorf("Expected invalid input for rating 6, got: %v", err)
	}
	long := strings.Repeat("x", 501)
	if _, err := services.AddReview(db, "user:v", id, 3, long); !errors.Is(err, types.ErrInvalidInput) {
		t.Errorf("Expected invalid input for oversize comment, got: %v", err)
	}
	if _, err := services.AddReview(db, "user:v", 999, 3, "fine"); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("Expected not found for missing listing, got: %v", err)
	}
}

// TestAverageRating derives the mean and returns nil with no reviews
func TestAverageRating(t *testing.T) {
	db := setupTestDB(t)
	id := createListing(t, db, "owner:a", models.CategoryHotel, 2)

	avg, err := services.GetAverageRating(db, id)
	if err != nil {
		t.Fatalf("Failed to get average: %v", err)
	}
	if avg != nil {
		t.Errorf("Expected nil average with no reviews, got %v", *avg)
	}

	for _, rating := range []int{2, 3, 4} {
		if _, err := services.AddReview(db, "user:v", id, rating, "ok"); err != nil {
			t.Fatalf("Failed to add review: %v", err)
		}
	}

	avg, err = services.GetAverageRating(db, id)
	if err != nil {
		t.Fatalf("Failed to get average: %v", err)
	}
	if avg == nil || *avg != 3.0 {
		t.Errorf("Expected average 3.0, got %v", avg)
	}

	reviews, err := services.GetReviewsForListing(db, id)
	if err != nil {
		t.Fatalf("Failed to list reviews: %v", err)
	}
	if len(reviews) != 3 {
		t.Errorf("Expected 3 reviews, got %d", len(reviews))
	}
}
