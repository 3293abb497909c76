package services

import (
	"errors"
	"fmt"

	"github.com/styoin/styo-server/internal/models"
	"github.com/styoin/styo-server/internal/types"
	"gorm.io/gorm"
)

const maxReviewCommentLen = 500

// AddReview appends an immutable review to an existing listing.
func AddReview(db *gorm.DB, reviewer string, listingID uint64, rating int, comment string) (uint64, error) {
	if rating < 1 || rating > 5 {
		return 0, fmt.Errorf("%w: rating must be between 1 and 5", types.ErrInvalidInput)
	}
	if len(comment) > maxReviewCommentLen {
		return 0, fmt.Errorf("%w: comment exceeds %d characters", types.ErrInvalidInput, maxReviewCommentLen)
	}

	var listing models.Listing
	if err := db.First(&listing, listingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: listing %d", types.ErrNotFound, listingID)
		}
		return 0, err
	}

	review := models.Review{
		ListingID: listingID,
		Reviewer:  reviewer,
		Rating:    rating,
		Comment:   comment,
	}
	if err := db.Create(&review).Error; err != nil {
		return 0, err
	}
	return review.ID, nil
}

// GetReviewsForListing returns a listing's reviews, newest first.
func GetReviewsForListing(db *gorm.DB, listingID uint64) ([]models.Review, error) {
	var reviews []models.Review
	err := db.Where("listing_id = ?", listingID).Order("id DESC").Find(&reviews).Error
	return reviews, err
}

// GetAverageRating returns the arithmetic mean of a listing's ratings, or
// nil when the listing has no reviews.
func GetAverageRating(db *gorm.DB, listingID uint64) (*float64, error) {
	var avg *float64
	err := db.Model(&models.Review{}).
		Where("listing_id = ?", listingID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	return avg, nil
}
