package services

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/styoin/styo-server/internal/models"
	"github.com/styoin/styo-server/internal/types"
	"gorm.io/gorm"
)

// PublicListingInput is a no-login listing submission: the provisional
// listing plus the submitter's contact profile.
type PublicListingInput struct {
	Title        string                    `json:"title"`
	Description  string                    `json:"description"`
	Category     models.ListingCategory    `json:"category"`
	PricePerDay  int64                     `json:"pricePerDay"`
	Availability models.AvailabilityStatus `json:"availability"`
	Location     models.GeoLocation        `json:"location"`
	// web form clients send a lone image as a bare string
	Images             types.FlexList[string] `json:"images"`
	OwnerName          string                 `json:"ownerName"`
	OwnerEmail         string                 `json:"ownerEmail"`
	OwnerContactNumber string                 `json:"ownerContactNumber"`
}

var contactNumberRe = regexp.MustCompile(`^[0-9]{10}$`)

func (in *PublicListingInput) validate() error {
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", types.ErrInvalidInput)
	}
	if !in.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", types.ErrInvalidInput, in.Category)
	}
	if in.PricePerDay <= 0 {
		return fmt.Errorf("%w: pricePerDay must be positive", types.ErrInvalidInput)
	}
	if in.Location.Address == "" {
		return fmt.Errorf("%w: address is required", types.ErrInvalidInput)
	}
	if in.OwnerName == "" {
		return fmt.Errorf("%w: owner name is required", types.ErrInvalidInput)
	}
	if !contactNumberRe.MatchString(in.OwnerContactNumber) {
		return fmt.Errorf("%w: contact number must be 10 digits", types.ErrInvalidInput)
	}
	if len(in.Images) < 2 || len(in.Images) > 4 {
		return fmt.Errorf("%w: between 2 and 4 images required", types.ErrInvalidInput)
	}
	if in.Availability.Status == "" {
		in.Availability.Status = models.AvailabilityAvailable
	}
	if !in.Availability.Status.Valid() {
		return fmt.Errorf("%w: unknown availability status %q", types.ErrInvalidInput, in.Availability.Status)
	}
	return nil
}

// SubmitPublicListing creates a pending listing and its paired submission
// record. The submitter needs no session; the contact number is the
// rate-limit key (limit submissions per rolling window).
func SubmitPublicListing(db *gorm.DB, in PublicListingInput, limit int, window time.Duration) (uint64, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}

	imgs, err := imagesJSON(in.Images.Slice())
	if err != nil {
		return 0, err
	}

	in.Availability.Normalize()

	// Public submitters have no session. The contact number anchors the
	// provisional owner identity until the admin approves.
	owner := "public:" + in.OwnerContactNumber

	var listingID uint64
	err = db.Transaction(func(tx *gorm.DB) error {
		// Count against the listing rows, which outlive moderation: approval
		// and rejection both drop the submission record, and a quota keyed to
		// it would reopen as fast as the queue is worked.
		cutoff := time.Now().Add(-window).UnixNano()
		var recent int64
		if err := tx.Model(&models.Listing{}).
			Where("owner = ? AND created_at > ?", owner, cutoff).
			Count(&recent).Error; err != nil {
			return err
		}
		if recent >= int64(limit) {
			return fmt.Errorf("%w: %d submissions per %s from one contact number",
				types.ErrRateLimited, limit, window)
		}

		listing := models.Listing{
			Owner:          owner,
			Title:          in.Title,
			Description:    in.Description,
			Category:       in.Category,
			PricePerDay:    in.PricePerDay,
			ContactInfo:    in.OwnerContactNumber,
			Availability:   in.Availability,
			PropertyStatus: models.StatusAvailable,
			ApprovalStatus: models.ApprovalPending,
			Location:       in.Location,
			Images:         imgs,
		}
		if err := tx.Create(&listing).Error; err != nil {
			return err
		}

		submission := models.PublicListingSubmission{
			ListingID:          listing.ID,
			OwnerID:            owner,
			OwnerName:          in.OwnerName,
			OwnerEmail:         in.OwnerEmail,
			OwnerContactNumber: in.OwnerContactNumber,
		}
		if err := tx.Create(&submission).Error; err != nil {
			return err
		}

		listingID = listing.ID
		return nil
	})

	return listingID, err
}

// PendingSubmission pairs a submission record with its provisional listing
// for the moderation queue.
type PendingSubmission struct {
	Submission models.PublicListingSubmission `json:"submission"`
	Listing    models.Listing                 `json:"listing"`
}

// GetPendingSubmissions returns the moderation queue, oldest first.
func GetPendingSubmissions(db *gorm.DB) ([]PendingSubmission, error) {
	var submissions []models.PublicListingSubmission
	if err := db.Order("id ASC").Find(&submissions).Error; err != nil {
		return nil, err
	}

	pending := make([]PendingSubmission, 0, len(submissions))
	for _, s := range submissions {
		var listing models.Listing
		if err := db.First(&listing, s.ListingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		pending = append(pending, PendingSubmission{Submission: s, Listing: listing})
	}
	return pending, nil
}

// ApproveListing makes a pending listing publicly visible and marks it
// verified. Approving an already-approved listing is a no-op; a rejected
// listing cannot be resurrected.
func ApproveListing(db *gorm.DB, listingID uint64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.First(&listing, listingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: listing %d", types.ErrNotFound, listingID)
			}
			return err
		}

		switch listing.ApprovalStatus {
		case models.ApprovalApproved:
			return nil
		case models.ApprovalRejected:
			return fmt.Errorf("%w: listing %d was rejected", types.ErrConflict, listingID)
		}

		if err := tx.Model(&listing).Updates(map[string]interface{}{
			"approval_status": models.ApprovalApproved,
			"verified":        true,
		}).Error; err != nil {
			return err
		}

		return tx.Where("listing_id = ?", listingID).
			Delete(&models.PublicListingSubmission{}).Error
	})
}

// RejectListing hides a pending listing permanently. The listing row is
// retained for audit; only the submission record is removed.
func RejectListing(db *gorm.DB, listingID uint64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.First(&listing, listingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: listing %d", types.ErrNotFound, listingID)
			}
			return err
		}

		switch listing.ApprovalStatus {
		case models.ApprovalRejected:
			return nil
		case models.ApprovalApproved:
			return fmt.Errorf("%w: listing %d is already approved", types.ErrConflict, listingID)
		}

		if err := tx.Model(&listing).
			Update("approval_status", models.ApprovalRejected).Error; err != nil {
			return err
		}

		return tx.Where("listing_id = ?", listingID).
			Delete(&models.PublicListingSubmission{}).Error
	})
}
