package services

import (
	"errors"
	"fmt"

	"github.com/styoin/styo-server/internal/models"
	"github.com/styoin/styo-server/internal/types"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// CreateOwnerUnlockRequest records one unlock of a listing's owner contact:
// one LeadView plus one unread AdminNotification, both-or-neither. Repeat
// unlocks by the same viewer create fresh rows; the lead log is append-only
// and deliberately not de-duplicated.
func CreateOwnerUnlockRequest(db *gorm.DB, viewer string, listingID uint64) (uint64, error) {
	var leadID uint64

	err := db.Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.First(&listing, listingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: listing %d", types.ErrNotFound, listingID)
			}
			return err
		}

		viewerName := displayName(tx, viewer)
		ownerName := displayName(tx, listing.Owner)

		lead := models.LeadView{
			ListingID:        listing.ID,
			Viewer:           viewer,
			ViewerName:       viewerName,
			OwnerPrincipal:   listing.Owner,
			OwnerName:        ownerName,
			OwnerContact:     listing.ContactInfo,
			PropertyTitle:    listing.Title,
			PropertyCategory: listing.Category,
			PropertyArea:     listing.Location.Address,
		}
		if err := tx.Create(&lead).Error; err != nil {
			return err
		}

		notification := models.AdminNotification{
			LeadID:            lead.ID,
			CustomerName:      viewerName,
			CustomerPrincipal: viewer,
			PropertyTitle:     listing.Title,
			Category:          listing.Category,
			Read:              false,
		}
		if err := tx.Create(&notification).Error; err != nil {
			return err
		}

		leadID = lead.ID
		return nil
	})

	return leadID, err
}

// displayName resolves a principal to its profile name, falling back to
// the principal itself for identities that never completed profile setup.
func displayName(db *gorm.DB, principal string) string {
	var profile models.UserProfile
	if err := db.First(&profile, "principal = ?", principal).Error; err != nil {
		return principal
	}
	return profile.Name
}

// GetLeadAnalytics returns the full lead log, newest first. A full scan in
// id order; the listing index has nothing to offer here.
func GetLeadAnalytics(db *gorm.DB) ([]models.LeadView, error) {
	var leads []models.LeadView
	err := db.Order("id DESC").Find(&leads).Error
	return leads, err
}

// GetLeadsForListing returns the unlock history of one listing.
func GetLeadsForListing(db *gorm.DB, listingID uint64) ([]models.LeadView, error) {
	q := db
	// USE INDEX is MySQL syntax; other dialects take the planner's choice
	if db.Dialector.Name() == "mysql" {
		q = db.Clauses(hints.UseIndex("idx_lead_views_listing"))
	}
	var leads []models.LeadView
	err := q.Where("listing_id = ?", listingID).Order("id DESC").Find(&leads).Error
	return leads, err
}

// GetAdminNotifications returns all notifications, newest first.
func GetAdminNotifications(db *gorm.DB) ([]models.AdminNotification, error) {
	var notifications []models.AdminNotification
	err := db.Order("id DESC").Find(&notifications).Error
	return notifications, err
}

// MarkNotificationAsRead flips a notification's read flag to true. The
// flag only ever moves false to true; marking a read notification again is
// a no-op.
func MarkNotificationAsRead(db *gorm.DB, notificationID uint64) error {
	var notification models.AdminNotification
	if err := db.First(&notification, notificationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: notification %d", types.ErrNotFound, notificationID)
		}
		return err
	}
	if notification.Read {
		return nil
	}
	return db.Model(&notification).Update("read", true).Error
}
