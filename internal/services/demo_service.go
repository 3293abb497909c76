package services

import (
	"encoding/json"
	"fmt"

	"github.com/styoin/styo-server/data"
	"github.com/styoin/styo-server/internal/models"
	"gorm.io/gorm"
)

type demoListing struct {
	ListingInput
	Verified bool `json:"verified"`
	Featured bool `json:"featured"`
}

// SeedDemoData loads the embedded demo fixtures into an empty store.
// Demo listings are owned by a reserved principal and load only once;
// reseeding a populated store is a no-op.
func SeedDemoData(db *gorm.DB) (int64, error) {
	const demoOwner = "demo:styo"

	var existing int64
	if err := db.Model(&models.Listing{}).
		Where("owner = ?", demoOwner).Count(&existing).Error; err != nil {
		return 0, err
	}
	if existing > 0 {
		return 0, nil
	}

	var listings []demoListing
	if err := json.Unmarshal(data.DemoListings, &listings); err != nil {
		return 0, fmt.Errorf("demo listings fixture: %w", err)
	}

	var markers []models.EventMarker
	if err := json.Unmarshal(data.DemoEvents, &markers); err != nil {
		return 0, fmt.Errorf("demo events fixture: %w", err)
	}

	var seeded int64
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, d := range listings {
			imgs, err := imagesJSON(d.Images)
			if err != nil {
				return err
			}
			d.Availability.Normalize()

			listing := models.Listing{
				Owner:          demoOwner,
				Title:          d.Title,
				Description:    d.Description,
				Category:       d.Category,
				PricePerDay:    d.PricePerDay,
				ContactInfo:    d.ContactInfo,
				Availability:   d.Availability,
				PropertyStatus: models.StatusAvailable,
				ApprovalStatus: models.ApprovalApproved,
				Verified:       d.Verified,
				Featured:       d.Featured,
				Location:       d.Location,
				Images:         imgs,
			}
			if err := tx.Create(&listing).Error; err != nil {
				return err
			}
			seeded++
		}

		for _, m := range markers {
			marker := m
			marker.ID = 0
			if err := tx.Create(&marker).Error; err != nil {
				return err
			}
			seeded++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return seeded, nil
}
