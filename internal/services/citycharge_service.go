package services

import (
	"fmt"

	"github.com/styoin/styo-server/internal/models"
	"github.com/styoin/styo-server/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetCityChargeSettings returns the full charge policy table.
func GetCityChargeSettings(db *gorm.DB) ([]models.CityChargeSettings, error) {
	var settings []models.CityChargeSettings
	err := db.Order("city ASC").Find(&settings).Error
	return settings, err
}

// GetChargeStatusForCity returns the charge toggles for one city. A city
// with no row reads as all-false: no charges until an admin turns them on.
func GetChargeStatusForCity(db *gorm.DB, city string) (models.CityChargeSettings, error) {
	if city == "" {
		return models.CityChargeSettings{}, fmt.Errorf("%w: city is required", types.ErrInvalidInput)
	}
	var settings models.CityChargeSettings
	err := db.First(&settings, "city = ?", city).Error
	if err == gorm.ErrRecordNotFound {
		return models.CityChargeSettings{City: city}, nil
	}
	return settings, err
}

// UpdateCityChargeSettings upserts the charge toggles for one city.
func UpdateCityChargeSettings(db *gorm.DB, city string, settings models.CityChargeSettings) error {
	if city == "" {
		return fmt.Errorf("%w: city is required", types.ErrInvalidInput)
	}
	settings.City = city
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "city"}},
		UpdateAll: true,
	}).Create(&settings).Error
}

// CityChargeUpdate names one city's replacement settings in a bulk batch.
type CityChargeUpdate struct {
	City     string                    `json:"city"`
	Settings models.CityChargeSettings `json:"settings"`
}

// BulkUpdateCityCharges replaces the named cities' settings as one atomic
// batch. The admin UI submits the whole table at once; a partial apply
// would leave it inconsistent with what the admin saw, so it is all or
// nothing.
func BulkUpdateCityCharges(db *gorm.DB, updates []CityChargeUpdate) error {
	if len(updates) == 0 {
		return fmt.Errorf("%w: no updates given", types.ErrInvalidInput)
	}
	for _, u := range updates {
		if u.City == "" {
			return fmt.Errorf("%w: update with empty city", types.ErrInvalidInput)
		}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			settings := u.Settings
			settings.City = u.City
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "city"}},
				UpdateAll: true,
			}).Create(&settings).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
