package services

import (
	"errors"
	"strconv"

	"github.com/styoin/styo-server/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IsFreeTrialMode reports the global payment override. With no row yet the
// given default applies (bootstrap installs keep the trial on until an
// admin flips it).
func IsFreeTrialMode(db *gorm.DB, defaultValue bool) (bool, error) {
	var setting models.AppSetting
	err := db.First(&setting, "key = ?", models.SettingFreeTrialMode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return defaultValue, nil
		}
		return false, err
	}
	enabled, err := strconv.ParseBool(setting.Value)
	if err != nil {
		return defaultValue, nil
	}
	return enabled, nil
}

// SetFreeTrialMode persists the global payment override.
func SetFreeTrialMode(db *gorm.DB, enable bool) error {
	setting := models.AppSetting{
		Key:   models.SettingFreeTrialMode,
		Value: strconv.FormatBool(enable),
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}
