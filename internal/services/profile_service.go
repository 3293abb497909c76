package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/styoin/styo-server/internal/models"
	"github.com/styoin/styo-server/internal/types"
	"gorm.io/gorm"
)

// ProfileInput carries the caller-editable profile fields.
type ProfileInput struct {
	Name     string              `json:"name"`
	Email    string              `json:"email"`
	Phone    string              `json:"phone"`
	IsOwner  bool                `json:"isOwner"`
	Location *models.GeoLocation `json:"location,omitempty"`
}

// GetUserProfile returns the profile for a principal, or NotFound when the
// identity never completed profile setup.
func GetUserProfile(db *gorm.DB, principal string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := db.First(&profile, "principal = ?", principal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: profile for %s", types.ErrNotFound, principal)
		}
		return nil, err
	}
	return &profile, nil
}

// SaveUserProfile creates the caller's profile on first save and updates
// it afterwards. The ip address is best-effort request metadata; an empty
// value never blocks the save.
func SaveUserProfile(db *gorm.DB, principal string, in ProfileInput, ipAddress string) error {
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", types.ErrInvalidInput)
	}

	now := time.Now().UnixNano()

	return db.Transaction(func(tx *gorm.DB) error {
		var existing models.UserProfile
		err := tx.First(&existing, "principal = ?", principal).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			profile := models.UserProfile{
				Principal: principal,
				Name:      in.Name,
				Email:     in.Email,
				Phone:     in.Phone,
				IsOwner:   in.IsOwner,
				Location:  in.Location,
				IPAddress: ipAddress,
				LastLogin: now,
			}
			return tx.Create(&profile).Error
		}
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"name":       in.Name,
			"email":      in.Email,
			"phone":      in.Phone,
			"is_owner":   in.IsOwner,
			"last_login": now,
		}
		if in.Location != nil {
			updates["location_lat"] = in.Location.Lat
			updates["location_lon"] = in.Location.Lon
			updates["location_address"] = in.Location.Address
		}
		if ipAddress != "" {
			updates["ip_address"] = ipAddress
		}
		return tx.Model(&existing).Updates(updates).Error
	})
}

// TouchLastLogin updates the last-login timestamp for a principal. Missing
// profiles are ignored; the profile-setup flow creates them later.
func TouchLastLogin(db *gorm.DB, principal string) {
	db.Model(&models.UserProfile{}).
		Where("principal = ?", principal).
		Update("last_login", time.Now().UnixNano())
}

// GetAllUserProfiles returns every profile. Admin dashboard only.
func GetAllUserProfiles(db *gorm.DB) ([]models.UserProfile, error) {
	var profiles []models.UserProfile
	err := db.Order("registration_date DESC").Find(&profiles).Error
	return profiles, err
}
