package services

import (
	"github.com/styoin/styo-server/internal/models"
	"gorm.io/gorm"
)

// AdminDashboardData is the single payload the admin dashboard polls.
type AdminDashboardData struct {
	LeadViews     []models.LeadView           `json:"leadViews"`
	Notifications []models.AdminNotification  `json:"notifications"`
	Listings      []models.Listing            `json:"listings"`
	Users         []models.UserProfile        `json:"users"`
	CityCharges   []models.CityChargeSettings `json:"cityCharges"`
}

// GetAdminDashboardData composes the stores into one dashboard read. The
// queries are independent and idempotent; the dashboard polls this on a
// fixed interval.
func GetAdminDashboardData(db *gorm.DB) (*AdminDashboardData, error) {
	leads, err := GetLeadAnalytics(db)
	if err != nil {
		return nil, err
	}
	notifications, err := GetAdminNotifications(db)
	if err != nil {
		return nil, err
	}
	listings, err := GetAllListings(db)
	if err != nil {
		return nil, err
	}
	users, err := GetAllUserProfiles(db)
	if err != nil {
		return nil, err
	}
	cityCharges, err := GetCityChargeSettings(db)
	if err != nil {
		return nil, err
	}

	return &AdminDashboardData{
		LeadViews:     leads,
		Notifications: notifications,
		Listings:      listings,
		Users:         users,
		CityCharges:   cityCharges,
	}, nil
}

// GetEventMarkers returns home-page map pins, newest first.
func GetEventMarkers(db *gorm.DB) ([]models.EventMarker, error) {
	var markers []models.EventMarker
	err := db.Order("id DESC").Find(&markers).Error
	return markers, err
}
