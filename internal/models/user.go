package models

// UserProfile is keyed by the caller's identity principal. Created on
// first save by the profile-setup flow; only the owning identity updates
// it afterwards.
type UserProfile struct {
	Principal        string       `json:"principal" gorm:"primaryKey;size:64"`
	Name             string       `json:"name" gorm:"size:255;not null"`
	Email            string       `json:"email" gorm:"size:255"`
	Phone            string       `json:"phone" gorm:"size:20"`
	IsOwner          bool         `json:"isOwner" gorm:"not null;default:false"`
	Location         *GeoLocation `json:"location,omitempty" gorm:"embedded;embeddedPrefix:location_"`
	IPAddress        string       `json:"ipAddress" gorm:"size:45"`
	RegistrationDate int64        `json:"registrationDate" gorm:"autoCreateTime:nano"`
	LastLogin        int64        `json:"lastLogin"`
}

// TableName overrides the table name for UserProfile
func (UserProfile) TableName() string {
	return "user_profiles"
}
