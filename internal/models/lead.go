package models

// LeadView records a single owner-contact unlock. Rows are append-only:
// repeated unlocks by the same viewer create new rows on purpose. Display
// fields are denormalized snapshots of the listing and profiles at unlock
// time so lead analytics survive later edits.
type LeadView struct {
	ID               uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	ListingID        uint64          `json:"listingId" gorm:"not null;index:idx_lead_views_listing"`
	Viewer           string          `json:"viewer" gorm:"size:64;not null;index"`
	ViewerName       string          `json:"viewerName" gorm:"size:255"`
	OwnerPrincipal   string          `json:"ownerPrincipal" gorm:"size:64;not null"`
	OwnerName        string          `json:"ownerName" gorm:"size:255"`
	OwnerContact     string          `json:"ownerContact" gorm:"size:255"`
	PropertyTitle    string          `json:"propertyTitle" gorm:"size:255"`
	PropertyCategory ListingCategory `json:"propertyCategory" gorm:"size:20"`
	PropertyArea     string          `json:"propertyArea" gorm:"size:512"`
	Timestamp        int64           `json:"timestamp" gorm:"autoCreateTime:nano"`
}

// TableName overrides the table name for LeadView
func (LeadView) TableName() string {
	return "lead_views"
}

// AdminNotification is created alongside every LeadView. Only the read
// flag is mutable, and only from false to true.
type AdminNotification struct {
	ID                uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	LeadID            uint64          `json:"leadId" gorm:"not null;index"`
	CustomerName      string          `json:"customerName" gorm:"size:255"`
	CustomerPrincipal string          `json:"customerPrincipal" gorm:"size:64"`
	PropertyTitle     string          `json:"propertyTitle" gorm:"size:255"`
	Category          ListingCategory `json:"category" gorm:"size:20"`
	Read              bool            `json:"read" gorm:"not null;default:false;index"`
	Timestamp         int64           `json:"timestamp" gorm:"autoCreateTime:nano"`
}

// TableName overrides the table name for AdminNotification
func (AdminNotification) TableName() string {
	return "admin_notifications"
}
