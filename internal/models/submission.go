package models

// PublicListingSubmission pairs a provisional Listing with the submitter's
// profile while the listing awaits moderation. The row exists only while
// the listing is pending; approve and reject both remove it.
type PublicListingSubmission struct {
	ID                 uint64 `json:"-" gorm:"primaryKey;autoIncrement"`
	ListingID          uint64 `json:"listingId" gorm:"uniqueIndex;not null"`
	OwnerID            string `json:"ownerId" gorm:"size:64;not null"`
	OwnerName          string `json:"ownerName" gorm:"size:255;not null"`
	OwnerEmail         string `json:"ownerEmail" gorm:"size:255"`
	OwnerContactNumber string `json:"ownerContactNumber" gorm:"size:20;not null;index"`
	OwnerVerified      bool   `json:"ownerVerified" gorm:"not null;default:false"`
	SubmittedAt        int64  `json:"submittedAt" gorm:"autoCreateTime:nano;index"`
}

// TableName overrides the table name for PublicListingSubmission
func (PublicListingSubmission) TableName() string {
	return "public_listing_submissions"
}
