package models

// Review is a rating left by a viewer on a listing. Reviews are immutable
// once created; the average rating is always derived, never stored.
type Review struct {
	ID        uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	ListingID uint64 `json:"listingId" gorm:"not null;index"`
	Reviewer  string `json:"reviewer" gorm:"size:64;not null"`
	Rating    int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment   string `json:"comment" gorm:"size:500"`
	CreatedAt int64  `json:"createdAt" gorm:"autoCreateTime:nano"`
}

// TableName overrides the table name for Review
func (Review) TableName() string {
	return "reviews"
}
