package models

// EventMarker is a map pin surfaced on the home page (new listings,
// city launches, promotions).
type EventMarker struct {
	ID        uint64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Type      string      `json:"type" gorm:"size:50;not null"`
	Message   string      `json:"message" gorm:"size:512"`
	Badge     string      `json:"badge" gorm:"size:50"`
	Location  GeoLocation `json:"location" gorm:"embedded;embeddedPrefix:location_"`
	CreatedAt int64       `json:"createdAt" gorm:"autoCreateTime:nano"`
}

// TableName overrides the table name for EventMarker
func (EventMarker) TableName() string {
	return "event_markers"
}
