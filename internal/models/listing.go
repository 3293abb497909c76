package models

import "fmt"

// ListingCategory is the closed set of property categories STYO serves.
type ListingCategory string

const (
	CategoryMarriageHall ListingCategory = "marriageHall"
	CategoryStudentStay  ListingCategory = "studentStay"
	CategoryHotel        ListingCategory = "hotel"
	CategoryTravelStay   ListingCategory = "travelStay"
	CategoryPGHostel     ListingCategory = "pgHostel"
	CategoryFamilyFlat   ListingCategory = "familyFlat"
	CategoryEventSpace   ListingCategory = "eventSpace"
)

// Categories lists every valid listing category.
var Categories = []ListingCategory{
	CategoryMarriageHall,
	CategoryStudentStay,
	CategoryHotel,
	CategoryTravelStay,
	CategoryPGHostel,
	CategoryFamilyFlat,
	CategoryEventSpace,
}

// Valid reports whether c is a known category.
func (c ListingCategory) Valid() bool {
	switch c {
	case CategoryMarriageHall, CategoryStudentStay, CategoryHotel,
		CategoryTravelStay, CategoryPGHostel, CategoryFamilyFlat, CategoryEventSpace:
		return true
	}
	return false
}

// ApprovalStatus tracks the moderation state of a listing.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// PropertyStatus tracks booking-funnel progress for a listing. It is a
// strict forward chain; AdvancePropertyStatus is the only transition table.
type PropertyStatus string

const (
	StatusAvailable         PropertyStatus = "available"
	StatusVisitCompleted    PropertyStatus = "visitCompleted"
	StatusUnderConfirmation PropertyStatus = "underConfirmation"
	StatusBookedViaSTYO     PropertyStatus = "bookedViaSTYO"
)

// NextPropertyStatus returns the successor state, or an error when the
// chain is already terminal or the current value is unknown.
func NextPropertyStatus(s PropertyStatus) (PropertyStatus, error) {
	switch s {
	case StatusAvailable:
		return StatusVisitCompleted, nil
	case StatusVisitCompleted:
		return StatusUnderConfirmation, nil
	case StatusUnderConfirmation:
		return StatusBookedViaSTYO, nil
	case StatusBookedViaSTYO:
		return "", fmt.Errorf("property status %q is terminal", s)
	}
	return "", fmt.Errorf("unknown property status %q", s)
}

// AvailabilityState is the unit-inventory axis, independent of PropertyStatus.
type AvailabilityState string

const (
	AvailabilityAvailable          AvailabilityState = "available"
	AvailabilityPartiallyAvailable AvailabilityState = "partiallyAvailable"
	AvailabilityBooked             AvailabilityState = "booked"
)

// Valid reports whether s is a known availability state.
func (s AvailabilityState) Valid() bool {
	switch s {
	case AvailabilityAvailable, AvailabilityPartiallyAvailable, AvailabilityBooked:
		return true
	}
	return false
}

// AvailabilityStatus is the unit inventory for a listing. Dates optionally
// carries per-date unit counts as a JSON array of {date, availableUnits}.
type AvailabilityStatus struct {
	Status         AvailabilityState `json:"status" gorm:"column:status;size:20;not null;default:'available'"`
	AvailableUnits uint              `json:"availableUnits" gorm:"column:available_units;not null;default:0"`
	UnitType       string            `json:"unitType" gorm:"column:unit_type;size:50"`
	Dates          JSON              `json:"dates,omitempty" gorm:"column:dates"`
}

// Normalize enforces the inventory invariant: a booked listing holds zero
// units, and zero units on an "available" listing demotes it to booked.
func (a *AvailabilityStatus) Normalize() {
	if a.Status == AvailabilityBooked {
		a.AvailableUnits = 0
		return
	}
	if a.AvailableUnits == 0 {
		a.Status = AvailabilityBooked
	}
}

// GeoLocation is a point plus its display address.
type GeoLocation struct {
	Lat     float64 `json:"lat" gorm:"column:lat"`
	Lon     float64 `json:"lon" gorm:"column:lon"`
	Address string  `json:"address" gorm:"column:address;size:512"`
}

// Listing is a rentable property or event space.
type Listing struct {
	ID             uint64             `json:"id" gorm:"primaryKey;autoIncrement"`
	Owner          string             `json:"owner" gorm:"size:64;not null;index"`
	Title          string             `json:"title" gorm:"size:255;not null"`
	Description    string             `json:"description" gorm:"type:text"`
	Category       ListingCategory    `json:"category" gorm:"size:20;not null;index"`
	PricePerDay    int64              `json:"pricePerDay" gorm:"not null"`
	ContactInfo    string             `json:"contactInfo" gorm:"size:255"`
	Availability   AvailabilityStatus `json:"availability" gorm:"embedded;embeddedPrefix:availability_"`
	PropertyStatus PropertyStatus     `json:"propertyStatus" gorm:"size:20;not null;default:'available'"`
	ApprovalStatus ApprovalStatus     `json:"approvalStatus" gorm:"size:10;not null;default:'pending';index"`
	Verified       bool               `json:"verified" gorm:"not null;default:false"`
	Featured       bool               `json:"featured" gorm:"not null;default:false"`
	Location       GeoLocation        `json:"location" gorm:"embedded;embeddedPrefix:location_"`
	Images         JSON               `json:"images" gorm:"column:images"`
	CreatedAt      int64              `json:"createdAt" gorm:"autoCreateTime:nano"`
	LastUpdated    int64              `json:"lastUpdated" gorm:"column:last_updated;autoUpdateTime:nano"`
}

// TableName overrides the table name for Listing
func (Listing) TableName() string {
	return "listings"
}
