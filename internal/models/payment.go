package models

// PaymentKind names the checkout products the frontend can start.
type PaymentKind string

const (
	PaymentUnlockOwnerInfo PaymentKind = "unlockOwnerInfo"
	PaymentFeaturedListing PaymentKind = "featuredListing"
	PaymentPropertyListing PaymentKind = "propertyListing"
	PaymentBookingHold     PaymentKind = "bookingHold"
)

// PaymentState is the lifecycle of a checkout session.
type PaymentState string

const (
	PaymentPending   PaymentState = "pending"
	PaymentSucceeded PaymentState = "succeeded"
	PaymentCancelled PaymentState = "cancelled"
	// PaymentWaived means no charge applied: free-trial mode was on, or
	// the relevant city charge toggle was off.
	PaymentWaived PaymentState = "waived"
)

// PaymentSession tracks one checkout round trip with the payment gateway.
// SessionID doubles as the gateway order id.
type PaymentSession struct {
	SessionID      string       `json:"sessionId" gorm:"primaryKey;size:36"`
	Kind           PaymentKind  `json:"kind" gorm:"size:20;not null"`
	Payer          string       `json:"payer" gorm:"size:64;not null;index"`
	ListingID      uint64       `json:"listingId,omitempty" gorm:"index"`
	Amount         int64        `json:"amount" gorm:"not null"`
	Currency       string       `json:"currency" gorm:"size:3;not null"`
	Status         PaymentState `json:"status" gorm:"size:10;not null;default:'pending'"`
	CheckoutURL    string       `json:"checkoutUrl" gorm:"size:1024"`
	GatewayToken   string       `json:"-" gorm:"size:255"`
	AccountID      string       `json:"-" gorm:"size:64"`
	GatewayCustRef string       `json:"-" gorm:"size:64"`
	CreatedAt      int64        `json:"createdAt" gorm:"autoCreateTime:nano"`
	UpdatedAt      int64        `json:"updatedAt" gorm:"autoUpdateTime:nano"`
}

// TableName overrides the table name for PaymentSession
func (PaymentSession) TableName() string {
	return "payment_sessions"
}
