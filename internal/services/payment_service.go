package services

import (
	"errors"
	"fmt"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"github.com/google/uuid"
	"github.com/styoin/styo-server/internal/config"
	"github.com/styoin/styo-server/internal/models"
	"github.com/styoin/styo-server/internal/types"
	"gorm.io/gorm"
)

var snapClient snap.Client

// InitMidtrans configures the Snap client. Call once at bootstrap.
func InitMidtrans(serverKey string, useProduction bool) {
	if useProduction {
		snapClient.New(serverKey, midtrans.Production)
	} else {
		snapClient.New(serverKey, midtrans.Sandbox)
	}
}

// CheckoutResult is what the frontend needs to continue a payment: the
// gateway checkout URL and the session id to report back with.
type CheckoutResult struct {
	CheckoutURL string `json:"checkoutUrl"`
	SessionID   string `json:"sessionId"`
}

func amountForKind(cfg *config.Config, kind models.PaymentKind) (int64, error) {
	switch kind {
	case models.PaymentUnlockOwnerInfo:
		return cfg.UnlockFee, nil
	case models.PaymentFeaturedListing:
		return cfg.FeaturedFee, nil
	case models.PaymentPropertyListing:
		return cfg.ListingFee, nil
	case models.PaymentBookingHold:
		return cfg.BookingHoldFee, nil
	}
	return 0, fmt.Errorf("%w: unknown payment kind %q", types.ErrInvalidInput, kind)
}

// Checkout opens a payment session for the given product. Free-trial mode
// waives every charge; an unlock checkout is also waived when the target
// city's customerLeadCharge toggle is off. Waived sessions carry no
// checkout URL and need no gateway round trip. listingID ties the session
// to the listing being unlocked or featured; zero means no listing.
func Checkout(db *gorm.DB, cfg *config.Config, payer string, kind models.PaymentKind, city string, listingID uint64) (*CheckoutResult, error) {
	amount, err := amountForKind(cfg, kind)
	if err != nil {
		return nil, err
	}

	waived, err := IsFreeTrialMode(db, cfg.FreeTrialDefault)
	if err != nil {
		return nil, err
	}
	if !waived && kind == models.PaymentUnlockOwnerInfo && city != "" {
		charge, err := GetChargeStatusForCity(db, city)
		if err != nil {
			return nil, err
		}
		waived = !charge.CustomerLeadCharge
	}

	session := models.PaymentSession{
		SessionID: uuid.New().String(),
		Kind:      kind,
		Payer:     payer,
		ListingID: listingID,
		Amount:    amount,
		Currency:  cfg.PaymentCurrency,
		Status:    models.PaymentPending,
	}

	if waived {
		session.Amount = 0
		session.Status = models.PaymentWaived
		if err := db.Create(&session).Error; err != nil {
			return nil, err
		}
		return &CheckoutResult{SessionID: session.SessionID}, nil
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  session.SessionID,
			GrossAmt: amount,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       string(kind),
				Price:    amount,
				Qty:      1,
				Name:     "STYO " + string(kind),
				Category: "marketplace",
			},
		},
	}

	resp, snapErr := snapClient.CreateTransaction(req)
	if snapErr != nil {
		return nil, fmt.Errorf("payment gateway error: %s", snapErr.GetMessage())
	}

	session.CheckoutURL = resp.RedirectURL
	session.GatewayToken = resp.Token

	if err := db.Create(&session).Error; err != nil {
		return nil, err
	}

	return &CheckoutResult{CheckoutURL: session.CheckoutURL, SessionID: session.SessionID}, nil
}

// PaymentReceipt is the success-callback payload shape.
type PaymentReceipt struct {
	Message string `json:"message"`
	Payment struct {
		Status        string `json:"status"`
		Amount        int64  `json:"amount"`
		Currency      string `json:"currency"`
		PaymentMethod struct {
			Brand string `json:"brand"`
			Last4 string `json:"last4"`
		} `json:"paymentMethod"`
	} `json:"payment"`
}

// PaymentSuccess marks a session paid. Replayed success callbacks for an
// already-succeeded session return the same receipt; a cancelled session
// cannot succeed afterwards.
func PaymentSuccess(db *gorm.DB, sessionID, accountID, gatewayCustRef string) (*PaymentReceipt, error) {
	var session models.PaymentSession
	if err := db.First(&session, "session_id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: payment session %s", types.ErrNotFound, sessionID)
		}
		return nil, err
	}

	switch session.Status {
	case models.PaymentCancelled:
		return nil, fmt.Errorf("%w: payment session %s was cancelled", types.ErrConflict, sessionID)
	case models.PaymentPending:
		if err := db.Model(&session).Updates(map[string]interface{}{
			"status":           models.PaymentSucceeded,
			"account_id":       accountID,
			"gateway_cust_ref": gatewayCustRef,
		}).Error; err != nil {
			return nil, err
		}
		session.Status = models.PaymentSucceeded
	}

	receipt := &PaymentReceipt{Message: "Payment recorded"}
	receipt.Payment.Status = string(session.Status)
	receipt.Payment.Amount = session.Amount
	receipt.Payment.Currency = session.Currency
	receipt.Payment.PaymentMethod.Brand = "card"
	return receipt, nil
}

// PaymentCancel marks a pending session cancelled. Cancelling a session
// that already succeeded is a Conflict.
func PaymentCancel(db *gorm.DB, sessionID string) error {
	var session models.PaymentSession
	if err := db.First(&session, "session_id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: payment session %s", types.ErrNotFound, sessionID)
		}
		return err
	}

	switch session.Status {
	case models.PaymentSucceeded, models.PaymentWaived:
		return fmt.Errorf("%w: payment session %s already completed", types.ErrConflict, sessionID)
	case models.PaymentCancelled:
		return nil
	}

	return db.Model(&session).Update("status", models.PaymentCancelled).Error
}
