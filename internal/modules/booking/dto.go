package booking

import (
	"time"

	"stayhub/internal/modules/payment"
)

type CreateBookingRequest struct {
	PropertyID  int64     `json:"property_id" binding:"required" validate:"required"`
	GuestID     int64     `json:"-" validate:"required"`
	DateFrom    time.Time `json:"date_from" binding:"required" validate:"required"`
	DateTo      time.Time `json:"date_to" binding:"required" validate:"required"`
	Rooms       int       `json:"rooms" binding:"required,gte=1" validate:"required,gte=1"`
	Guests      int       `json:"guests" binding:"required,gte=1" validate:"required,gte=1"`
	Children    int       `json:"children" binding:"gte=0" validate:"gte=0"`
	TotalAmount float64   `json:"total_amount" binding:"required,gt=0" validate:"required,gt=0"`

	// Online share of the split; nil means the property default.
	PaymentPercent *float64 `json:"payment_percent"`

	Notes string `json:"notes"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"required"`

	// Nil means "grant the policy maximum".
	RequestedRefund *float64 `json:"requested_refund"`
}

// CancelResult reports the cancellation outcome. RequiresApproval is a
// non-blocking flag raised for same-day cancellation of a confirmed
// booking; the cancellation itself still goes through.
type CancelResult struct {
	BookingID        int64                `json:"booking_id"`
	Refund           payment.RefundResult `json:"refund"`
	RefundAmount     float64              `json:"refund_amount"`
	RequiresApproval bool                 `json:"requires_approval"`
}
