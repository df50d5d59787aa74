package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// IsTerminal reports whether no further status transition is allowed.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingCancelled || s == BookingCompleted
}

// IsLive reports whether the booking still consumes room capacity.
func (s BookingStatus) IsLive() bool {
	return s == BookingPending || s == BookingConfirmed
}

type HotelPaymentStatus string

const (
	HotelPaymentPending   HotelPaymentStatus = "pending"
	HotelPaymentCollected HotelPaymentStatus = "collected"
)

type OwnerPayoutStatus string

const (
	OwnerPayoutPending OwnerPayoutStatus = "pending"
	OwnerPayoutPaid    OwnerPayoutStatus = "paid"
)

type Booking struct {
	ID            int64         `json:"id"`
	ReferenceCode string        `json:"reference_code"`
	PropertyID    int64         `json:"property_id" validate:"required"`
	GuestID       int64         `json:"guest_id" validate:"required"`
	DateFrom      time.Time     `json:"date_from" validate:"required"`
	DateTo        time.Time     `json:"date_to" validate:"required"`
	Rooms         int           `json:"rooms" validate:"required,gte=1"`
	Guests        int           `json:"guests" validate:"gte=0"`
	Children      int           `json:"children" validate:"gte=0"`
	TotalAmount   float64       `json:"total_amount" validate:"required,gt=0"`
	Status        BookingStatus `json:"status"`

	// Split payment: online deposit collected by the gateway, the rest
	// collected at the property. Online + hotel must equal TotalAmount.
	IsPartialPayment        bool               `json:"is_partial_payment"`
	OnlinePaymentAmount     float64            `json:"online_payment_amount"`
	HotelPaymentAmount      float64            `json:"hotel_payment_amount"`
	HotelPaymentStatus      HotelPaymentStatus `json:"hotel_payment_status,omitempty"`
	HotelPaymentCollectedAt *time.Time         `json:"hotel_payment_collected_at,omitempty"`
	HotelPaymentCollectedBy int64              `json:"hotel_payment_collected_by,omitempty"`

	OwnerPayoutStatus OwnerPayoutStatus `json:"owner_payout_status,omitempty"`

	CancellationReason string     `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	RefundAmount       float64    `json:"refund_amount,omitempty"`
	RefundReason       string     `json:"refund_reason,omitempty"`

	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Nights returns the stay length in whole nights.
func (b *Booking) Nights() int {
	return int(b.DateTo.Sub(b.DateFrom).Hours() / 24)
}
