package domain

import "errors"

var (
	ErrInvalidPaymentSettings    = errors.New("invalid payment settings")
	ErrInvalidCancellationPolicy = errors.New("invalid cancellation policy")
)

// CancellationPolicy is a staircase of days-before-check-in thresholds.
// The refund percentage must be non-increasing as check-in approaches:
// FullRefundDays and further out refunds 100%, between PartialRefundDays
// and FullRefundDays refunds PartialRefundPercent, between NoRefundDays
// and PartialRefundDays refunds half of PartialRefundPercent, and inside
// NoRefundDays nothing is refunded.
type CancellationPolicy struct {
	FullRefundDays       int     `json:"full_refund_days"`
	PartialRefundDays    int     `json:"partial_refund_days"`
	PartialRefundPercent float64 `json:"partial_refund_percent"`
	NoRefundDays         int     `json:"no_refund_days"`
}

func (p CancellationPolicy) Validate() error {
	if p.NoRefundDays < 0 || p.PartialRefundDays < p.NoRefundDays || p.FullRefundDays < p.PartialRefundDays {
		return ErrInvalidCancellationPolicy
	}
	if p.PartialRefundPercent < 0 || p.PartialRefundPercent > 100 {
		return ErrInvalidCancellationPolicy
	}
	return nil
}

// DefaultCancellationPolicy matches the 7/3/50/1 staircase used when a
// property has not configured its own tiers: 100% a week out, 50% from
// 3 days, 25% from 1 day, nothing on the check-in day.
func DefaultCancellationPolicy() CancellationPolicy {
	return CancellationPolicy{
		FullRefundDays:       7,
		PartialRefundDays:    3,
		PartialRefundPercent: 50,
		NoRefundDays:         1,
	}
}

// PaymentSettings is per-property configuration of the online/at-property
// split. Percentages apply to the online-collected share of the total.
type PaymentSettings struct {
	PartialPaymentEnabled bool    `json:"partial_payment_enabled"`
	MinPercent            float64 `json:"min_partial_payment_percent"`
	MaxPercent            float64 `json:"max_partial_payment_percent"`
	DefaultPercent        float64 `json:"default_partial_payment_percent"`

	CancellationPolicy CancellationPolicy `json:"partial_payment_cancellation_policy"`
}

func (s PaymentSettings) Validate() error {
	if s.MinPercent < 0 || s.MaxPercent > 100 {
		return ErrInvalidPaymentSettings
	}
	if s.MinPercent > s.DefaultPercent || s.DefaultPercent > s.MaxPercent {
		return ErrInvalidPaymentSettings
	}
	return s.CancellationPolicy.Validate()
}

func DefaultPaymentSettings() PaymentSettings {
	return PaymentSettings{
		PartialPaymentEnabled: false,
		MinPercent:            20,
		MaxPercent:            100,
		DefaultPercent:        50,
		CancellationPolicy:    DefaultCancellationPolicy(),
	}
}

type Property struct {
	ID               int64  `json:"id"`
	Name             string `json:"name" validate:"required"`
	City             string `json:"city"`
	TotalRooms       int    `json:"total_rooms" validate:"required,gte=1"`
	MaxGuestsPerRoom int    `json:"max_guests_per_room"`
	OwnerID          int64  `json:"owner_id"`

	PaymentSettings PaymentSettings `json:"payment_settings"`
}
