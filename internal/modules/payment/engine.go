package payment

import (
	"fmt"
	"math"
	"time"

	"stayhub/internal/domain"
)

// Split is the outcome of dividing a booking total between the online
// gateway and at-property collection.
type Split struct {
	IsPartialPayment bool    `json:"is_partial_payment"`
	OnlineAmount     float64 `json:"online_amount"`
	HotelAmount      float64 `json:"hotel_amount"`
	Percent          float64 `json:"percent"`
}

// RefundResult carries the policy-computed refund ceiling and every
// violated constraint for the requested amount.
type RefundResult struct {
	Valid             bool     `json:"valid"`
	MaxRefund         float64  `json:"max_refund"`
	DaysBeforeCheckIn int      `json:"days_before_check_in"`
	Errors            []string `json:"errors,omitempty"`
}

// ComputeSplit divides totalAmount per the property settings. When
// requestedPercent is nil the configured default applies. An out-of-bounds
// percentage is a caller error, never silently clamped. The hotel share is
// derived by subtraction so the two parts always sum to totalAmount exactly.
func ComputeSplit(totalAmount float64, settings domain.PaymentSettings, requestedPercent *float64) (Split, error) {
	if totalAmount <= 0 {
		return Split{}, ErrInvalidAmount
	}
	if err := settings.Validate(); err != nil {
		return Split{}, err
	}

	if !settings.PartialPaymentEnabled {
		return Split{
			IsPartialPayment: false,
			OnlineAmount:     totalAmount,
			HotelAmount:      0,
			Percent:          100,
		}, nil
	}

	p := settings.DefaultPercent
	if requestedPercent != nil {
		p = *requestedPercent
	}
	if p < settings.MinPercent || p > settings.MaxPercent {
		return Split{}, fmt.Errorf("%w: %.2f not in [%.2f, %.2f]",
			ErrInvalidPercentage, p, settings.MinPercent, settings.MaxPercent)
	}

	online := round2(totalAmount * p / 100)
	hotel := round2(totalAmount - online)

	return Split{
		IsPartialPayment: p < 100,
		OnlineAmount:     online,
		HotelAmount:      hotel,
		Percent:          p,
	}, nil
}

// MaxRefund evaluates the cancellation-policy staircase for a cancellation
// at cancelledAt against a stay starting at checkIn. The day difference is
// taken on UTC calendar-day boundaries.
func MaxRefund(originalAmount float64, checkIn, cancelledAt time.Time, policy domain.CancellationPolicy) (float64, int) {
	days := daysBetween(cancelledAt, checkIn)

	var pct float64
	switch {
	case days >= policy.FullRefundDays:
		pct = 100
	case days >= policy.PartialRefundDays:
		pct = policy.PartialRefundPercent
	case days >= policy.NoRefundDays:
		pct = policy.PartialRefundPercent / 2
	default:
		pct = 0
	}

	return round2(originalAmount * pct / 100), days
}

// ComputeRefund validates a requested refund against the policy ceiling.
// Every violated constraint is reported, not just the first.
func ComputeRefund(originalAmount, requestedRefund float64, checkIn, cancelledAt time.Time, policy domain.CancellationPolicy) RefundResult {
	maxRefund, days := MaxRefund(originalAmount, checkIn, cancelledAt, policy)

	res := RefundResult{
		MaxRefund:         maxRefund,
		DaysBeforeCheckIn: days,
	}

	if requestedRefund < 0 {
		res.Errors = append(res.Errors, "requested refund is negative")
	}
	if requestedRefund > maxRefund {
		res.Errors = append(res.Errors, fmt.Sprintf("requested refund %.2f exceeds maximum refund %.2f", requestedRefund, maxRefund))
	}
	if requestedRefund > originalAmount {
		res.Errors = append(res.Errors, fmt.Sprintf("requested refund %.2f exceeds original amount %.2f", requestedRefund, originalAmount))
	}

	res.Valid = len(res.Errors) == 0
	return res
}

func daysBetween(from, to time.Time) int {
	fromDay := truncateToDay(from)
	toDay := truncateToDay(to)
	return int(toDay.Sub(fromDay).Hours() / 24)
}

func truncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
