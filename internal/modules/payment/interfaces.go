package payment

import (
	"context"

	"stayhub/internal/domain"
)

// SettingsReader supplies per-property payment configuration. Backed by
// the property repository in production.
type SettingsReader interface {
	GetPaymentSettings(ctx context.Context, propertyID int64) (domain.PaymentSettings, error)
}
