package booking

import (
	"context"
	"time"

	"stayhub/internal/domain"
	"stayhub/internal/modules/availability"
)

// BookingRepository is the persistence port of the orchestration layer.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByGuest(ctx context.Context, guestID int64, limit, offset int) ([]domain.Booking, error)
	GetByProperty(ctx context.Context, propertyID int64) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	CancelWithRefund(ctx context.Context, id int64, reason string, refundAmount float64, refundReason string, at time.Time) error
	CollectHotelPayment(ctx context.Context, id int64, collectorID int64, at time.Time) error
	MarkOwnerPayout(ctx context.Context, id int64) error
}

// PropertyRepository supplies property configuration owned by the
// back-office service.
type PropertyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	GetPaymentSettings(ctx context.Context, id int64) (domain.PaymentSettings, error)
}

// AvailabilityChecker is satisfied by the availability module's Service.
type AvailabilityChecker interface {
	Check(ctx context.Context, req availability.CheckRequest) (*availability.CheckResult, error)
}

// NotificationSender delivers booking lifecycle events. Transport lives
// in an external service; failures here never fail the booking.
type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, ownerID, bookingID, propertyID int64, dateFrom time.Time) error
	NotifyBookingConfirmed(ctx context.Context, guestID, bookingID, propertyID int64) error
	NotifyBookingCancelled(ctx context.Context, guestID, bookingID, propertyID int64, reason string) error
}
