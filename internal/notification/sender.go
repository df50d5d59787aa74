package notification

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// LogSender records lifecycle events in the service log. The real
// dispatch (email/SMS/push) happens in the external notification
// service consuming the same events.
type LogSender struct{}

func NewLogSender() *LogSender { return &LogSender{} }

func (s *LogSender) NotifyBookingCreated(ctx context.Context, ownerID, bookingID, propertyID int64, dateFrom time.Time) error {
	logrus.WithFields(logrus.Fields{
		"owner_id":    ownerID,
		"booking_id":  bookingID,
		"property_id": propertyID,
		"date_from":   dateFrom,
	}).Info("booking created")
	return nil
}

func (s *LogSender) NotifyBookingConfirmed(ctx context.Context, guestID, bookingID, propertyID int64) error {
	logrus.WithFields(logrus.Fields{
		"guest_id":    guestID,
		"booking_id":  bookingID,
		"property_id": propertyID,
	}).Info("booking confirmed")
	return nil
}

func (s *LogSender) NotifyBookingCancelled(ctx context.Context, guestID, bookingID, propertyID int64, reason string) error {
	logrus.WithFields(logrus.Fields{
		"guest_id":    guestID,
		"booking_id":  bookingID,
		"property_id": propertyID,
		"reason":      reason,
	}).Info("booking cancelled")
	return nil
}
