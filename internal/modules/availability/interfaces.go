package availability

import (
	"context"
	"time"

	"stayhub/internal/domain"
)

// BookingFinder returns the live (pending or confirmed) bookings of a
// property whose date range overlaps [dateFrom, dateTo). excludeID, when
// non-zero, drops that booking from the result — used when re-validating
// a booking that is being modified.
type BookingFinder interface {
	FindConflicting(ctx context.Context, propertyID int64, dateFrom, dateTo time.Time, excludeID int64) ([]domain.Booking, error)
}

// PropertyReader supplies the total room capacity of a property.
type PropertyReader interface {
	GetCapacity(ctx context.Context, propertyID int64) (int, error)
}
