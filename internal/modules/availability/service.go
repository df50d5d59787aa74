package availability

import (
	"context"
	"fmt"
	"time"

	"stayhub/internal/pkg/clock"
)

// Limits bound the acceptable stay length and come from service config.
type Limits struct {
	MinNights int
	MaxNights int
}

func DefaultLimits() Limits { return Limits{MinNights: 1, MaxNights: 30} }

// Service decides whether a property has enough free rooms for a date
// range. It only reads through the injected accessors; making the scan
// and the subsequent insert atomic (the last-room race) is the job of
// the persistence layer's exclusion constraint.
type Service struct {
	bookings   BookingFinder
	properties PropertyReader
	clk        clock.Clock
	limits     Limits
}

func NewService(bookings BookingFinder, properties PropertyReader, clk clock.Clock, limits Limits) *Service {
	if limits.MinNights < 1 {
		limits.MinNights = 1
	}
	if limits.MaxNights < limits.MinNights {
		limits.MaxNights = DefaultLimits().MaxNights
	}
	return &Service{bookings: bookings, properties: properties, clk: clk, limits: limits}
}

// Check validates the request and compares committed rooms in the window
// against the property capacity. Malformed input returns ErrValidation;
// accessor failures degrade to an unavailable result with a diagnostic
// message so the caller always gets a uniform shape.
func (s *Service) Check(ctx context.Context, req CheckRequest) (*CheckResult, error) {
	if req.Rooms < 1 {
		return nil, fmt.Errorf("%w: rooms must be at least 1", ErrValidation)
	}
	if !req.DateFrom.Before(req.DateTo) {
		return nil, fmt.Errorf("%w: date_from must be before date_to", ErrValidation)
	}

	today := truncateToDay(s.clk.Now())
	if truncateToDay(req.DateFrom).Before(today) {
		return nil, fmt.Errorf("%w: date_from is in the past", ErrValidation)
	}

	nights := int(truncateToDay(req.DateTo).Sub(truncateToDay(req.DateFrom)).Hours() / 24)
	if nights < s.limits.MinNights {
		return nil, fmt.Errorf("%w: stay must be at least %d night(s)", ErrValidation, s.limits.MinNights)
	}
	if nights > s.limits.MaxNights {
		return nil, fmt.Errorf("%w: stay must not exceed %d nights", ErrValidation, s.limits.MaxNights)
	}

	capacity, err := s.properties.GetCapacity(ctx, req.PropertyID)
	if err != nil {
		return &CheckResult{
			Available: false,
			Message:   fmt.Sprintf("property capacity lookup failed: %v", err),
		}, nil
	}

	existing, err := s.bookings.FindConflicting(ctx, req.PropertyID, req.DateFrom, req.DateTo, req.ExcludeBookingID)
	if err != nil {
		return &CheckResult{
			Available: false,
			Capacity:  capacity,
			Message:   fmt.Sprintf("conflict scan failed: %v", err),
		}, nil
	}

	conflicts := make([]Conflict, 0, len(existing))
	committed := 0
	for _, b := range existing {
		// The repository already filters by property, status and range;
		// re-check the overlap here so the decision never depends on the
		// accessor's query being right.
		if !overlaps(b.DateFrom, b.DateTo, req.DateFrom, req.DateTo) {
			continue
		}
		committed += b.Rooms
		conflicts = append(conflicts, Conflict{
			BookingID:     b.ID,
			ReferenceCode: b.ReferenceCode,
			DateFrom:      b.DateFrom,
			DateTo:        b.DateTo,
			Rooms:         b.Rooms,
			Status:        string(b.Status),
		})
	}

	free := capacity - committed
	res := &CheckResult{
		Available:      free >= req.Rooms,
		AvailableRooms: free,
		Capacity:       capacity,
		Conflicts:      conflicts,
	}
	if !res.Available {
		res.Message = fmt.Sprintf("%d room(s) requested, %d available", req.Rooms, free)
	}
	return res, nil
}

// overlaps is the half-open interval test: [aFrom, aTo) and [bFrom, bTo)
// intersect iff aFrom < bTo && aTo > bFrom. Check-out day does not clash
// with a same-day check-in.
func overlaps(aFrom, aTo, bFrom, bTo time.Time) bool {
	return aFrom.Before(bTo) && aTo.After(bFrom)
}

func truncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
