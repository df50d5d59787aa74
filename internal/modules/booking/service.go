package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"

	"stayhub/internal/domain"
	"stayhub/internal/modules/availability"
	"stayhub/internal/modules/payment"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/validator"
)

// Limits bound what a single booking may cost. Zero values fall back to
// the defaults from the original price validation rules.
type Limits struct {
	MaxGuestsPerRoom int
	MaxTotalAmount   float64
	MaxNightlyRate   float64
}

func DefaultLimits() Limits {
	return Limits{MaxGuestsPerRoom: 4, MaxTotalAmount: 1_000_000, MaxNightlyRate: 50_000}
}

func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.MaxGuestsPerRoom <= 0 {
		l.MaxGuestsPerRoom = d.MaxGuestsPerRoom
	}
	if l.MaxTotalAmount <= 0 {
		l.MaxTotalAmount = d.MaxTotalAmount
	}
	if l.MaxNightlyRate <= 0 {
		l.MaxNightlyRate = d.MaxNightlyRate
	}
	return l
}

type Service struct {
	bookings   BookingRepository
	properties PropertyRepository
	checker    AvailabilityChecker
	notifs     NotificationSender
	clk        clock.Clock
	limits     Limits
}

func NewService(bookings BookingRepository, properties PropertyRepository, checker AvailabilityChecker, notifs NotificationSender, clk clock.Clock, limits Limits) *Service {
	return &Service{
		bookings:   bookings,
		properties: properties,
		checker:    checker,
		notifs:     notifs,
		clk:        clk,
		limits:     limits.withDefaults(),
	}
}

// CreateBooking runs the full creation flow: input validation, capacity
// check, payment split, insert. The availability check and the insert are
// not atomic here; the bookings table's capacity constraint is the final
// arbiter and surfaces as ErrOverbooking.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if errs := validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, errs)
	}

	prop, err := s.properties.GetByID(ctx, req.PropertyID)
	if err != nil {
		return nil, ErrNotFound
	}

	maxGuests := prop.MaxGuestsPerRoom
	if maxGuests <= 0 {
		maxGuests = s.limits.MaxGuestsPerRoom
	}
	if req.Guests+req.Children > req.Rooms*maxGuests {
		return nil, fmt.Errorf("%w: %d guests exceed %d room(s) x %d guests per room",
			ErrValidation, req.Guests+req.Children, req.Rooms, maxGuests)
	}

	if req.TotalAmount > s.limits.MaxTotalAmount {
		return nil, fmt.Errorf("%w: total amount exceeds %.0f", ErrValidation, s.limits.MaxTotalAmount)
	}

	check, err := s.checker.Check(ctx, availability.CheckRequest{
		PropertyID: req.PropertyID,
		DateFrom:   req.DateFrom,
		DateTo:     req.DateTo,
		Rooms:      req.Rooms,
	})
	if err != nil {
		if errors.Is(err, availability.ErrValidation) {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return nil, err
	}
	if !check.Available {
		return nil, fmt.Errorf("%w: %s", ErrNotAvailable, check.Message)
	}

	nights := int(req.DateTo.Sub(req.DateFrom).Hours() / 24)
	if nights > 0 && req.TotalAmount/float64(nights) > s.limits.MaxNightlyRate {
		return nil, fmt.Errorf("%w: nightly rate exceeds %.0f", ErrValidation, s.limits.MaxNightlyRate)
	}

	split, err := payment.ComputeSplit(req.TotalAmount, prop.PaymentSettings, req.PaymentPercent)
	if err != nil {
		if errors.Is(err, payment.ErrInvalidPercentage) {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return nil, err
	}

	b := &domain.Booking{
		ReferenceCode:       uuid.NewString(),
		PropertyID:          req.PropertyID,
		GuestID:             req.GuestID,
		DateFrom:            req.DateFrom,
		DateTo:              req.DateTo,
		Rooms:               req.Rooms,
		Guests:              req.Guests,
		Children:            req.Children,
		TotalAmount:         req.TotalAmount,
		Status:              domain.BookingPending,
		IsPartialPayment:    split.IsPartialPayment,
		OnlinePaymentAmount: split.OnlineAmount,
		HotelPaymentAmount:  split.HotelAmount,
		OwnerPayoutStatus:   domain.OwnerPayoutPending,
		Notes:               req.Notes,
	}
	if split.IsPartialPayment {
		b.HotelPaymentStatus = domain.HotelPaymentPending
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && (pgErr.Code == "23505" || pgErr.Code == "23P01") {
			return nil, ErrOverbooking
		}
		return nil, err
	}

	if s.notifs != nil {
		if err := s.notifs.NotifyBookingCreated(ctx, prop.OwnerID, b.ID, b.PropertyID, b.DateFrom); err != nil {
			logrus.WithError(err).WithField("booking_id", b.ID).Warn("booking created notification failed")
		}
	}

	return b, nil
}

// ConfirmBooking moves a pending booking to confirmed. Only the property
// owner (or a manager/admin) may confirm.
func (s *Service) ConfirmBooking(ctx context.Context, bookingID, actorID int64, actorRole string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, ErrNotFound
	}

	if err := s.authorizeOwner(ctx, b, actorID, actorRole); err != nil {
		return nil, err
	}

	if b.Status != domain.BookingPending {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, domain.BookingConfirmed); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBookingConfirmed(ctx, b.GuestID, b.ID, b.PropertyID)
	}

	return s.bookings.GetByID(ctx, bookingID)
}

// CancelBooking cancels a pending or confirmed booking, computing the
// refund ceiling from the property's cancellation policy. A requested
// refund above the ceiling fails with ErrRefundPolicy and the violation
// list; a nil request grants the maximum. Same-day cancellation of a
// confirmed booking is flagged for manual approval but not blocked.
func (s *Service) CancelBooking(ctx context.Context, bookingID int64, req CancelBookingRequest) (*CancelResult, error) {
	if req.Reason == "" {
		return nil, fmt.Errorf("%w: cancellation reason is required", ErrValidation)
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, ErrNotFound
	}
	if b.Status.IsTerminal() {
		return nil, ErrInvalidStatusTransition
	}

	// A failed settings read must not fall back to the default policy; the
	// property may have configured a stricter staircase and the refund would
	// be computed against the wrong ceiling.
	settings, err := s.properties.GetPaymentSettings(ctx, b.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("read payment settings for property %d: %w", b.PropertyID, err)
	}

	now := s.clk.Now()
	var requested float64
	if req.RequestedRefund != nil {
		requested = *req.RequestedRefund
	} else {
		requested, _ = payment.MaxRefund(b.TotalAmount, b.DateFrom, now, settings.CancellationPolicy)
	}

	refund := payment.ComputeRefund(b.TotalAmount, requested, b.DateFrom, now, settings.CancellationPolicy)
	result := &CancelResult{
		BookingID:        b.ID,
		Refund:           refund,
		RefundAmount:     requested,
		RequiresApproval: b.Status == domain.BookingConfirmed && refund.DaysBeforeCheckIn <= 0,
	}
	if !refund.Valid {
		return result, ErrRefundPolicy
	}

	if err := s.bookings.CancelWithRefund(ctx, bookingID, req.Reason, requested, req.Reason, now); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBookingCancelled(ctx, b.GuestID, b.ID, b.PropertyID, req.Reason)
	}

	return result, nil
}

// CompleteBooking closes out a confirmed booking once checkout has passed.
func (s *Service) CompleteBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, ErrNotFound
	}
	if b.Status != domain.BookingConfirmed {
		return nil, ErrInvalidStatusTransition
	}
	if b.DateTo.After(s.clk.Now()) {
		return nil, fmt.Errorf("%w: checkout has not passed yet", ErrInvalidStatusTransition)
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, domain.BookingCompleted); err != nil {
		return nil, err
	}
	return s.bookings.GetByID(ctx, bookingID)
}

// CollectHotelPayment records the at-property balance as collected, with
// collector identity and timestamp.
func (s *Service) CollectHotelPayment(ctx context.Context, bookingID, collectorID int64, actorRole string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, ErrNotFound
	}
	if err := s.authorizeOwner(ctx, b, collectorID, actorRole); err != nil {
		return nil, err
	}

	if !b.IsPartialPayment {
		return nil, ErrNotPartialPayment
	}
	if b.HotelPaymentStatus == domain.HotelPaymentCollected {
		return nil, ErrAlreadyCollected
	}
	if !b.Status.IsLive() {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.bookings.CollectHotelPayment(ctx, bookingID, collectorID, s.clk.Now()); err != nil {
		return nil, err
	}
	return s.bookings.GetByID(ctx, bookingID)
}

// MarkOwnerPayout marks the owner's share as paid out. Admin only.
func (s *Service) MarkOwnerPayout(ctx context.Context, bookingID int64, actorRole string) (*domain.Booking, error) {
	if actorRole != string(domain.RoleAdmin) {
		return nil, ErrForbidden
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, ErrNotFound
	}
	if b.OwnerPayoutStatus == domain.OwnerPayoutPaid {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.bookings.MarkOwnerPayout(ctx, bookingID); err != nil {
		return nil, err
	}
	return s.bookings.GetByID(ctx, bookingID)
}

func (s *Service) GetMyBookings(ctx context.Context, guestID int64, limit, offset int) ([]domain.Booking, error) {
	return s.bookings.GetByGuest(ctx, guestID, limit, offset)
}

func (s *Service) GetByProperty(ctx context.Context, propertyID, actorID int64, actorRole string) ([]domain.Booking, error) {
	prop, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return nil, ErrNotFound
	}
	if actorRole != string(domain.RoleAdmin) && prop.OwnerID != actorID {
		return nil, ErrForbidden
	}
	return s.bookings.GetByProperty(ctx, propertyID)
}

func (s *Service) GetByID(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *Service) authorizeOwner(ctx context.Context, b *domain.Booking, actorID int64, actorRole string) error {
	if actorRole == string(domain.RoleAdmin) || actorRole == string(domain.RoleManager) {
		return nil
	}
	if actorRole != string(domain.RoleOwner) {
		return ErrForbidden
	}
	prop, err := s.properties.GetByID(ctx, b.PropertyID)
	if err != nil {
		return ErrNotFound
	}
	if prop.OwnerID != actorID {
		return ErrForbidden
	}
	return nil
}
