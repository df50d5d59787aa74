package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"stayhub/internal/domain"
	"stayhub/internal/modules/availability"
	"stayhub/internal/pkg/clock"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil && args.Error(0) == nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByGuest(ctx context.Context, guestID int64, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, guestID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByProperty(ctx context.Context, propertyID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBookingRepository) CancelWithRefund(ctx context.Context, id int64, reason string, refundAmount float64, refundReason string, at time.Time) error {
	args := m.Called(ctx, id, reason, refundAmount, refundReason, at)
	return args.Error(0)
}

func (m *MockBookingRepository) CollectHotelPayment(ctx context.Context, id int64, collectorID int64, at time.Time) error {
	args := m.Called(ctx, id, collectorID, at)
	return args.Error(0)
}

func (m *MockBookingRepository) MarkOwnerPayout(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

func (m *MockPropertyRepository) GetPaymentSettings(ctx context.Context, id int64) (domain.PaymentSettings, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.PaymentSettings), args.Error(1)
}

type MockAvailabilityChecker struct {
	mock.Mock
}

func (m *MockAvailabilityChecker) Check(ctx context.Context, req availability.CheckRequest) (*availability.CheckResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*availability.CheckResult), args.Error(1)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) NotifyBookingCreated(ctx context.Context, ownerID, bookingID, propertyID int64, dateFrom time.Time) error {
	args := m.Called(ctx, ownerID, bookingID, propertyID, dateFrom)
	return args.Error(0)
}

func (m *MockNotificationSender) NotifyBookingConfirmed(ctx context.Context, guestID, bookingID, propertyID int64) error {
	args := m.Called(ctx, guestID, bookingID, propertyID)
	return args.Error(0)
}

func (m *MockNotificationSender) NotifyBookingCancelled(ctx context.Context, guestID, bookingID, propertyID int64, reason string) error {
	args := m.Called(ctx, guestID, bookingID, propertyID, reason)
	return args.Error(0)
}

func date(y int, mo time.Month, d int) time.Time {
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

func testProperty() *domain.Property {
	return &domain.Property{
		ID:               1,
		Name:             "Seaside Grand",
		TotalRooms:       10,
		MaxGuestsPerRoom: 4,
		OwnerID:          50,
		PaymentSettings: domain.PaymentSettings{
			PartialPaymentEnabled: true,
			MinPercent:            30,
			MaxPercent:            100,
			DefaultPercent:        50,
			CancellationPolicy:    domain.DefaultCancellationPolicy(),
		},
	}
}

type testDeps struct {
	bookings *MockBookingRepository
	props    *MockPropertyRepository
	checker  *MockAvailabilityChecker
	notifs   *MockNotificationSender
}

func newTestService(now time.Time) (*Service, testDeps) {
	d := testDeps{
		bookings: new(MockBookingRepository),
		props:    new(MockPropertyRepository),
		checker:  new(MockAvailabilityChecker),
		notifs:   new(MockNotificationSender),
	}
	svc := NewService(d.bookings, d.props, d.checker, d.notifs, clock.Fixed(now), DefaultLimits())
	return svc, d
}

func validCreateRequest() CreateBookingRequest {
	return CreateBookingRequest{
		PropertyID:  1,
		GuestID:     200,
		DateFrom:    date(2026, 9, 10),
		DateTo:      date(2026, 9, 13),
		Rooms:       2,
		Guests:      3,
		Children:    1,
		TotalAmount: 90000,
	}
}

func TestService_CreateBooking_Success(t *testing.T) {
	svc, d := newTestService(date(2026, 9, 1))

	d.props.On("GetByID", mock.Anything, int64(1)).Return(testProperty(), nil)
	d.checker.On("Check", mock.Anything, mock.Anything).Return(&availability.CheckResult{Available: true, AvailableRooms: 10}, nil)
	d.bookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	d.notifs.On("NotifyBookingCreated", mock.Anything, int64(50), int64(999), int64(1), mock.Anything).Return(nil)

	b, err := svc.CreateBooking(context.Background(), validCreateRequest())

	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.NotEmpty(t, b.ReferenceCode)
	assert.True(t, b.IsPartialPayment)
	assert.Equal(t, 45000.0, b.OnlinePaymentAmount)
	assert.Equal(t, 45000.0, b.HotelPaymentAmount)
	assert.Equal(t, b.TotalAmount, b.OnlinePaymentAmount+b.HotelPaymentAmount)
	assert.Equal(t, domain.HotelPaymentPending, b.HotelPaymentStatus)
	assert.Equal(t, domain.OwnerPayoutPending, b.OwnerPayoutStatus)
	d.notifs.AssertExpectations(t)
}

func TestService_CreateBooking_NotAvailable(t *testing.T) {
	svc, d := newTestService(date(2026, 9, 1))

	d.props.On("GetByID", mock.Anything, int64(1)).Return(testProperty(), nil)
	d.checker.On("Check", mock.Anything, mock.Anything).Return(&availability.CheckResult{
		Available: false, AvailableRooms: 1, Message: "2 room(s) requested, 1 available",
	}, nil)

	_, err := svc.CreateBooking(context.Background(), validCreateRequest())

	assert.ErrorIs(t, err, ErrNotAvailable)
	d.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CreateBooking_TooManyGuests(t *testing.T) {
	svc, d := newTestService(date(2026, 9, 1))

	d.props.On("GetByID", mock.Anything, int64(1)).Return(testProperty(), nil)

	req := validCreateRequest()
	req.Rooms = 1
	req.Guests = 4
	req.Children = 2 // 6 > 1 room x 4 guests

	_, err := svc.CreateBooking(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_CreateBooking_AmountCaps(t *testing.T) {
	svc, d := newTestService(date(2026, 9, 1))

	d.props.On("GetByID", mock.Anything, int64(1)).Return(testProperty(), nil)
	d.checker.On("Check", mock.Anything, mock.Anything).Return(&availability.CheckResult{Available: true, AvailableRooms: 10}, nil)

	req := validCreateRequest()
	req.TotalAmount = 1_500_000
	_, err := svc.CreateBooking(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)

	req = validCreateRequest()
	req.TotalAmount = 160_000 // 3 nights -> 53333/night, above the cap
	_, err = svc.CreateBooking(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_CreateBooking_PercentOutOfBounds(t *testing.T) {
	svc, d := newTestService(date(2026, 9, 1))

	d.props.On("GetByID", mock.Anything, int64(1)).Return(testProperty(), nil)
	d.checker.On("Check", mock.Anything, mock.Anything).Return(&availability.CheckResult{Available: true, AvailableRooms: 10}, nil)

	req := validCreateRequest()
	p := 10.0 // below MinPercent 30
	req.PaymentPercent = &p

	_, err := svc.CreateBooking(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_CreateBooking_ConstraintRace(t *testing.T) {
	svc, d := newTestService(date(2026, 9, 1))

	d.props.On("GetByID", mock.Anything, int64(1)).Return(testProperty(), nil)
	d.checker.On("Check", mock.Anything, mock.Anything).Return(&availability.CheckResult{Available: true, AvailableRooms: 1}, nil)
	d.bookings.On("Create", mock.Anything, mock.Anything).Return(&pgconn.PgError{Code: "23P01", ConstraintName: "bookings_capacity_guard"})

	_, err := svc.CreateBooking(context.Background(), validCreateRequest())
	assert.ErrorIs(t, err, ErrOverbooking)
}

func TestService_CancelBooking_FullRefundWindow(t *testing.T) {
	now := date(2026, 9, 1)
	svc, d := newTestService(now)

	existing := &domain.Booking{
		ID: 5, PropertyID: 1, GuestID: 200,
		DateFrom: date(2026, 9, 15), DateTo: date(2026, 9, 18),
		TotalAmount: 60000, Status: domain.BookingConfirmed,
	}
	d.bookings.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
	d.props.On("GetPaymentSettings", mock.Anything, int64(1)).Return(testProperty().PaymentSettings, nil)
	d.bookings.On("CancelWithRefund", mock.Anything, int64(5), "plans changed", 60000.0, "plans changed", now).Return(nil)
	d.notifs.On("NotifyBookingCancelled", mock.Anything, int64(200), int64(5), int64(1), "plans changed").Return(nil)

	// No requested amount: the guest gets the policy maximum.
	res, err := svc.CancelBooking(context.Background(), 5, CancelBookingRequest{Reason: "plans changed"})

	require.NoError(t, err)
	assert.True(t, res.Refund.Valid)
	assert.Equal(t, 60000.0, res.RefundAmount)
	assert.False(t, res.RequiresApproval)
	d.bookings.AssertExpectations(t)
}

func TestService_CancelBooking_SameDayFlagged(t *testing.T) {
	checkIn := date(2026, 9, 15)
	svc, d := newTestService(checkIn)

	existing := &domain.Booking{
		ID: 5, PropertyID: 1, GuestID: 200,
		DateFrom: checkIn, DateTo: checkIn.AddDate(0, 0, 2),
		TotalAmount: 60000, Status: domain.BookingConfirmed,
	}
	d.bookings.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
	d.props.On("GetPaymentSettings", mock.Anything, int64(1)).Return(testProperty().PaymentSettings, nil)
	d.bookings.On("CancelWithRefund", mock.Anything, int64(5), "no-show", 0.0, "no-show", checkIn).Return(nil)
	d.notifs.On("NotifyBookingCancelled", mock.Anything, int64(200), int64(5), int64(1), "no-show").Return(nil)

	res, err := svc.CancelBooking(context.Background(), 5, CancelBookingRequest{Reason: "no-show"})

	// Same-day cancellation goes through; it is only flagged for manual
	// approval, never blocked.
	require.NoError(t, err)
	assert.True(t, res.RequiresApproval)
	assert.Equal(t, 0.0, res.RefundAmount)
	d.bookings.AssertExpectations(t)
}

func TestService_CancelBooking_RefundAbovePolicy(t *testing.T) {
	svc, d := newTestService(date(2026, 9, 14))

	existing := &domain.Booking{
		ID: 5, PropertyID: 1, GuestID: 200,
		DateFrom: date(2026, 9, 15), DateTo: date(2026, 9, 18),
		TotalAmount: 60000, Status: domain.BookingConfirmed,
	}
	d.bookings.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
	d.props.On("GetPaymentSettings", mock.Anything, int64(1)).Return(testProperty().PaymentSettings, nil)

	// One day before check-in the ceiling is 25%; asking for everything
	// must fail and leave the booking untouched.
	everything := 60000.0
	res, err := svc.CancelBooking(context.Background(), 5, CancelBookingRequest{
		Reason:          "emergency",
		RequestedRefund: &everything,
	})

	assert.ErrorIs(t, err, ErrRefundPolicy)
	require.NotNil(t, res)
	assert.False(t, res.Refund.Valid)
	assert.Equal(t, 15000.0, res.Refund.MaxRefund)
	d.bookings.AssertNotCalled(t, "CancelWithRefund", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_CancelBooking_TerminalState(t *testing.T) {
	svc, d := newTestService(date(2026, 9, 1))

	d.bookings.On("GetByID", mock.Anything, int64(5)).Return(&domain.Booking{
		ID: 5, PropertyID: 1, Status: domain.BookingCompleted,
	}, nil)

	_, err := svc.CancelBooking(context.Background(), 5, CancelBookingRequest{Reason: "late"})
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestService_CancelBooking_ReasonRequired(t *testing.T) {
	svc, _ := newTestService(date(2026, 9, 1))

	_, err := svc.CancelBooking(context.Background(), 5, CancelBookingRequest{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_CancelBooking_ExplicitZeroRefund(t *testing.T) {
	now := date(2026, 9, 1)
	svc, d := newTestService(now)

	existing := &domain.Booking{
		ID: 5, PropertyID: 1, GuestID: 200,
		DateFrom: date(2026, 9, 15), DateTo: date(2026, 9, 18),
		TotalAmount: 60000, Status: domain.BookingConfirmed,
	}
	d.bookings.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
	d.props.On("GetPaymentSettings", mock.Anything, int64(1)).Return(testProperty().PaymentSettings, nil)
	d.bookings.On("CancelWithRefund", mock.Anything, int64(5), "gift to the house", 0.0, "gift to the house", now).Return(nil)
	d.notifs.On("NotifyBookingCancelled", mock.Anything, int64(200), int64(5), int64(1), "gift to the house").Return(nil)

	// An explicit zero is a literal zero refund, distinct from omitting
	// the amount (which grants the maximum).
	zero := 0.0
	res, err := svc.CancelBooking(context.Background(), 5, CancelBookingRequest{
		Reason:          "gift to the house",
		RequestedRefund: &zero,
	})

	require.NoError(t, err)
	assert.True(t, res.Refund.Valid)
	assert.Equal(t, 0.0, res.RefundAmount)
	d.bookings.AssertExpectations(t)
}

func TestService_CancelBooking_SettingsReadFailure(t *testing.T) {
	svc, d := newTestService(date(2026, 9, 13))

	existing := &domain.Booking{
		ID: 5, PropertyID: 1, GuestID: 200,
		DateFrom: date(2026, 9, 15), DateTo: date(2026, 9, 18),
		TotalAmount: 60000, Status: domain.BookingConfirmed,
	}
	d.bookings.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
	d.props.On("GetPaymentSettings", mock.Anything, int64(1)).Return(domain.PaymentSettings{}, errors.New("db connection reset"))

	// The property may carry a stricter staircase than the default; when
	// the settings read fails the cancellation must abort rather than
	// price the refund against a substitute policy.
	res, err := svc.CancelBooking(context.Background(), 5, CancelBookingRequest{Reason: "plans changed"})

	require.Error(t, err)
	assert.Nil(t, res)
	d.bookings.AssertNotCalled(t, "CancelWithRefund", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_ConfirmBooking_Success(t *testing.T) {
	svc, d := newTestService(date(2026, 9, 1))

	pending := &domain.Booking{ID: 5, PropertyID: 1, GuestID: 200, Status: domain.BookingPending}
	confirmed := &domain.Booking{ID: 5, PropertyID: 1, GuestID: 200, Status: domain.BookingConfirmed}

	d.bookings.On("GetByID", mock.Anything, int64(5)).Return(pending, nil).Once()
	d.props.On("GetByID", mock.Anything, int64(1)).Return(testProperty(), nil)
	d.bookings.On("UpdateStatus", mock.Anything, int64(5), domain.BookingConfirmed).Return(nil)
	d.notifs.On("NotifyBookingConfirmed", mock.Anything, int64(200), int64(5), int64(1)).Return(nil)
	d.bookings.On("GetByID", mock.Anything, int64(5)).Return(confirmed, nil).Once()

	b, err := svc.ConfirmBooking(context.Background(), 5, 50, string(domain.RoleOwner))

	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
	d.bookings.AssertExpectations(t)
}

func TestService_ConfirmBooking_WrongOwner(t *testing.T) {
	svc, d := newTestService(date(2026, 9, 1))

	d.bookings.On("GetByID", mock.Anything, int64(5)).Return(&domain.Booking{
		ID: 5, PropertyID: 1, Status: domain.BookingPending,
	}, nil)
	d.props.On("GetByID", mock.Anything, int64(1)).Return(testProperty(), nil)

	_, err := svc.ConfirmBooking(context.Background(), 5, 777, string(domain.RoleOwner))
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_ConfirmBooking_AlreadyConfirmed(t *testing.T) {
	svc, d := newTestService(date(2026, 9, 1))

	d.bookings.On("GetByID", mock.Anything, int64(5)).Return(&domain.Booking{
		ID: 5, PropertyID: 1, Status: domain.BookingConfirmed,
	}, nil)
	d.props.On("GetByID", mock.Anything, int64(1)).Return(testProperty(), nil)

	_, err := svc.ConfirmBooking(context.Background(), 5, 50, string(domain.RoleOwner))
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestService_CollectHotelPayment_Success(t *testing.T) {
	now := date(2026, 9, 16)
	svc, d := newTestService(now)

	partial := &domain.Booking{
		ID: 5, PropertyID: 1, GuestID: 200, Status: domain.BookingConfirmed,
		IsPartialPayment: true, HotelPaymentAmount: 45000,
		HotelPaymentStatus: domain.HotelPaymentPending,
	}
	collected := *partial
	collected.HotelPaymentStatus = domain.HotelPaymentCollected

	d.bookings.On("GetByID", mock.Anything, int64(5)).Return(partial, nil).Once()
	d.props.On("GetByID", mock.Anything, int64(1)).Return(testProperty(), nil)
	d.bookings.On("CollectHotelPayment", mock.Anything, int64(5), int64(50), now).Return(nil)
	d.bookings.On("GetByID", mock.Anything, int64(5)).Return(&collected, nil).Once()

	b, err := svc.CollectHotelPayment(context.Background(), 5, 50, string(domain.RoleOwner))

	require.NoError(t, err)
	assert.Equal(t, domain.HotelPaymentCollected, b.HotelPaymentStatus)
	d.bookings.AssertExpectations(t)
}

func TestService_CollectHotelPayment_NotPartial(t *testing.T) {
	svc, d := newTestService(date(2026, 9, 16))

	d.bookings.On("GetByID", mock.Anything, int64(5)).Return(&domain.Booking{
		ID: 5, PropertyID: 1, Status: domain.BookingConfirmed, IsPartialPayment: false,
	}, nil)
	d.props.On("GetByID", mock.Anything, int64(1)).Return(testProperty(), nil)

	_, err := svc.CollectHotelPayment(context.Background(), 5, 50, string(domain.RoleOwner))
	assert.ErrorIs(t, err, ErrNotPartialPayment)
}

func TestService_CollectHotelPayment_AlreadyCollected(t *testing.T) {
	svc, d := newTestService(date(2026, 9, 16))

	d.bookings.On("GetByID", mock.Anything, int64(5)).Return(&domain.Booking{
		ID: 5, PropertyID: 1, Status: domain.BookingConfirmed,
		IsPartialPayment: true, HotelPaymentStatus: domain.HotelPaymentCollected,
	}, nil)
	d.props.On("GetByID", mock.Anything, int64(1)).Return(testProperty(), nil)

	_, err := svc.CollectHotelPayment(context.Background(), 5, 50, string(domain.RoleOwner))
	assert.ErrorIs(t, err, ErrAlreadyCollected)
}

func TestService_CompleteBooking_BeforeCheckout(t *testing.T) {
	svc, d := newTestService(date(2026, 9, 10))

	d.bookings.On("GetByID", mock.Anything, int64(5)).Return(&domain.Booking{
		ID: 5, Status: domain.BookingConfirmed, DateTo: date(2026, 9, 18),
	}, nil)

	_, err := svc.CompleteBooking(context.Background(), 5)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestService_MarkOwnerPayout_AdminOnly(t *testing.T) {
	svc, d := newTestService(date(2026, 9, 20))

	_, err := svc.MarkOwnerPayout(context.Background(), 5, string(domain.RoleOwner))
	assert.ErrorIs(t, err, ErrForbidden)

	paid := &domain.Booking{ID: 5, OwnerPayoutStatus: domain.OwnerPayoutPaid}
	pending := &domain.Booking{ID: 5, OwnerPayoutStatus: domain.OwnerPayoutPending}

	d.bookings.On("GetByID", mock.Anything, int64(5)).Return(pending, nil).Once()
	d.bookings.On("MarkOwnerPayout", mock.Anything, int64(5)).Return(nil)
	d.bookings.On("GetByID", mock.Anything, int64(5)).Return(paid, nil).Once()

	b, err := svc.MarkOwnerPayout(context.Background(), 5, string(domain.RoleAdmin))
	require.NoError(t, err)
	assert.Equal(t, domain.OwnerPayoutPaid, b.OwnerPayoutStatus)
}
