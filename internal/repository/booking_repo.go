package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"stayhub/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	ReferenceCode string    `gorm:"column:reference_code;size:64;uniqueIndex"`
	PropertyID    int64     `gorm:"column:property_id;index"`
	GuestID       int64     `gorm:"column:guest_id;index"`
	DateFrom      time.Time `gorm:"column:date_from"`
	DateTo        time.Time `gorm:"column:date_to"`
	Rooms         int       `gorm:"column:rooms"`
	Guests        int       `gorm:"column:guests"`
	Children      int       `gorm:"column:children"`
	TotalAmount   float64   `gorm:"column:total_amount"`
	Status        string    `gorm:"column:status;index"`

	IsPartialPayment        bool       `gorm:"column:is_partial_payment"`
	OnlinePaymentAmount     float64    `gorm:"column:online_payment_amount"`
	HotelPaymentAmount      float64    `gorm:"column:hotel_payment_amount"`
	HotelPaymentStatus      string     `gorm:"column:hotel_payment_status"`
	HotelPaymentCollectedAt *time.Time `gorm:"column:hotel_payment_collected_at"`
	HotelPaymentCollectedBy int64      `gorm:"column:hotel_payment_collected_by"`
	OwnerPayoutStatus       string     `gorm:"column:owner_payout_status"`

	CancellationReason *string    `gorm:"column:cancellation_reason"`
	CancelledAt        *time.Time `gorm:"column:cancelled_at"`
	RefundAmount       float64    `gorm:"column:refund_amount"`
	RefundReason       *string    `gorm:"column:refund_reason"`

	Notes     *string   `gorm:"column:notes"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	b := &domain.Booking{
		ID:            m.ID,
		ReferenceCode: m.ReferenceCode,
		PropertyID:    m.PropertyID,
		GuestID:       m.GuestID,
		DateFrom:      m.DateFrom,
		DateTo:        m.DateTo,
		Rooms:         m.Rooms,
		Guests:        m.Guests,
		Children:      m.Children,
		TotalAmount:   m.TotalAmount,
		Status:        domain.BookingStatus(m.Status),

		IsPartialPayment:        m.IsPartialPayment,
		OnlinePaymentAmount:     m.OnlinePaymentAmount,
		HotelPaymentAmount:      m.HotelPaymentAmount,
		HotelPaymentStatus:      domain.HotelPaymentStatus(m.HotelPaymentStatus),
		HotelPaymentCollectedAt: m.HotelPaymentCollectedAt,
		HotelPaymentCollectedBy: m.HotelPaymentCollectedBy,
		OwnerPayoutStatus:       domain.OwnerPayoutStatus(m.OwnerPayoutStatus),

		CancelledAt:  m.CancelledAt,
		RefundAmount: m.RefundAmount,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.CancellationReason != nil {
		b.CancellationReason = *m.CancellationReason
	}
	if m.RefundReason != nil {
		b.RefundReason = *m.RefundReason
	}
	if m.Notes != nil {
		b.Notes = *m.Notes
	}
	return b
}

func toBookingModel(b *domain.Booking) bookingModel {
	m := bookingModel{
		ID:            b.ID,
		ReferenceCode: b.ReferenceCode,
		PropertyID:    b.PropertyID,
		GuestID:       b.GuestID,
		DateFrom:      b.DateFrom,
		DateTo:        b.DateTo,
		Rooms:         b.Rooms,
		Guests:        b.Guests,
		Children:      b.Children,
		TotalAmount:   b.TotalAmount,
		Status:        string(b.Status),

		IsPartialPayment:        b.IsPartialPayment,
		OnlinePaymentAmount:     b.OnlinePaymentAmount,
		HotelPaymentAmount:      b.HotelPaymentAmount,
		HotelPaymentStatus:      string(b.HotelPaymentStatus),
		HotelPaymentCollectedAt: b.HotelPaymentCollectedAt,
		HotelPaymentCollectedBy: b.HotelPaymentCollectedBy,
		OwnerPayoutStatus:       string(b.OwnerPayoutStatus),

		CancelledAt:  b.CancelledAt,
		RefundAmount: b.RefundAmount,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
	if b.CancellationReason != "" {
		v := b.CancellationReason
		m.CancellationReason = &v
	}
	if b.RefundReason != "" {
		v := b.RefundReason
		m.RefundReason = &v
	}
	if b.Notes != "" {
		v := b.Notes
		m.Notes = &v
	}
	return m
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// FindConflicting returns live bookings of the property whose [date_from,
// date_to) range overlaps the requested one, half-open on both sides so a
// checkout day never clashes with a same-day check-in.
func (r *BookingRepository) FindConflicting(ctx context.Context, propertyID int64, dateFrom, dateTo time.Time, excludeID int64) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("property_id = ?", propertyID).
		Where("status IN ?", []string{string(domain.BookingPending), string(domain.BookingConfirmed)}).
		Where("date_from < ? AND date_to > ?", dateTo, dateFrom)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var rows []bookingModel
	if err := q.Order("date_from").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) GetByGuest(ctx context.Context, guestID int64, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var rows []bookingModel
	err := r.db.WithContext(ctx).
		Where("guest_id = ?", guestID).
		Order("date_from DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) GetByProperty(ctx context.Context, propertyID int64) ([]domain.Booking, error) {
	var rows []bookingModel
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("date_from DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}

func (r *BookingRepository) CancelWithRefund(ctx context.Context, id int64, reason string, refundAmount float64, refundReason string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":              string(domain.BookingCancelled),
			"cancellation_reason": reason,
			"cancelled_at":        at,
			"refund_amount":       refundAmount,
			"refund_reason":       refundReason,
		}).Error
}

func (r *BookingRepository) CollectHotelPayment(ctx context.Context, id int64, collectorID int64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"hotel_payment_status":       string(domain.HotelPaymentCollected),
			"hotel_payment_collected_at": at,
			"hotel_payment_collected_by": collectorID,
		}).Error
}

func (r *BookingRepository) MarkOwnerPayout(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Update("owner_payout_status", string(domain.OwnerPayoutPaid)).Error
}

// ExpirePending cancels pending bookings created before the cutoff and
// returns how many were touched. Used by the lifecycle sweeper.
func (r *BookingRepository) ExpirePending(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("status = ? AND created_at < ?", string(domain.BookingPending), cutoff).
		Updates(map[string]interface{}{
			"status":              string(domain.BookingCancelled),
			"cancellation_reason": "expired: not confirmed in time",
			"cancelled_at":        time.Now().UTC(),
		})
	return tx.RowsAffected, tx.Error
}

// CompletePastCheckout closes confirmed bookings whose checkout date has
// passed and returns how many were touched.
func (r *BookingRepository) CompletePastCheckout(ctx context.Context, now time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("status = ? AND date_to <= ?", string(domain.BookingConfirmed), now).
		Update("status", string(domain.BookingCompleted))
	return tx.RowsAffected, tx.Error
}
