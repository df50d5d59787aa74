package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"stayhub/internal/database"
	"stayhub/internal/domain"
	"stayhub/internal/repository"
)

func main() {
	db, err := database.Connect("stayhub.db")
	if err != nil {
		logrus.Fatal("DB connection failed: ", err)
	}

	logrus.Info("Running migrations...")
	if err := repository.Migrate(db); err != nil {
		logrus.Fatal("Migrate failed: ", err)
	}

	logrus.Info("Cleaning old data...")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM properties")

	ctx := context.Background()
	properties := repository.NewPropertyRepository(db)
	bookings := repository.NewBookingRepository(db)

	logrus.Info("Creating properties...")

	seaside := &domain.Property{
		Name:             "Seaside Grand",
		City:             "Aktau",
		TotalRooms:       24,
		MaxGuestsPerRoom: 4,
		OwnerID:          101,
		PaymentSettings: domain.PaymentSettings{
			PartialPaymentEnabled: true,
			MinPercent:            30,
			MaxPercent:            100,
			DefaultPercent:        50,
			CancellationPolicy:    domain.DefaultCancellationPolicy(),
		},
	}
	if err := properties.Create(ctx, seaside); err != nil {
		logrus.Fatal("seed property: ", err)
	}

	cityInn := &domain.Property{
		Name:             "City Inn",
		City:             "Almaty",
		TotalRooms:       10,
		MaxGuestsPerRoom: 2,
		OwnerID:          102,
		PaymentSettings:  domain.DefaultPaymentSettings(),
	}
	if err := properties.Create(ctx, cityInn); err != nil {
		logrus.Fatal("seed property: ", err)
	}

	logrus.Info("Creating bookings...")

	checkIn := time.Now().UTC().AddDate(0, 0, 14).Truncate(24 * time.Hour)
	demo := []*domain.Booking{
		{
			ReferenceCode:       uuid.NewString(),
			PropertyID:          seaside.ID,
			GuestID:             201,
			DateFrom:            checkIn,
			DateTo:              checkIn.AddDate(0, 0, 3),
			Rooms:               2,
			Guests:              3,
			Children:            1,
			TotalAmount:         90000,
			Status:              domain.BookingConfirmed,
			IsPartialPayment:    true,
			OnlinePaymentAmount: 45000,
			HotelPaymentAmount:  45000,
			HotelPaymentStatus:  domain.HotelPaymentPending,
			OwnerPayoutStatus:   domain.OwnerPayoutPending,
		},
		{
			ReferenceCode:       uuid.NewString(),
			PropertyID:          cityInn.ID,
			GuestID:             202,
			DateFrom:            checkIn.AddDate(0, 0, 7),
			DateTo:              checkIn.AddDate(0, 0, 9),
			Rooms:               1,
			Guests:              2,
			TotalAmount:         30000,
			Status:              domain.BookingPending,
			OnlinePaymentAmount: 30000,
			OwnerPayoutStatus:   domain.OwnerPayoutPending,
		},
	}
	for _, b := range demo {
		if err := bookings.Create(ctx, b); err != nil {
			logrus.Fatal("seed booking: ", err)
		}
	}

	fmt.Println("Seed complete:")
	fmt.Printf("  properties: %d (Seaside Grand id=%d, City Inn id=%d)\n", 2, seaside.ID, cityInn.ID)
	fmt.Printf("  bookings:   %d\n", len(demo))
}
