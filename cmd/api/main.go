package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"stayhub/internal/config"
	"stayhub/internal/database"
	"stayhub/internal/middleware"
	"stayhub/internal/modules/availability"
	"stayhub/internal/modules/booking"
	"stayhub/internal/modules/payment"
	"stayhub/internal/notification"
	"stayhub/internal/pkg/clock"
	jwtsvc "stayhub/internal/pkg/jwt"
	"stayhub/internal/repository"
	"stayhub/internal/worker"
)

func main() {
	_ = godotenv.Load()

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("database: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		logrus.Fatalf("migrate: %v", err)
	}

	bookingRepo := repository.NewBookingRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)

	clk := clock.New()
	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	availabilityService := availability.NewService(bookingRepo, propertyRepo, clk, availability.Limits{
		MinNights: cfg.MinNights,
		MaxNights: cfg.MaxNights,
	})
	availabilityHandler := availability.NewHandler(availabilityService)

	paymentHandler := payment.NewHandler(propertyRepo, clk)

	bookingService := booking.NewService(bookingRepo, propertyRepo, availabilityService, notification.NewLogSender(), clk, booking.Limits{
		MaxGuestsPerRoom: cfg.MaxGuestsPerRoom,
		MaxTotalAmount:   cfg.MaxTotalAmount,
		MaxNightlyRate:   cfg.MaxNightlyRate,
	})
	bookingHandler := booking.NewHandler(bookingService)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweeper := worker.NewSweeper(bookingRepo, clk, cfg.SweepInterval, cfg.PendingTTL)
	go sweeper.Start(ctx)

	if cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	v1 := r.Group("/api/v1")
	{
		// public
		availabilityHandler.RegisterRoutes(v1)
		paymentHandler.RegisterRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			bookingHandler.RegisterRoutes(protected)
		}
	}

	logrus.WithField("port", cfg.Port).Info("stayhub booking service listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.Fatal(err)
	}
}
