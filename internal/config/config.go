package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort             = "8080"
	defaultDatabaseURL      = "stayhub.db"
	defaultJWTSecret        = "change-me-jwt-secret"
	defaultJWTTTL           = "24h"
	defaultSweepInterval    = "10m"
	defaultPendingTTL       = "30m"
	defaultMinNights        = "1"
	defaultMaxNights        = "30"
	defaultMaxGuestsPerRoom = "4"
	defaultMaxTotalAmount   = "1000000"
	defaultMaxNightlyRate   = "50000"
)

// Config is the runtime configuration of the booking service, read from
// the environment with sane development defaults.
type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	// Lifecycle sweeper.
	SweepInterval time.Duration
	PendingTTL    time.Duration

	// Booking validation limits.
	MinNights        int
	MaxNights        int
	MaxGuestsPerRoom int
	MaxTotalAmount   float64
	MaxNightlyRate   float64
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = getEnv("PORT", defaultPort)
	cfg.DatabaseURL = getEnv("DATABASE_URL", defaultDatabaseURL)
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	if cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL); err != nil {
		return nil, err
	}
	if cfg.SweepInterval, err = parseDurationEnv("BOOKING_SWEEP_INTERVAL", defaultSweepInterval); err != nil {
		return nil, err
	}
	if cfg.PendingTTL, err = parseDurationEnv("BOOKING_PENDING_TTL", defaultPendingTTL); err != nil {
		return nil, err
	}

	if cfg.MinNights, err = parseIntEnv("BOOKING_MIN_NIGHTS", defaultMinNights); err != nil {
		return nil, err
	}
	if cfg.MaxNights, err = parseIntEnv("BOOKING_MAX_NIGHTS", defaultMaxNights); err != nil {
		return nil, err
	}
	if cfg.MaxGuestsPerRoom, err = parseIntEnv("BOOKING_MAX_GUESTS_PER_ROOM", defaultMaxGuestsPerRoom); err != nil {
		return nil, err
	}
	if cfg.MaxTotalAmount, err = parseFloatEnv("BOOKING_MAX_TOTAL_AMOUNT", defaultMaxTotalAmount); err != nil {
		return nil, err
	}
	if cfg.MaxNightlyRate, err = parseFloatEnv("BOOKING_MAX_NIGHTLY_RATE", defaultMaxNightlyRate); err != nil {
		return nil, err
	}

	if cfg.MinNights < 1 || cfg.MaxNights < cfg.MinNights {
		return nil, fmt.Errorf("invalid night limits: min=%d max=%d", cfg.MinNights, cfg.MaxNights)
	}

	if cfg.AppEnv == "prod" && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set in prod")
	}

	return cfg, nil
}

func getEnv(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(name, def string) (time.Duration, error) {
	raw := getEnv(name, def)
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("parse %s=%q: %w", name, raw, err)
	}
	return d, nil
}

func parseIntEnv(name, def string) (int, error) {
	raw := getEnv(name, def)
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("parse %s=%q: %w", name, raw, err)
	}
	return n, nil
}

func parseFloatEnv(name, def string) (float64, error) {
	raw := getEnv(name, def)
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s=%q: %w", name, raw, err)
	}
	return f, nil
}
