package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"stayhub/internal/pkg/clock"
)

// LifecycleRepository is the slice of the booking repository the sweeper
// needs.
type LifecycleRepository interface {
	ExpirePending(ctx context.Context, cutoff time.Time) (int64, error)
	CompletePastCheckout(ctx context.Context, now time.Time) (int64, error)
}

// Sweeper periodically expires stale pending bookings and completes
// confirmed bookings whose checkout has passed.
type Sweeper struct {
	repo       LifecycleRepository
	clk        clock.Clock
	interval   time.Duration
	pendingTTL time.Duration
}

func NewSweeper(repo LifecycleRepository, clk clock.Clock, interval, pendingTTL time.Duration) *Sweeper {
	return &Sweeper{repo: repo, clk: clk, interval: interval, pendingTTL: pendingTTL}
}

func (w *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Info("Booking lifecycle sweeper started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Booking lifecycle sweeper stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *Sweeper) sweep(ctx context.Context) {
	now := w.clk.Now()

	expired, err := w.repo.ExpirePending(ctx, now.Add(-w.pendingTTL))
	if err != nil {
		logrus.Errorf("Failed to expire pending bookings: %v", err)
	} else if expired > 0 {
		logrus.Infof("Expired %d stale pending booking(s)", expired)
	}

	completed, err := w.repo.CompletePastCheckout(ctx, now)
	if err != nil {
		logrus.Errorf("Failed to complete past-checkout bookings: %v", err)
	} else if completed > 0 {
		logrus.Infof("Completed %d booking(s) past checkout", completed)
	}
}
