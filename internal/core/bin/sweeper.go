// Copyright (c) 2026 Inkshelf. All rights reserved.

package bin

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/inkshelf/inkshelf/internal/platform/constants"
)

// Sweeper purges bin entries whose retention window has lapsed. It runs on
// a cron schedule, off-peak, and also once at startup so a long-stopped
// instance catches up immediately.
type Sweeper struct {
	repo   Repository
	cron   *cron.Cron
	logger *slog.Logger
}

func NewSweeper(repo Repository, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		repo:   repo,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start registers the schedule and launches the cron loop.
func (sweeper *Sweeper) Start() error {
	if _, err := sweeper.cron.AddFunc(constants.BinSweepSchedule, sweeper.sweep); err != nil {
		return err
	}
	sweeper.cron.Start()

	go sweeper.sweep() // catch-up run
	return nil
}

// Stop halts the schedule and returns a context that is done once any
// in-flight sweep has finished.
func (sweeper *Sweeper) Stop() context.Context {
	return sweeper.cron.Stop()
}

func (sweeper *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-constants.BinRetention)
	purged, err := sweeper.repo.PurgeExpired(ctx, cutoff)
	if err != nil {
		sweeper.logger.Error("bin_sweep_failed", slog.String("error", err.Error()))
		return
	}
	if purged > 0 {
		sweeper.logger.Info("bin_sweep_completed", slog.Int("purged", purged))
	}
}
