// Copyright (c) 2026 Inkshelf. All rights reserved.

package bin

import (
	"context"
	"log/slog"
	"time"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// ListBinned returns the user's bin with the purge countdown filled in.
func (service *Service) ListBinned(context context.Context, userID string) ([]*BinnedBook, error) {
	binned, err := service.repo.ListBinned(context, userID)
	if err != nil {
		return nil, err
	}

	now := service.now()
	for _, b := range binned {
		b.DaysRemaining = DaysRemaining(b.DeletedAt, now)
	}
	return binned, nil
}

// Restore moves a book back into the active library with its history.
func (service *Service) Restore(context context.Context, userID, id string) error {
	if err := service.repo.Restore(context, userID, id); err != nil {
		return err
	}

	service.logger.Info("book_restored", slog.String("book_id", id))
	return nil
}

// Purge permanently removes one binned book.
func (service *Service) Purge(context context.Context, userID, id string) error {
	if err := service.repo.Purge(context, userID, id); err != nil {
		return err
	}

	service.logger.Info("book_purged", slog.String("book_id", id))
	return nil
}

// EmptyBin purges everything in the user's bin.
func (service *Service) EmptyBin(context context.Context, userID string) (int, error) {
	purged, err := service.repo.PurgeAll(context, userID)
	if err != nil {
		return 0, err
	}

	service.logger.Info("bin_emptied", slog.Int("purged", purged))
	return purged, nil
}
