// Copyright (c) 2026 Inkshelf. All rights reserved.

package bin_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkshelf/inkshelf/internal/core/bin"
	"github.com/inkshelf/inkshelf/internal/core/book"
)

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		deletedAt time.Time
		want      int
	}{
		{"just_deleted", now, 30},
		{"half_a_day_counts_as_one", now.Add(-29*24*time.Hour - 12*time.Hour), 1},
		{"exact_boundary", now.Add(-30 * 24 * time.Hour), 0},
		{"long_lapsed_clamps_to_zero", now.Add(-90 * 24 * time.Hour), 0},
		{"ten_days_in", now.Add(-10 * 24 * time.Hour), 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bin.DaysRemaining(tt.deletedAt, now))
		})
	}
}

type fakeRepository struct {
	binned []*bin.BinnedBook

	restored []string
	purged   []string

	purgeAllCount  int
	expiredCutoffs []time.Time
}

func (f *fakeRepository) ListBinned(_ context.Context, _ string) ([]*bin.BinnedBook, error) {
	return f.binned, nil
}

func (f *fakeRepository) Restore(_ context.Context, _, id string) error {
	f.restored = append(f.restored, id)
	return nil
}

func (f *fakeRepository) Purge(_ context.Context, _, id string) error {
	f.purged = append(f.purged, id)
	return nil
}

func (f *fakeRepository) PurgeAll(_ context.Context, _ string) (int, error) {
	return f.purgeAllCount, nil
}

func (f *fakeRepository) PurgeExpired(_ context.Context, cutoff time.Time) (int, error) {
	f.expiredCutoffs = append(f.expiredCutoffs, cutoff)
	return 0, nil
}

func TestService_ListBinned_FillsCountdown(t *testing.T) {
	deletedAt := time.Now().Add(-5 * 24 * time.Hour)
	repo := &fakeRepository{binned: []*bin.BinnedBook{
		{Book: book.Book{ID: "b1", Title: "Gone"}, DeletedAt: deletedAt},
	}}
	service := bin.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))

	binned, err := service.ListBinned(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, binned, 1)
	assert.Equal(t, 25, binned[0].DaysRemaining)
}

func TestService_EmptyBin_ReportsCount(t *testing.T) {
	repo := &fakeRepository{purgeAllCount: 3}
	service := bin.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))

	purged, err := service.EmptyBin(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, purged)
}
