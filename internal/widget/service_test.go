// Copyright (c) 2026 Inkshelf. All rights reserved.

package widget

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkshelf/inkshelf/internal/platform/apperr"
)

type fakeRepository struct {
	mu      sync.Mutex
	layouts map[string][]Config
	saves   int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{layouts: map[string][]Config{}}
}

func (f *fakeRepository) GetLayout(_ context.Context, userID string) ([]Config, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.layouts[userID], nil
}

func (f *fakeRepository) SaveLayout(_ context.Context, userID string, configs []Config) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.layouts[userID] = configs
	f.saves++
	return nil
}

func (f *fakeRepository) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]Config
	hits    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]Config{}}
}

func (f *fakeCache) Get(_ context.Context, userID string) ([]Config, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if configs, ok := f.entries[userID]; ok {
		f.hits++
		return configs, nil
	}
	return nil, nil
}

func (f *fakeCache) Set(_ context.Context, userID string, configs []Config) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[userID] = configs
	return nil
}

func (f *fakeCache) Invalidate(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, userID)
	return nil
}

func testService(repo Repository, cache Cache, delay time.Duration) *Service {
	service := NewService(repo, cache, slog.New(slog.NewTextHandler(io.Discard, nil)))
	service.delay = delay
	return service
}

func TestGetLayout_Precedence(t *testing.T) {
	t.Run("defaults_when_nothing_stored", func(t *testing.T) {
		service := testService(newFakeRepository(), newFakeCache(), time.Hour)

		configs, err := service.GetLayout(context.Background(), "u1")
		require.NoError(t, err)
		assert.Len(t, configs, len(Kinds()))
		assert.True(t, configs[0].Enabled)
	})

	t.Run("postgres_beats_defaults_and_fills_cache", func(t *testing.T) {
		repo := newFakeRepository()
		repo.layouts["u1"] = []Config{{Kind: KindTopRated, Enabled: true, Size: SizeLarge}}
		cache := newFakeCache()
		service := testService(repo, cache, time.Hour)

		configs, err := service.GetLayout(context.Background(), "u1")
		require.NoError(t, err)
		require.Len(t, configs, 1)
		assert.Equal(t, KindTopRated, configs[0].Kind)

		// Second read is served by the cache.
		_, err = service.GetLayout(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, 1, cache.hits)
	})
}

func TestSaveLayout_Validation(t *testing.T) {
	service := testService(newFakeRepository(), newFakeCache(), time.Hour)

	t.Run("unknown_kind", func(t *testing.T) {
		_, err := service.SaveLayout(context.Background(), "u1",
			[]Config{{Kind: "weather", Size: SizeSmall}})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("duplicate_kind", func(t *testing.T) {
		_, err := service.SaveLayout(context.Background(), "u1", []Config{
			{Kind: KindTopRated}, {Kind: KindTopRated},
		})
		require.Error(t, err)
	})

	t.Run("renumbers_positions", func(t *testing.T) {
		configs, err := service.SaveLayout(context.Background(), "u1", []Config{
			{Kind: KindTopRated, Position: 7},
			{Kind: KindWishlist, Position: 3},
		})
		require.NoError(t, err)
		assert.Equal(t, KindWishlist, configs[0].Kind)
		assert.Equal(t, 0, configs[0].Position)
		assert.Equal(t, 1, configs[1].Position)
	})
}

func TestSaveLayout_DebouncesBursts(t *testing.T) {
	repo := newFakeRepository()
	service := testService(repo, newFakeCache(), 20*time.Millisecond)

	// A drag session: many saves in quick succession.
	for i := 0; i < 5; i++ {
		_, err := service.SaveLayout(context.Background(), "u1",
			[]Config{{Kind: KindTopRated, Position: i}})
		require.NoError(t, err)
	}

	assert.Equal(t, 0, repo.saveCount(), "nothing persisted inside the quiet period")

	// Reads see the pending layout before persistence.
	configs, err := service.GetLayout(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, configs, 1)

	assert.Eventually(t, func() bool { return repo.saveCount() == 1 },
		time.Second, 5*time.Millisecond, "burst collapses to one write")
}

func TestFlush_PersistsImmediately(t *testing.T) {
	repo := newFakeRepository()
	service := testService(repo, newFakeCache(), time.Hour)

	_, err := service.SaveLayout(context.Background(), "u1",
		[]Config{{Kind: KindReadingGoal}})
	require.NoError(t, err)
	require.Equal(t, 0, repo.saveCount())

	service.Flush()
	assert.Equal(t, 1, repo.saveCount())
}
