// Copyright (c) 2026 Inkshelf. All rights reserved.

package prefs

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkshelf/inkshelf/internal/platform/apperr"
)

func TestResolveTheme(t *testing.T) {
	tests := []struct {
		name          string
		route         string
		authenticated bool
		stored        string
		want          string
	}{
		{"public_route_forces_light", "/login", true, ThemeDark, ThemeLight},
		{"public_subroute_forces_light", "/contact/sent", false, ThemeDark, ThemeLight},
		{"unauthenticated_forces_light", "/library", false, ThemeDark, ThemeLight},
		{"stored_dark_applies", "/library", true, ThemeDark, ThemeDark},
		{"stored_light_applies", "/dashboard", true, ThemeLight, ThemeLight},
		{"empty_defaults_to_system", "/library", true, "", ThemeSystem},
		{"garbage_defaults_to_system", "/library", true, "sepia", ThemeSystem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveTheme(tt.route, tt.authenticated, tt.stored))
		})
	}
}

type fakeRepository struct {
	values map[string]string
}

func (f *fakeRepository) Get(_ context.Context, userID, key string) (string, error) {
	return f.values[userID+"/"+key], nil
}

func (f *fakeRepository) Set(_ context.Context, userID, key, value string) error {
	f.values[userID+"/"+key] = value
	return nil
}

type fakeCache struct {
	values map[string]string
	hits   int
}

func (f *fakeCache) Get(_ context.Context, userID, key string) (string, bool, error) {
	value, ok := f.values[userID+"/"+key]
	if ok {
		f.hits++
	}
	return value, ok, nil
}

func (f *fakeCache) Set(_ context.Context, userID, key, value string) error {
	f.values[userID+"/"+key] = value
	return nil
}

func (f *fakeCache) Invalidate(_ context.Context, userID, key string) error {
	delete(f.values, userID+"/"+key)
	return nil
}

func testService() (*Service, *fakeRepository, *fakeCache) {
	repo := &fakeRepository{values: map[string]string{}}
	cache := &fakeCache{values: map[string]string{}}
	return NewService(repo, cache, slog.New(slog.NewTextHandler(io.Discard, nil))), repo, cache
}

func TestService_Get_DefaultsAndCacheFill(t *testing.T) {
	service, _, cache := testService()

	preference, err := service.Get(context.Background(), "u1", KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, ThemeSystem, preference.Value)

	// The default got cached; the next read is a hit.
	_, err = service.Get(context.Background(), "u1", KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
}

func TestService_Set_ValidatesAndInvalidates(t *testing.T) {
	service, repo, _ := testService()

	t.Run("rejects_unknown_key", func(t *testing.T) {
		_, err := service.Set(context.Background(), "u1", "font", "mono")
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("rejects_bad_theme", func(t *testing.T) {
		_, err := service.Set(context.Background(), "u1", KeyTheme, "sepia")
		require.Error(t, err)
	})

	t.Run("rejects_out_of_range_page_size", func(t *testing.T) {
		_, err := service.Set(context.Background(), "u1", KeyBooksPerPage, "500")
		require.Error(t, err)
	})

	t.Run("rejects_non_boolean_sync_flag", func(t *testing.T) {
		_, err := service.Set(context.Background(), "u1", KeySyncMetadata, "yes")
		require.Error(t, err)
	})

	t.Run("dismisses_verification_banner", func(t *testing.T) {
		_, err := service.Set(context.Background(), "u1", KeyVerifyBannerDismissed, "true")
		require.NoError(t, err)
		assert.Equal(t, "true", repo.values["u1/"+KeyVerifyBannerDismissed])
	})

	t.Run("persists_and_invalidates_cache", func(t *testing.T) {
		// Prime the cache with the default.
		_, err := service.Get(context.Background(), "u1", KeyTheme)
		require.NoError(t, err)

		_, err = service.Set(context.Background(), "u1", KeyTheme, ThemeDark)
		require.NoError(t, err)
		assert.Equal(t, ThemeDark, repo.values["u1/"+KeyTheme])

		preference, err := service.Get(context.Background(), "u1", KeyTheme)
		require.NoError(t, err)
		assert.Equal(t, ThemeDark, preference.Value)
	})
}
