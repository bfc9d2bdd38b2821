// Copyright (c) 2026 Inkshelf. All rights reserved.

package genre

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkshelf/inkshelf/internal/platform/apperr"
)

type fakeRepository struct {
	genres map[string]*Genre
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{genres: map[string]*Genre{}}
}

func (f *fakeRepository) ListGenres(_ context.Context, userID string) ([]*Genre, error) {
	var out []*Genre
	for _, g := range f.genres {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeRepository) GetGenre(_ context.Context, userID, id string) (*Genre, error) {
	g, ok := f.genres[id]
	if !ok || g.UserID != userID {
		return nil, apperr.NotFound("genre")
	}
	return g, nil
}

func (f *fakeRepository) CreateGenre(_ context.Context, g *Genre) error {
	for _, existing := range f.genres {
		if existing.UserID == g.UserID && existing.Name == g.Name {
			return apperr.Conflict("genre already exists")
		}
	}
	f.genres[g.ID] = g
	return nil
}

func (f *fakeRepository) UpdateGenre(_ context.Context, g *Genre) error {
	existing, ok := f.genres[g.ID]
	if !ok || existing.UserID != g.UserID {
		return apperr.NotFound("genre")
	}
	f.genres[g.ID] = g
	return nil
}

func (f *fakeRepository) DeleteGenre(_ context.Context, userID, id string) error {
	g, ok := f.genres[id]
	if !ok || g.UserID != userID {
		return apperr.NotFound("genre")
	}
	delete(f.genres, id)
	return nil
}

func testService(repo Repository) *Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

const ownerID = "0195a000-0000-7000-8000-000000000001"

func TestService_CreateGenre(t *testing.T) {
	t.Run("normalizes_and_creates", func(t *testing.T) {
		repo := newFakeRepository()
		service := testService(repo)

		color := " #AB12CD "
		g := Genre{Name: "  Science Fiction  ", Color: &color}
		require.NoError(t, service.CreateGenre(context.Background(), ownerID, &g))

		assert.Equal(t, "Science Fiction", g.Name)
		require.NotNil(t, g.Color)
		assert.Equal(t, "#ab12cd", *g.Color)
		require.NotNil(t, g.TextColor, "dark label color needs a derived text color")
		assert.Equal(t, "#ffffff", *g.TextColor)
		assert.NotEmpty(t, g.ID)
	})

	t.Run("rejects_empty_name", func(t *testing.T) {
		service := testService(newFakeRepository())

		err := service.CreateGenre(context.Background(), ownerID, &Genre{Name: "   "})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("rejects_bad_color", func(t *testing.T) {
		service := testService(newFakeRepository())

		color := "red"
		err := service.CreateGenre(context.Background(), ownerID, &Genre{Name: "Fantasy", Color: &color})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("duplicate_name_conflicts", func(t *testing.T) {
		repo := newFakeRepository()
		service := testService(repo)

		require.NoError(t, service.CreateGenre(context.Background(), ownerID, &Genre{Name: "Fantasy"}))
		err := service.CreateGenre(context.Background(), ownerID, &Genre{Name: "Fantasy"})
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("blank_color_stored_as_null", func(t *testing.T) {
		repo := newFakeRepository()
		service := testService(repo)

		color := "   "
		g := Genre{Name: "Horror", Color: &color}
		require.NoError(t, service.CreateGenre(context.Background(), ownerID, &g))
		assert.Nil(t, g.Color)
	})
}

func TestService_UpdateGenre_Partial(t *testing.T) {
	stored := func() *fakeRepository {
		repo := newFakeRepository()
		color := "#112233"
		repo.genres["g1"] = &Genre{ID: "g1", UserID: ownerID, Name: "Fantasy", Color: &color, BookCount: 3}
		return repo
	}

	decode := func(t *testing.T, body string) *Patch {
		t.Helper()
		var p Patch
		require.NoError(t, json.Unmarshal([]byte(body), &p))
		return &p
	}

	t.Run("renames_without_touching_color", func(t *testing.T) {
		service := testService(stored())

		g, err := service.UpdateGenre(context.Background(), ownerID, "g1", decode(t, `{"name": "High Fantasy"}`))
		require.NoError(t, err)
		assert.Equal(t, "High Fantasy", g.Name)
		require.NotNil(t, g.Color)
		assert.Equal(t, "#112233", *g.Color)
		assert.Equal(t, 3, g.BookCount)
	})

	t.Run("null_clears_color", func(t *testing.T) {
		service := testService(stored())

		g, err := service.UpdateGenre(context.Background(), ownerID, "g1", decode(t, `{"color": null}`))
		require.NoError(t, err)
		assert.Nil(t, g.Color)
		assert.Equal(t, "Fantasy", g.Name)
	})

	t.Run("null_name_fails_required", func(t *testing.T) {
		service := testService(stored())

		_, err := service.UpdateGenre(context.Background(), ownerID, "g1", decode(t, `{"name": null}`))
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

func TestService_DeleteGenre_NotFound(t *testing.T) {
	service := testService(newFakeRepository())

	err := service.DeleteGenre(context.Background(), ownerID, "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
