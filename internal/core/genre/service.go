// Copyright (c) 2026 Inkshelf. All rights reserved.

package genre

import (
	"context"
	"log/slog"
	"strings"

	"github.com/inkshelf/inkshelf/internal/platform/validate"
	uuid "github.com/inkshelf/inkshelf/pkg/uuidv7"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListGenres(context context.Context, userID string) ([]*Genre, error) {
	genres, err := service.repo.ListGenres(context, userID)
	if err != nil {
		return nil, err
	}
	for _, g := range genres {
		decorate(g)
	}
	return genres, nil
}

func (service *Service) GetGenre(context context.Context, userID, id string) (*Genre, error) {
	g, err := service.repo.GetGenre(context, userID, id)
	if err != nil {
		return nil, err
	}
	return decorate(g), nil
}

// CreateGenre inserts a new label. Name uniqueness per user is enforced by
// the database; a duplicate surfaces as a CONFLICT error.
func (service *Service) CreateGenre(context context.Context, userID string, g *Genre) error {
	if err := normalizeAndValidate(g); err != nil {
		return err
	}

	g.ID = uuid.Must()
	g.UserID = userID

	if err := service.repo.CreateGenre(context, g); err != nil {
		return err
	}

	decorate(g)
	service.logger.Info("genre_created", slog.String("name", g.Name))
	return nil
}

// UpdateGenre applies a partial update: only the supplied fields change,
// and the merged label is validated as a whole before it is written back.
func (service *Service) UpdateGenre(context context.Context, userID, id string, p *Patch) (*Genre, error) {
	g, err := service.repo.GetGenre(context, userID, id)
	if err != nil {
		return nil, err
	}

	p.apply(g)
	if err := normalizeAndValidate(g); err != nil {
		return nil, err
	}

	if err := service.repo.UpdateGenre(context, g); err != nil {
		return nil, err
	}

	service.logger.Info("genre_updated", slog.String("genre_id", id))
	return decorate(g), nil
}

// DeleteGenre removes the label and detaches it from every book. The books
// themselves are untouched.
func (service *Service) DeleteGenre(context context.Context, userID, id string) error {
	if err := service.repo.DeleteGenre(context, userID, id); err != nil {
		return err
	}

	service.logger.Info("genre_deleted", slog.String("genre_id", id))
	return nil
}

// decorate fills the derived text color for a label about to leave the
// service.
func decorate(g *Genre) *Genre {
	if g.Color == nil {
		g.TextColor = nil
		return g
	}
	textColor := ContrastColor(*g.Color)
	g.TextColor = &textColor
	return g
}

func normalizeAndValidate(g *Genre) error {
	g.Name = strings.TrimSpace(g.Name)
	if g.Color != nil {
		color := strings.TrimSpace(strings.ToLower(*g.Color))
		if color == "" {
			g.Color = nil
		} else {
			g.Color = &color
		}
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, g.Name).MaxLen(FieldName, g.Name, MaxNameLen)
	if g.Color != nil {
		validator.HexColor(FieldColor, *g.Color)
	}
	return validator.Err()
}
