// Copyright (c) 2026 Inkshelf. All rights reserved.

package suggest

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/inkshelf/inkshelf/internal/platform/request"
	"github.com/inkshelf/inkshelf/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/authors", handler.suggest(handler.service.Authors))
	router.Get("/genres", handler.suggest(handler.service.Genres))
	router.Get("/series", handler.suggest(handler.service.Series))
}

// suggest adapts one suggestion source into a handler; the three endpoints
// differ only in where candidates come from.
func (handler *Handler) suggest(source func(ctx context.Context, userID, query string) ([]Suggestion, error)) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		userID, err := requestutil.RequiredUserID(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		suggestions, err := source(request.Context(), userID, request.URL.Query().Get("q"))
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, suggestions)
	}
}
