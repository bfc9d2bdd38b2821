// Copyright (c) 2026 Inkshelf. All rights reserved.

package genre

import (
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
	router.Get("/", handler.listGenres)
	router.Post("/", handler.createGenre)
	router.Get("/{id}", handler.getGenre)
	router.Patch("/{id}", handler.updateGenre)
	router.Delete("/{id}", handler.deleteGenre)
}

func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	genres, err := handler.service.ListGenres(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, genres)
}

func (handler *Handler) getGenre(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	g, err := handler.service.GetGenre(request.Context(), userID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, g)
}

func (handler *Handler) createGenre(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Genre
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateGenre(request.Context(), userID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateGenre(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Patch
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	g, err := handler.service.UpdateGenre(request.Context(), userID, requestutil.ID(request, "id"), &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, g)
}

func (handler *Handler) deleteGenre(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteGenre(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
