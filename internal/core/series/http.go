// Copyright (c) 2026 Inkshelf. All rights reserved.

package series

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
	router.Get("/", handler.listSeries)
	router.Post("/", handler.createSeries)
	router.Get("/{id}", handler.getSeries)
	router.Get("/{id}/books", handler.listSeriesBooks)
	router.Patch("/{id}", handler.updateSeries)
	router.Delete("/{id}", handler.deleteSeries)
}

func (handler *Handler) listSeries(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	all, err := handler.service.ListSeries(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, all)
}

func (handler *Handler) getSeries(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	s, err := handler.service.GetSeries(request.Context(), userID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, s)
}

func (handler *Handler) listSeriesBooks(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	books, err := handler.service.ListSeriesBooks(request.Context(), userID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, books)
}

func (handler *Handler) createSeries(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Series
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateSeries(request.Context(), userID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateSeries(writer http.ResponseWriter, request *http.Request) {
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

	s, err := handler.service.UpdateSeries(request.Context(), userID, requestutil.ID(request, "id"), &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, s)
}

func (handler *Handler) deleteSeries(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteSeries(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
