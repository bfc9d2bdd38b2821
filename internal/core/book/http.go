// Copyright (c) 2026 Inkshelf. All rights reserved.

package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/inkshelf/inkshelf/internal/platform/request"
	"github.com/inkshelf/inkshelf/internal/platform/respond"
	"github.com/inkshelf/inkshelf/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the library routes. The whole group requires an
// authenticated session; ownership scoping happens in the service calls.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listBooks)
	router.Post("/", handler.createBook)

	router.Get("/{id}", handler.getBook)
	router.Patch("/{id}", handler.updateBook)
	router.Delete("/{id}", handler.deleteBook)

	router.Post("/{id}/reads", handler.startRead)
	router.Patch("/{id}/reads/current", handler.finishRead)
	router.Delete("/{id}/reads/{readID}", handler.deleteRead)
}

func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)
	queryValues := request.URL.Query()
	filter := Filter{
		Status:   ReadingStatus(queryValues.Get("status")),
		GenreID:  queryValues.Get("genre_id"),
		SeriesID: queryValues.Get("series_id"),
		Query:    queryValues.Get("q"),
		Sort:     queryValues.Get("sort"),
	}

	books, total, err := handler.service.ListBooks(request.Context(), userID, filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	b, err := handler.service.GetBook(request.Context(), userID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, b)
}

func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Book
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateBook(request.Context(), userID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateBook(writer http.ResponseWriter, request *http.Request) {
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

	b, err := handler.service.UpdateBook(request.Context(), userID, requestutil.ID(request, "id"), &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, b)
}

func (handler *Handler) deleteBook(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	deleteSeries := request.URL.Query().Get("delete_series") == "true"
	result, err := handler.service.DeleteBook(request.Context(), userID, requestutil.ID(request, "id"), deleteSeries)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) startRead(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	b, err := handler.service.StartRead(request.Context(), userID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, b)
}

func (handler *Handler) finishRead(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	b, err := handler.service.FinishRead(request.Context(), userID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, b)
}

func (handler *Handler) deleteRead(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	b, err := handler.service.DeleteRead(request.Context(), userID,
		requestutil.ID(request, "id"), requestutil.ID(request, "readID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, b)
}
