// Copyright (c) 2026 Inkshelf. All rights reserved.

package metadata

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
	router.Get("/isbn/{isbn}", handler.lookupISBN)
	router.Get("/search", handler.search)
}

func (handler *Handler) lookupISBN(writer http.ResponseWriter, request *http.Request) {
	if _, err := requestutil.RequiredUserID(request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.LookupISBN(request.Context(), requestutil.Param(request, "isbn"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, record)
}

func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	if _, err := requestutil.RequiredUserID(request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	records, err := handler.service.Search(request.Context(), request.URL.Query().Get("q"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, records)
}
