// Copyright (c) 2026 Inkshelf. All rights reserved.

package prefs

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
	router.Get("/{key}", handler.getPreference)
	router.Put("/{key}", handler.setPreference)
}

func (handler *Handler) getPreference(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	preference, err := handler.service.Get(request.Context(), userID, requestutil.Param(request, "key"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, preference)
}

func (handler *Handler) setPreference(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Value string `json:"value"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	preference, err := handler.service.Set(request.Context(), userID, requestutil.Param(request, "key"), input.Value)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, preference)
}
