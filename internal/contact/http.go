// Copyright (c) 2026 Inkshelf. All rights reserved.

package contact

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

// RegisterRoutes mounts the contact form endpoint. The route is public;
// abuse is kept in check by the global rate limiter.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/", handler.submit)
}

func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	var message Message
	if err := requestutil.DecodeJSON(request, &message); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Submit(request.Context(), message); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.JSON(writer, http.StatusOK, map[string]bool{"success": true})
}
