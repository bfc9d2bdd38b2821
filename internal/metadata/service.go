// Copyright (c) 2026 Inkshelf. All rights reserved.

package metadata

import (
	"context"
	"log/slog"
	"strings"

	"github.com/inkshelf/inkshelf/internal/platform/apperr"
	"github.com/inkshelf/inkshelf/pkg/isbn"
)

// Catalogue is the external lookup source.
type Catalogue interface {
	LookupISBN(context context.Context, isbn string) (*BookMetadata, error)
	Search(context context.Context, query string) ([]*BookMetadata, error)
}

// Cache keeps catalogue answers so repeat lookups skip the network.
type Cache interface {
	GetISBN(context context.Context, isbn string) (*BookMetadata, error)
	SetISBN(context context.Context, isbn string, record *BookMetadata) error
	GetSearch(context context.Context, query string) ([]*BookMetadata, error)
	SetSearch(context context.Context, query string, records []*BookMetadata) error
}

type Service struct {
	catalogue Catalogue
	cache     Cache
	logger    *slog.Logger
}

func NewService(catalogue Catalogue, cache Cache, logger *slog.Logger) *Service {
	return &Service{catalogue: catalogue, cache: cache, logger: logger}
}

// LookupISBN resolves a single ISBN, cache first.
func (service *Service) LookupISBN(context context.Context, raw string) (*BookMetadata, error) {
	normalized := isbn.Normalize(raw)
	if !isbn.IsValid(normalized) {
		return nil, apperr.ValidationError("invalid ISBN")
	}

	if cached, err := service.cache.GetISBN(context, normalized); err != nil {
		service.logger.Warn("metadata_cache_read_failed", "error", err)
	} else if cached != nil {
		return cached, nil
	}

	record, err := service.catalogue.LookupISBN(context, normalized)
	if err != nil {
		return nil, err
	}

	if err := service.cache.SetISBN(context, normalized, record); err != nil {
		service.logger.Warn("metadata_cache_write_failed", "error", err)
	}
	return record, nil
}

// Search runs a free-text catalogue query, cache first.
func (service *Service) Search(context context.Context, query string) ([]*BookMetadata, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperr.ValidationError("search query is required")
	}

	if cached, err := service.cache.GetSearch(context, query); err != nil {
		service.logger.Warn("metadata_cache_read_failed", "error", err)
	} else if cached != nil {
		return cached, nil
	}

	records, err := service.catalogue.Search(context, query)
	if err != nil {
		return nil, err
	}

	if err := service.cache.SetSearch(context, query, records); err != nil {
		service.logger.Warn("metadata_cache_write_failed", "error", err)
	}
	return records, nil
}
