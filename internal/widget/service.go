// Copyright (c) 2026 Inkshelf. All rights reserved.

package widget

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/inkshelf/inkshelf/internal/platform/validate"
	"github.com/inkshelf/inkshelf/pkg/debounce"
)

// saveDelay is the quiet period before a layout burst is persisted.
const saveDelay = 2 * time.Second

// pendingWrite holds the newest unsaved layout for one user together with
// its debouncer.
type pendingWrite struct {
	mu        sync.Mutex
	configs   []Config
	debouncer *debounce.Debouncer
}

type Service struct {
	repo   Repository
	cache  Cache
	logger *slog.Logger
	delay  time.Duration

	mu      sync.Mutex
	pending map[string]*pendingWrite
}

func NewService(repo Repository, cache Cache, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		cache:   cache,
		logger:  logger,
		delay:   saveDelay,
		pending: make(map[string]*pendingWrite),
	}
}

// GetLayout resolves the user's layout: unsaved pending write first, then
// cache, then postgres, then the defaults. Cache misses are backfilled.
func (service *Service) GetLayout(context context.Context, userID string) ([]Config, error) {
	if configs := service.pendingLayout(userID); configs != nil {
		return configs, nil
	}

	if configs, err := service.cache.Get(context, userID); err == nil && configs != nil {
		return configs, nil
	} else if err != nil {
		// A degraded cache must not take the read path down.
		service.logger.Warn("widget_cache_read_failed", slog.String("error", err.Error()))
	}

	configs, err := service.repo.GetLayout(context, userID)
	if err != nil {
		return nil, err
	}
	if configs == nil {
		configs = Defaults()
	}

	if err := service.cache.Set(context, userID, configs); err != nil {
		service.logger.Warn("widget_cache_fill_failed", slog.String("error", err.Error()))
	}
	return configs, nil
}

// SaveLayout validates and schedules a layout write. Bursts of saves within
// the quiet period collapse into a single postgres write; the latest layout
// always wins.
func (service *Service) SaveLayout(context context.Context, userID string, configs []Config) ([]Config, error) {
	normalized, err := normalizeLayout(configs)
	if err != nil {
		return nil, err
	}

	service.mu.Lock()
	entry, ok := service.pending[userID]
	if !ok {
		entry = &pendingWrite{}
		entry.debouncer = debounce.New(service.delay, func() { service.flushUser(userID, entry) })
		service.pending[userID] = entry
	}
	service.mu.Unlock()

	entry.mu.Lock()
	entry.configs = normalized
	entry.mu.Unlock()
	entry.debouncer.Trigger()

	return normalized, nil
}

// Flush persists every pending layout immediately. Called on shutdown.
func (service *Service) Flush() {
	service.mu.Lock()
	entries := make([]*debounce.Debouncer, 0, len(service.pending))
	for _, entry := range service.pending {
		entries = append(entries, entry.debouncer)
	}
	service.mu.Unlock()

	for _, d := range entries {
		d.Flush()
	}
}

func (service *Service) pendingLayout(userID string) []Config {
	service.mu.Lock()
	entry, ok := service.pending[userID]
	service.mu.Unlock()
	if !ok {
		return nil
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.configs
}

// flushUser runs on the debounce timer; it owns the postgres write and the
// cache invalidation for one user.
func (service *Service) flushUser(userID string, entry *pendingWrite) {
	entry.mu.Lock()
	configs := entry.configs
	entry.mu.Unlock()
	if configs == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := service.repo.SaveLayout(ctx, userID, configs); err != nil {
		service.logger.Error("widget_layout_save_failed",
			slog.String("user_id", userID), slog.String("error", err.Error()))
		return
	}
	if err := service.cache.Invalidate(ctx, userID); err != nil {
		service.logger.Warn("widget_cache_invalidate_failed", slog.String("error", err.Error()))
	}

	entry.mu.Lock()
	if equalLayouts(entry.configs, configs) {
		entry.configs = nil // persisted; reads fall through to storage again
	}
	entry.mu.Unlock()
}

// normalizeLayout validates kinds and sizes, rejects duplicate kinds, and
// renumbers positions contiguously in the submitted order.
func normalizeLayout(configs []Config) ([]Config, error) {
	validator := &validate.Validator{}

	seen := make(map[string]bool, len(configs))
	for i := range configs {
		c := &configs[i]
		validator.OneOf(FieldKind, c.Kind, Kinds()...)
		if c.Size == "" {
			c.Size = SizeMedium
		}
		validator.OneOf(FieldSize, c.Size, SizeSmall, SizeMedium, SizeLarge)
		validator.Custom(FieldKind, seen[c.Kind], "duplicate widget kind")
		seen[c.Kind] = true
		if c.Settings == nil {
			c.Settings = map[string]string{}
		}
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	sorted := append([]Config(nil), configs...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Position < sorted[j].Position })
	for i := range sorted {
		sorted[i].Position = i
	}
	return sorted, nil
}

func equalLayouts(a, b []Config) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Kind != b[i].Kind || a[i].Enabled != b[i].Enabled ||
			a[i].Position != b[i].Position || a[i].Size != b[i].Size {
			return false
		}
	}
	return true
}
