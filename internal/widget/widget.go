// Copyright (c) 2026 Inkshelf. All rights reserved.

/*
Package widget stores the user's dashboard layout configuration.

Reads are cache-aside: redis first, postgres on a miss, hard-coded defaults
when the user has never saved a layout. Writes land in postgres, then the
cache entry is invalidated. Rapid successive writes (dragging widgets
around) are coalesced per user before hitting postgres.
*/
package widget

// Widget kinds.
const (
	KindCurrentlyReading = "currently-reading"
	KindRecentlyAdded    = "recently-added"
	KindTopRated         = "top-rated"
	KindRecentlyFinished = "recently-finished"
	KindSeriesProgress   = "series-progress"
	KindLibraryHealth    = "library-health"
	KindWishlist         = "wishlist"
	KindReadingGoal      = "reading-goal"
)

// Kinds lists every known widget kind, in default layout order.
func Kinds() []string {
	return []string{
		KindCurrentlyReading, KindRecentlyAdded, KindTopRated,
		KindRecentlyFinished, KindSeriesProgress, KindLibraryHealth,
		KindWishlist, KindReadingGoal,
	}
}

// Sizes accepted for a widget.
const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
)

// Config is the layout entry for one widget.
type Config struct {
	Kind     string            `json:"kind"`
	Enabled  bool              `json:"enabled"`
	Position int               `json:"position"`
	Size     string            `json:"size"`
	Settings map[string]string `json:"settings"`
}

// Defaults is the layout served before the user ever saves one: every
// widget enabled, medium, in the canonical order.
func Defaults() []Config {
	kinds := Kinds()
	configs := make([]Config, len(kinds))
	for i, kind := range kinds {
		configs[i] = Config{
			Kind:     kind,
			Enabled:  true,
			Position: i,
			Size:     SizeMedium,
			Settings: map[string]string{},
		}
	}
	return configs
}

// Global field names for validation
const (
	FieldKind     = "kind"
	FieldSize     = "size"
	FieldPosition = "position"
)
