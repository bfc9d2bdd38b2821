// Copyright (c) 2026 Inkshelf. All rights reserved.

/*
Package prefs stores small per-user preference values (theme, default sort,
page size, metadata sync, dismissed banners) under an allowlisted set of
keys.

Reads are cache-aside like the widget layout; values are plain strings and
validated per key.
*/
package prefs

import "strings"

// Preference keys.
const (
	KeyTheme        = "theme"
	KeyDefaultSort  = "default_sort"
	KeyBooksPerPage = "books_per_page"
	// KeySyncMetadata controls whether saving a book refreshes its
	// metadata from the external catalogue.
	KeySyncMetadata = "sync_metadata"
	// KeyVerifyBannerDismissed is the one-time flag set when the user
	// closes the email-verification banner.
	KeyVerifyBannerDismissed = "verify_banner_dismissed"
)

// Theme values.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// Keys lists every accepted preference key.
func Keys() []string {
	return []string{
		KeyTheme, KeyDefaultSort, KeyBooksPerPage,
		KeySyncMetadata, KeyVerifyBannerDismissed,
	}
}

// Default returns the built-in value for a key.
func Default(key string) string {
	switch key {
	case KeyTheme:
		return ThemeSystem
	case KeyDefaultSort:
		return "created_at"
	case KeyBooksPerPage:
		return "20"
	case KeySyncMetadata:
		return "true"
	case KeyVerifyBannerDismissed:
		return "false"
	default:
		return ""
	}
}

// Preference is one stored key/value pair.
type Preference struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ResolveTheme decides the effective theme for a page render.
//
// Public routes (login, contact) always render light so the marketing
// surface looks consistent; everywhere else the stored preference applies,
// defaulting to following the system.
func ResolveTheme(route string, authenticated bool, stored string) string {
	if isPublicRoute(route) || !authenticated {
		return ThemeLight
	}
	switch stored {
	case ThemeLight, ThemeDark, ThemeSystem:
		return stored
	default:
		return ThemeSystem
	}
}

func isPublicRoute(route string) bool {
	for _, prefix := range []string{"/login", "/register", "/contact", "/forgot-password"} {
		if route == prefix || strings.HasPrefix(route, prefix+"/") {
			return true
		}
	}
	return false
}
