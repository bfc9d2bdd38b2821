// Copyright (c) 2026 Inkshelf. All rights reserved.

// Package normalize folds arbitrary Unicode strings into a canonical form
// used for typeahead matching.
//
// # Usage
//
// Suggestion candidates (author names, genre names, series names) and the
// user's query are both folded before comparison, so that "Émile  Zola"
// matches the query "emile zola".
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// multiSpace collapses any run of whitespace into a single space.
var multiSpace = regexp.MustCompile(`\s+`)

// Fold converts a string into its canonical matching form.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Converts to lowercase.
// 4. Collapses internal whitespace and trims the ends.
func Fold(s string) string {
	// 1. Normalize and remove accents
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, s)

	// 2. Lowercase
	result = strings.ToLower(result)

	// 3. Whitespace cleanup
	result = multiSpace.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// Match reports whether the folded form of candidate contains the folded
// form of query. An empty query matches everything.
func Match(candidate, query string) bool {
	if strings.TrimSpace(query) == "" {
		return true
	}
	return strings.Contains(Fold(candidate), Fold(query))
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
