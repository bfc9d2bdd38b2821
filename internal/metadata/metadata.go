// Copyright (c) 2026 Inkshelf. All rights reserved.

/*
Package metadata looks up book details from OpenLibrary.

Lookups feed the add-book form: an ISBN scan or a free-text search returns
title, author, covers and publication details the user can accept instead
of typing. Results are cached in Redis and calls to OpenLibrary are
rate-limited as their API policy asks.
*/
package metadata

// BookMetadata is one external catalogue record, shaped to prefill the
// book form.
type BookMetadata struct {
	Title         string            `json:"title"`
	Author        string            `json:"author,omitempty"`
	ISBN          string            `json:"isbn,omitempty"`
	Covers        map[string]string `json:"covers,omitempty"`
	Publisher     string            `json:"publisher,omitempty"`
	PublishedDate string            `json:"published_date,omitempty"`
	PageCount     int               `json:"page_count,omitempty"`
	Subjects      []string          `json:"subjects,omitempty"`
	SourceKey     string            `json:"source_key,omitempty"`
}

// maxSubjects caps how many subject strings a record carries back to the
// form (OpenLibrary can return hundreds).
const maxSubjects = 10
