// Copyright (c) 2026 Inkshelf. All rights reserved.

package wishlist

import "github.com/inkshelf/inkshelf/pkg/patch"

// Patch is a partial wishlist-item update. Absent keys leave the stored
// value untouched; an explicit null clears a nullable field.
type Patch struct {
	Title         patch.Field[string]            `json:"title"`
	Author        patch.Field[string]            `json:"author"`
	ISBN          patch.Field[string]            `json:"isbn"`
	CoverImageURL patch.Field[string]            `json:"cover_image_url"`
	Covers        patch.Field[map[string]string] `json:"covers"`
	Publisher     patch.Field[string]            `json:"publisher"`
	PublishedDate patch.Field[string]            `json:"published_date"`
	PageCount     patch.Field[int]               `json:"page_count"`
	Priority      patch.Field[Priority]          `json:"priority"`
	Notes         patch.Field[string]            `json:"notes"`
}

func (p *Patch) apply(item *Item) {
	p.Title.Apply(&item.Title)
	p.Author.Apply(&item.Author)
	p.ISBN.ApplyPtr(&item.ISBN)
	p.CoverImageURL.ApplyPtr(&item.CoverImageURL)
	p.Covers.Apply(&item.Covers)
	p.Publisher.ApplyPtr(&item.Publisher)
	p.PublishedDate.ApplyPtr(&item.PublishedDate)
	p.PageCount.ApplyPtr(&item.PageCount)
	p.Priority.ApplyPtr(&item.Priority)
	p.Notes.ApplyPtr(&item.Notes)
}
