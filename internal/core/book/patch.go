// Copyright (c) 2026 Inkshelf. All rights reserved.

package book

import "github.com/inkshelf/inkshelf/pkg/patch"

// Patch is a partial book update. Absent keys leave the stored value
// untouched; an explicit null clears a nullable field. The read history
// and gallery images have their own endpoints and are not patchable here.
type Patch struct {
	Title          patch.Field[string]            `json:"title"`
	Author         patch.Field[string]            `json:"author"`
	ISBN           patch.Field[string]            `json:"isbn"`
	CoverImageURL  patch.Field[string]            `json:"cover_image_url"`
	Covers         patch.Field[map[string]string] `json:"covers"`
	Publisher      patch.Field[string]            `json:"publisher"`
	PublishedDate  patch.Field[string]            `json:"published_date"`
	PhysicalFormat patch.Field[PhysicalFormat]    `json:"physical_format"`
	PageCount      patch.Field[int]               `json:"page_count"`
	Rating         patch.Field[int]               `json:"rating"`
	GenreIDs       patch.Field[[]string]          `json:"genre_ids"`
	SeriesID       patch.Field[string]            `json:"series_id"`
	SeriesPosition patch.Field[int]               `json:"series_position"`
	Notes          patch.Field[string]            `json:"notes"`
}

func (p *Patch) apply(b *Book) {
	p.Title.Apply(&b.Title)
	p.Author.Apply(&b.Author)
	p.ISBN.ApplyPtr(&b.ISBN)
	p.CoverImageURL.ApplyPtr(&b.CoverImageURL)
	p.Covers.Apply(&b.Covers)
	p.Publisher.ApplyPtr(&b.Publisher)
	p.PublishedDate.ApplyPtr(&b.PublishedDate)
	p.PhysicalFormat.ApplyPtr(&b.PhysicalFormat)
	p.PageCount.ApplyPtr(&b.PageCount)
	p.Rating.ApplyPtr(&b.Rating)
	p.GenreIDs.Apply(&b.GenreIDs)
	p.SeriesID.ApplyPtr(&b.SeriesID)
	p.SeriesPosition.ApplyPtr(&b.SeriesPosition)
	p.Notes.ApplyPtr(&b.Notes)
}
