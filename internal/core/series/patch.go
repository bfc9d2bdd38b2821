// Copyright (c) 2026 Inkshelf. All rights reserved.

package series

import "github.com/inkshelf/inkshelf/pkg/patch"

// Patch is a partial series update. Absent keys leave the stored value
// untouched; supplying "expected" replaces the whole planned-volume list.
type Patch struct {
	Name        patch.Field[string]     `json:"name"`
	Description patch.Field[string]     `json:"description"`
	TotalBooks  patch.Field[int]        `json:"total_books"`
	Expected    patch.Field[[]Expected] `json:"expected"`
}

func (p *Patch) apply(s *Series) {
	p.Name.Apply(&s.Name)
	p.Description.ApplyPtr(&s.Description)
	p.TotalBooks.ApplyPtr(&s.TotalBooks)
	p.Expected.Apply(&s.Expected)
}
