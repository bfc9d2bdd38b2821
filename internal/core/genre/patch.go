// Copyright (c) 2026 Inkshelf. All rights reserved.

package genre

import "github.com/inkshelf/inkshelf/pkg/patch"

// Patch is a partial genre update. Absent keys leave the stored value
// untouched; an explicit null clears the color.
type Patch struct {
	Name  patch.Field[string] `json:"name"`
	Color patch.Field[string] `json:"color"`
}

func (p *Patch) apply(g *Genre) {
	p.Name.Apply(&g.Name)
	p.Color.ApplyPtr(&g.Color)
}
