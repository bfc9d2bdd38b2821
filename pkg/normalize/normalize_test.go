// Copyright (c) 2026 Inkshelf. All rights reserved.

package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkshelf/inkshelf/pkg/normalize"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Ursula K. Le Guin", "ursula k. le guin"},
		{"strips_accents", "Émile Zola", "emile zola"},
		{"collapses_whitespace", "  Terry\t Pratchett \n", "terry pratchett"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.Fold(tt.in))
		})
	}
}

func TestMatch(t *testing.T) {
	assert.True(t, normalize.Match("Émile  Zola", "emile zola"))
	assert.True(t, normalize.Match("Science Fiction", "fict"))
	assert.True(t, normalize.Match("anything", "   "))
	assert.False(t, normalize.Match("Fantasy", "science"))
}
