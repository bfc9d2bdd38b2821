// Copyright (c) 2026 Inkshelf. All rights reserved.

package genre

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContrastColor(t *testing.T) {
	tests := []struct {
		name       string
		background string
		want       string
	}{
		{"white_takes_black_text", "#ffffff", "#000000"},
		{"black_takes_white_text", "#000000", "#ffffff"},
		{"amber_is_bright_enough_for_black", "#ffcc00", "#000000"},
		{"navy_needs_white", "#1a2b3c", "#ffffff"},
		{"green_dominates_brightness", "#00ff00", "#000000"},
		{"uppercase_digits", "#E0E0E0", "#000000"},
		{"malformed_falls_back_to_black", "red", "#000000"},
		{"missing_hash_falls_back", "1a2b3c4", "#000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContrastColor(tt.background))
		})
	}
}
