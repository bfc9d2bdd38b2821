// Copyright (c) 2026 Inkshelf. All rights reserved.

package isbn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkshelf/inkshelf/pkg/isbn"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"hyphenated_isbn13", "978-0-12-345678-9", "9780123456789"},
		{"hyphenated_isbn10", "0-306-40615-2", "0306406152"},
		{"lowercase_check_char", "0-9752298-0-x", "097522980X"},
		{"spaces", "978 0306406157", "9780306406157"},
		{"already_normalized", "9780306406157", "9780306406157"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isbn.Normalize(tt.in))
		})
	}
}

// Normalization must be idempotent: the validation layer applies it to values
// that may already have been normalized on a previous save.
func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"978-0-12-345678-9", "0-9752298-0-X", "9780306406157", "junk-value"}

	for _, in := range inputs {
		once := isbn.Normalize(in)
		assert.Equal(t, once, isbn.Normalize(once))
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		valid bool
	}{
		{"valid_isbn13", "9780306406157", true},
		{"isbn13_with_miskeyed_check_digit", "9780123456789", true},
		{"valid_isbn10", "0306406152", true},
		{"valid_isbn10_x_check", "097522980X", true},
		{"isbn10_with_miskeyed_check_digit", "0306406153", true},
		{"isbn10_body_without_check", "030640615", true},
		{"x_not_in_last_position", "09752298X0", false},
		{"wrong_length", "12345", false},
		{"letters", "97803064061a", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, isbn.IsValid(tt.in))
		})
	}
}
