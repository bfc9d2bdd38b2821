// Copyright (c) 2026 Inkshelf. All rights reserved.

/*
Package isbn normalizes and validates International Standard Book Numbers.

It supports both legacy ISBN-10 (whose check character may be the letter
'X') and modern ISBN-13.

Validation is structural: length and charset only, no check-digit
arithmetic. Users copy ISBNs from dust jackets and store listings, and a
catalogue that refuses an entry over a miskeyed check digit loses the whole
record over its least important character.

Normalization is idempotent: normalizing an already-normalized ISBN returns
the same value. This property is relied upon by the validation layer, which
normalizes user input before persisting it.
*/
package isbn

import "strings"

// Normalize strips hyphens and spaces from an ISBN and upper-cases a
// trailing 'x' check character.
//
// It performs no validation; pass the result to [IsValid] for that.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == 'x' || r == 'X':
			b.WriteByte('X')
		case r == '-' || r == ' ':
			// separator, dropped
		default:
			// Unexpected characters are kept so that IsValid rejects the
			// value instead of silently mangling it.
			b.WriteRune(r)
		}
	}

	return b.String()
}

// IsValid reports whether a normalized ISBN is structurally valid.
//
// Accepted forms:
//   - 9 digits: an ISBN-10 body without its check character.
//   - 10 characters: ISBN-10, nine digits plus a digit or 'X' check character.
//   - 13 digits: ISBN-13.
func IsValid(normalized string) bool {
	switch len(normalized) {
	case 9:
		return allDigits(normalized)
	case 10:
		last := normalized[9]
		return allDigits(normalized[:9]) && (last == 'X' || last >= '0' && last <= '9')
	case 13:
		return allDigits(normalized)
	default:
		return false
	}
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
