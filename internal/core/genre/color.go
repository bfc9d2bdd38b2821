// Copyright (c) 2026 Inkshelf. All rights reserved.

package genre

// ContrastColor returns the text color (black or white) that stays readable
// on top of a "#rrggbb" background. Brightness uses the ITU-R BT.601 luma
// weights with the midpoint as threshold. Malformed input gets black, the
// safe choice on the app's light label palette.
func ContrastColor(hexColor string) string {
	if len(hexColor) != 7 || hexColor[0] != '#' {
		return "#000000"
	}

	r, okR := hexByte(hexColor[1], hexColor[2])
	g, okG := hexByte(hexColor[3], hexColor[4])
	b, okB := hexByte(hexColor[5], hexColor[6])
	if !okR || !okG || !okB {
		return "#000000"
	}

	if (299*r+587*g+114*b)/1000 >= 128 {
		return "#000000"
	}
	return "#ffffff"
}

func hexByte(hi, lo byte) (int, bool) {
	high, okHigh := hexNibble(hi)
	low, okLow := hexNibble(lo)
	return high<<4 | low, okHigh && okLow
}

func hexNibble(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}
