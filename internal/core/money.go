// Package core defines the expense record model shared by the parser, the
// HTTP API, and the persistence adapters.
package core

import "strconv"

// FormatWon renders a whole-won amount with thousands separators and the
// currency suffix, e.g. 4500 -> "4,500원". Used for display only; all
// arithmetic stays on int64 won.
func FormatWon(won int64) string {
	neg := won < 0
	if neg {
		won = -won
	}
	s := strconv.FormatInt(won, 10)
	if len(s) > 3 {
		var out []byte
		lead := len(s) % 3
		if lead > 0 {
			out = append(out, s[:lead]...)
		}
		for i := lead; i < len(s); i += 3 {
			if len(out) > 0 {
				out = append(out, ',')
			}
			out = append(out, s[i:i+3]...)
		}
		s = string(out)
	}
	if neg {
		return "-" + s + "원"
	}
	return s + "원"
}
