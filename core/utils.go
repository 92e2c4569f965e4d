package core

import "strings"

// CleanString normalizes free-form input, such as scanned student IDs or
// typed email addresses, by trimming surrounding whitespace. Pass lower to
// also fold the result to lower case.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		s = strings.ToLower(s)
	}
	return s
}
