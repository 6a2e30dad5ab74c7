// Package phone normalizes and validates phone number destinations.
package phone

import (
	"regexp"
	"strings"
	"unicode"
)

// E.164-like shape: optional +, first digit 1-9, 10-15 digits total.
var re = regexp.MustCompile(`^\+?[1-9]\d{9,14}$`)

// Normalize strips all whitespace from a raw destination.
func Normalize(raw string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
}

// Valid reports whether the normalized destination has a dialable shape.
func Valid(dest string) bool {
	return re.MatchString(dest)
}
