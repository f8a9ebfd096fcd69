package extract

import (
	"strings"
	"unicode"
)

// CleanValue strips leading colons and then surrounding whitespace.
// The boolean is false when nothing is left.
func CleanValue(value string) (string, bool) {
	cleaned := strings.TrimSpace(strings.TrimLeft(value, ":"))
	return cleaned, cleaned != ""
}

// CleanPhone removes every rune that is not an ASCII digit, hyphen,
// parenthesis or whitespace, then strips surrounding whitespace.
// The boolean is false when nothing is left.
func CleanPhone(value string) (string, bool) {
	kept := strings.Map(func(r rune) rune {
		if isPhoneRune(r) {
			return r
		}
		return -1
	}, value)

	cleaned := strings.TrimSpace(kept)
	return cleaned, cleaned != ""
}

func isPhoneRune(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r == '-', r == '(', r == ')':
		return true
	default:
		return unicode.IsSpace(r)
	}
}
