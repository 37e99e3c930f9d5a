// Package util contains any functions used across the application that
// don't match any other package
package util

import "strings"

const maxUsernameLen = 50

// SanitizeUsername reduces a raw path segment to a safe lookup key:
// only [A-Za-z0-9_.-] survives, capped at 50 characters. The raw input
// is never used as a storage key or echoed into HTML.
func SanitizeUsername(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '-', r == '_', r == '.':
			b.WriteRune(r)
		}

		if b.Len() == maxUsernameLen {
			break
		}
	}

	return b.String()
}

// SanitizeEmailKey makes an email address safe for use inside a store
// key by replacing everything outside [A-Za-z0-9@._-] with an
// underscore.
func SanitizeEmailKey(email string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '@', r == '.', r == '_', r == '-':
			return r
		}
		return '_'
	}, email)
}
