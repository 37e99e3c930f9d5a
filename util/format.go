package util

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatCount renders n with thousands separators, e.g. 1500 -> 1,500.
func FormatCount(n int64) string {
	s := strconv.FormatInt(n, 10)

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var b strings.Builder
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FormatEngagement renders a 0-1 ratio as a percentage with two
// decimals, e.g. 0.085 -> 8.50%.
func FormatEngagement(ratio float64) string {
	return fmt.Sprintf("%.2f%%", ratio*100)
}

// FormatChunkName uppercases a chunk identifier and strips the .mp4
// extension for display.
func FormatChunkName(key string) string {
	return strings.ToUpper(strings.TrimSuffix(key, ".mp4"))
}
