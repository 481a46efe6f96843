package redact

import (
	"math"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultMaskChar replaces hidden characters.
	DefaultMaskChar = '*'
	// DefaultDensity is the fraction of characters hidden by Mask.
	DefaultDensity = 0.5
)

// Mask hides the middle half of value with asterisks.
func Mask(value string) string {
	return MaskString(value, DefaultMaskChar, DefaultDensity)
}

// MaskString replaces the middle floor(n*density) characters of value with
// maskChar, keeping floor((n-hidden)/2) characters visible on each side.
// Lengths count runes. When n-hidden is odd the result is one character
// shorter than value. Density is clamped to [0, 1]; at 1 every character
// is hidden.
func MaskString(value string, maskChar rune, density float64) string {
	if value == "" {
		return ""
	}
	runes := []rune(value)
	n := len(runes)

	hidden := 0
	if density > 0 && !math.IsNaN(density) {
		hidden = int(math.Floor(float64(n) * min(density, 1)))
	}
	side := max((n-hidden)/2, 0)
	side = min(side, n)

	var b strings.Builder
	b.Grow(len(value))
	b.WriteString(string(runes[:side]))
	b.WriteString(strings.Repeat(string(maskChar), hidden))
	b.WriteString(string(runes[n-side:]))
	return b.String()
}

// TruncateSuffix marks a value shortened by Truncate.
const TruncateSuffix = "...(truncated)"

// Truncate cuts s to at most limit bytes, backing off to a character
// boundary, and appends TruncateSuffix. A limit of zero or less leaves s whole.
func Truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + TruncateSuffix
}
