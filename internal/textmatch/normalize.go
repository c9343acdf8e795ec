package textmatch

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes text and drops combining marks, so that
// accented characters compare equal to their base letters.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicalizes text for answer comparison: lowercase, strip
// diacritics, trim surrounding whitespace, and drop every character
// outside [a-z0-9\s]. It is total and idempotent; garbage input yields
// an empty string.
func Normalize(text string) string {
	text = strings.ToLower(text)
	if stripped, _, err := transform.String(stripMarks, text); err == nil {
		text = stripped
	}
	text = strings.TrimSpace(text)

	var builder strings.Builder
	builder.Grow(len(text))
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ' || r == '\t' || r == '\n' {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}
