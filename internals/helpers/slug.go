package helper

import (
	"regexp"
	"strings"
	"unicode"
)

var reDash = regexp.MustCompile(`-+`)

// GenerateSlug normalizes a string into a slug:
// lower-case, non-alnum runs collapse to a single "-", trimmed at both ends.
// Also used to derive download filenames from report titles.
func GenerateSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
		} else if !lastDash {
			b.WriteRune('-')
			lastDash = true
		}
	}
	out := strings.Trim(b.String(), "-")
	return reDash.ReplaceAllString(out, "-")
}
