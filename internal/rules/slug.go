package rules

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const MaxSlugLength = 100

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives the URL key of a display name:
// "Things Fall Apart!" -> "things-fall-apart", "Café Society" -> "cafe-society".
// The result is deterministic, so equal slugs identify the same tag.
func Slugify(name string) string {
	// transformers keep state, build one per call
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(fold, name)
	if err != nil {
		s = name
	}
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlnum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > MaxSlugLength {
		s = strings.TrimRight(s[:MaxSlugLength], "-")
	}
	return s
}
