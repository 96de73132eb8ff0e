package content

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	slugDisallowed = regexp.MustCompile(`[^a-z0-9 -]+`)
	slugSpaces     = regexp.MustCompile(` +`)
	slugHyphens    = regexp.MustCompile(`-+`)
)

// DeriveSlug turns a product name into a URL path segment. It never fails; a
// name without any ASCII letter or digit yields "".
func DeriveSlug(name string) string {
	slug := strings.Map(spaceToBlank, strings.ToLower(name))
	slug = slugDisallowed.ReplaceAllString(slug, "")
	slug = slugSpaces.ReplaceAllString(slug, "-")
	slug = slugHyphens.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// spaceToBlank folds every Unicode space, plus the ASCII separators
// U+001C..U+001F, into a plain blank.
func spaceToBlank(r rune) rune {
	if unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f) {
		return ' '
	}
	return r
}
