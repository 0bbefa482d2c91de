package posts

import (
	"regexp"
	"strings"
)

var (
	reSlugStrip  = regexp.MustCompile(`[^a-z0-9\s-]`)
	reWhitespace = regexp.MustCompile(`\s+`)
	reHyphens    = regexp.MustCompile(`-+`)
)

// Sanitize converts arbitrary text into a filesystem- and URL-safe slug.
// It never fails; an empty result must be rejected by the caller.
func Sanitize(s string) string {
	s = strings.ToLower(s)
	s = reSlugStrip.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = reWhitespace.ReplaceAllString(s, "-")
	s = reHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
