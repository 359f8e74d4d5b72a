package upstream

import (
	"regexp"
	"strings"
)

// PlaceholderImage is returned when a product carries no usable image
// reference at all.
const PlaceholderImage = "/placeholder.svg?height=600&width=600"

var staleHost = regexp.MustCompile(`https?://[^/]*localhost[^/]*`)

// ResolveImageURL normalizes a possibly-partial image reference into a fully
// qualified URL against the configured API base:
//   - absolute URLs pass through, except stale localhost hosts which get
//     rewritten to the current base
//   - server-relative paths ("/uploads/x.jpg") are prefixed with the base
//   - bare filenames are assumed to live under /api/images/
func ResolveImageURL(base, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return PlaceholderImage
	}
	base = strings.TrimRight(base, "/")

	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		if strings.Contains(raw, "localhost") {
			return staleHost.ReplaceAllString(raw, base)
		}
		return raw
	}

	if strings.HasPrefix(raw, "/") {
		return base + raw
	}

	raw = strings.TrimPrefix(raw, "api/images/")
	return base + "/api/images/" + raw
}
