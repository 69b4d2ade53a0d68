package chunk

import (
	"regexp"
	"strings"
)

const (
	// Fragments at or below this length are discarded as markup debris.
	minFragmentLen = 10
	// Extracted documents shorter than this are rejected outright.
	minDocumentLen = 100
)

// fragmentPattern pulls quoted strings and inter-tag literals out of
// component source. It is deliberately permissive: page content on this site
// is authored as JSX-style markup, and prose shows up either between tags or
// inside string literals.
var fragmentPattern = regexp.MustCompile(`(?:>|"|')([^<>"'{}]+)(?:<|"|')`)

// nonProseMarkers flag fragments that are code rather than copy. Any change
// in how pages are authored can silently break this heuristic; it is kept
// intentionally dumb rather than replaced with a real parser.
var nonProseMarkers = []string{"className", "import"}

// ExtractPageText strips markup from a page source file and returns the
// joined prose, or "" when the page does not carry enough text to index.
func ExtractPageText(raw string) string {
	matches := fragmentPattern.FindAllStringSubmatch(raw, -1)
	if matches == nil {
		return ""
	}

	var fragments []string
	for _, m := range matches {
		text := strings.TrimSpace(m[1])
		if len(text) <= minFragmentLen {
			continue
		}
		if containsMarker(text) {
			continue
		}
		fragments = append(fragments, text)
	}

	joined := strings.Join(fragments, " ")
	if len(joined) < minDocumentLen {
		return ""
	}
	return joined
}

func containsMarker(s string) bool {
	for _, marker := range nonProseMarkers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}
