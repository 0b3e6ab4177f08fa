package helpers

import "strings"

// TruncateWithMarker shortens s to at most max bytes, appending marker when
// content was dropped. max <= 0 disables truncation.
func TruncateWithMarker(s string, max int, marker string) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + marker
}

// ContainsAnyFold reports whether s contains at least one of the given
// keywords, case-insensitively. An empty keyword list matches nothing.
func ContainsAnyFold(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
