package models

import "strings"

// SourceSeparator joins origin channels inside Order.Source.
const SourceSeparator = " + "

// KnownSources are the selectable origin channels of the order form.
var KnownSources = []string{"واتساب", "انستقرام", "تيك توك", "معرض", "زيارة المحل"}

// JoinSources builds the single Source string from selected channels and
// an optional free-text remainder. Empty parts are dropped.
func JoinSources(selected []string, other string) string {
	parts := make([]string, 0, len(selected)+1)
	for _, s := range selected {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	if other = strings.TrimSpace(other); other != "" {
		parts = append(parts, other)
	}
	return strings.Join(parts, SourceSeparator)
}

// SplitSources parses Source back into the known channels it contains and
// the remaining free text, the inverse of JoinSources.
func SplitSources(source string) (selected []string, other string) {
	var rest []string
	for _, part := range strings.Split(source, SourceSeparator) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if isKnownSource(part) {
			selected = append(selected, part)
		} else {
			rest = append(rest, part)
		}
	}
	return selected, strings.Join(rest, SourceSeparator)
}

func isKnownSource(s string) bool {
	for _, k := range KnownSources {
		if k == s {
			return true
		}
	}
	return false
}
