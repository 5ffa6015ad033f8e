package harness

import (
	"path"
	"strings"
)

// FilterByName filters cases by a name pattern with wildcard matching.
// Supports patterns like "create*" or "*artist*"; a pattern without
// wildcards is a simple substring match.
func FilterByName(cases []Case, pattern string) []Case {
	if pattern == "" {
		return cases
	}

	var filtered []Case
	for _, c := range cases {
		if matchesName(c.Name, pattern) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

func matchesName(name, pattern string) bool {
	if matched, err := path.Match(pattern, name); err == nil && matched {
		return true
	}

	if strings.Contains(pattern, "*") {
		// Flexible fallback: every non-empty segment between wildcards
		// must appear somewhere in the name
		parts := strings.Split(pattern, "*")
		hasNonEmpty := false
		for _, part := range parts {
			if part == "" {
				continue
			}
			hasNonEmpty = true
			if !strings.Contains(name, part) {
				return false
			}
		}
		return hasNonEmpty
	}

	if !strings.Contains(pattern, "?") {
		return strings.Contains(name, pattern)
	}
	return false
}
