package discovery

import (
	"path/filepath"
	"strings"
)

// Filter filters stream files by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters stream files by name pattern using wildcard
// matching. Supports patterns like "*checkout*" or "*cart.events.jsonl".
func (f *Filter) FilterByName(streams []string, pattern string) []string {
	if pattern == "" {
		return streams
	}

	var filtered []string

	for _, stream := range streams {
		name := filepath.Base(stream)

		// filepath.Match covers * and ? wildcards against the base name
		matched, err := filepath.Match(pattern, name)
		if err == nil && matched {
			filtered = append(filtered, stream)
			continue
		}

		// Flexible fallback for patterns like "*checkout*": every
		// non-empty part between wildcards must appear in the name.
		if strings.Contains(pattern, "*") {
			parts := strings.Split(pattern, "*")
			allPartsMatch := true
			hasNonEmptyPart := false
			for _, part := range parts {
				if part == "" {
					continue
				}
				hasNonEmptyPart = true
				if !strings.Contains(name, part) {
					allPartsMatch = false
					break
				}
			}
			if allPartsMatch && hasNonEmptyPart {
				filtered = append(filtered, stream)
			}
			continue
		}

		// No wildcards: simple contains check
		if !strings.Contains(pattern, "?") && strings.Contains(name, pattern) {
			filtered = append(filtered, stream)
		}
	}

	return filtered
}
