package options

import (
	"sort"
	"strings"
)

// Option pairs a stored value with its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Label turns an identifier such as "America/New_York" into a display label.
func Label(value string) string {
	return strings.ReplaceAll(value, "_", " ")
}

// Search returns entries containing query (case-insensitive), prefix matches
// first. A blank query or a non-positive limit returns nothing.
func Search(values []string, query string, limit int) []string {
	query = strings.TrimSpace(query)
	if query == "" || limit <= 0 {
		return nil
	}

	q := strings.ToLower(query)
	matches := make([]matched, 0, 16)
	for _, value := range values {
		lower := strings.ToLower(Label(value))
		if !strings.Contains(lower, q) && !strings.Contains(strings.ToLower(value), q) {
			continue
		}
		matches = append(matches, matched{
			name:     value,
			isPrefix: strings.HasPrefix(lower, q) || hasSegmentPrefix(lower, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].name < matches[j].name
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]string, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.name)
	}
	return out
}

// SearchOptions wraps Search results with display labels.
func SearchOptions(values []string, query string, limit int) []Option {
	results := Search(values, query, limit)
	if len(results) == 0 {
		return nil
	}
	out := make([]Option, 0, len(results))
	for _, value := range results {
		out = append(out, Option{Value: value, Label: Label(value)})
	}
	return out
}

// hasSegmentPrefix matches the city part of "region/city" identifiers.
func hasSegmentPrefix(value, q string) bool {
	if idx := strings.LastIndex(value, "/"); idx >= 0 {
		return strings.HasPrefix(value[idx+1:], q)
	}
	return false
}

type matched struct {
	name     string
	isPrefix bool
}
