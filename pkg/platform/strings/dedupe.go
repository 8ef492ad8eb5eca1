// Package strings provides string manipulation utilities.
package strings

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DedupeBy removes items whose key was already seen, keeping the first
// occurrence. Order is preserved.
//
// Example:
//
//	DedupeBy([]string{"a", "b", "a"}, func(s string) string { return s })
//	// Returns: []string{"a", "b"}
func DedupeBy[T any](items []T, key func(T) string) []T {
	if len(items) == 0 {
		return items
	}

	seen := make(map[string]struct{}, len(items))
	result := make([]T, 0, len(items))

	for _, item := range items {
		k := key(item)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		result = append(result, item)
	}

	return result
}

// CollapseSpaces trims s and replaces every internal whitespace run with a
// single space.
//
// Example:
//
//	CollapseSpaces("  South \t  Africa ")
//	// Returns: "South Africa"
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TitleCase upper-cases the first letter of every word and lower-cases the
// rest, which is the shape most upstream APIs expect for country names.
func TitleCase(s string) string {
	return cases.Title(language.Und).String(CollapseSpaces(s))
}
