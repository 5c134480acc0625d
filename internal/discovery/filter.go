package discovery

import (
	"path"
	"strings"

	"github.com/fhunleth/zigler/internal/domain"
)

// Filter filters discovered tests by title pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// ByTitle filters descriptors by title pattern using wildcard matching.
// Supports patterns like "registry*" or "*overflow*"; a pattern without
// wildcards matches as a substring.
func (f *Filter) ByTitle(descs []domain.TestDescriptor, pattern string) []domain.TestDescriptor {
	if pattern == "" {
		return descs
	}

	var filtered []domain.TestDescriptor
	for _, desc := range descs {
		if f.matches(desc.Title, pattern) {
			filtered = append(filtered, desc)
		}
	}
	return filtered
}

// ResolvedByTitle is ByTitle over already-resolved tests.
func (f *Filter) ResolvedByTitle(tests []domain.ResolvedTest, pattern string) []domain.ResolvedTest {
	if pattern == "" {
		return tests
	}

	var filtered []domain.ResolvedTest
	for _, rt := range tests {
		if f.matches(rt.Title, pattern) {
			filtered = append(filtered, rt)
		}
	}
	return filtered
}

func (f *Filter) matches(title, pattern string) bool {
	if matched, err := path.Match(pattern, title); err == nil && matched {
		return true
	}

	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(title, pattern)
	}

	// Flexible fallback for patterns like "*overflow*": every literal part
	// must occur in the title.
	parts := strings.Split(pattern, "*")
	hasLiteral := false
	for _, part := range parts {
		if part == "" {
			continue
		}
		hasLiteral = true
		if !strings.Contains(title, part) {
			return false
		}
	}
	return hasLiteral
}
