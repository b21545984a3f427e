package engine

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultPrefix is assigned to issues whose category has no mapping.
const DefaultPrefix = "ISS"

// categoryPrefixes maps issue categories to their renumbering prefix.
var categoryPrefixes = map[string]string{
	"requirements": "REQ",
	"testing":      "TST",
	"architecture": "ARCH",
}

// PrefixForCategory resolves the id prefix for a category, falling back to
// DefaultPrefix for blank or unmapped categories.
func PrefixForCategory(category string) string {
	if p, ok := categoryPrefixes[strings.ToLower(strings.TrimSpace(category))]; ok {
		return p
	}
	return DefaultPrefix
}

// SortIssues orders issues deterministically: category ascending (blank
// categories last), severity HIGH first, page ascending, description
// ascending. The same ordering is used before and after verification so
// output is reproducible across runs.
func SortIssues(issues []Issue) {
	sort.SliceStable(issues, func(a, b int) bool {
		ca, cb := sortCategory(issues[a].Category), sortCategory(issues[b].Category)
		if ca != cb {
			return ca < cb
		}
		if issues[a].Severity != issues[b].Severity {
			return issues[a].Severity < issues[b].Severity
		}
		if issues[a].PageReference != issues[b].PageReference {
			return issues[a].PageReference < issues[b].PageReference
		}
		return issues[a].Description < issues[b].Description
	})
}

func sortCategory(c string) string {
	if c == "" {
		return "ZZZ"
	}
	return c
}

// Renumber sorts the issues deterministically and assigns fresh sequential
// ids per category prefix (REQ-001, REQ-002, ...), restarting at 1 for each
// prefix. Issues are never mutated after renumbering.
func Renumber(issues []Issue) []Issue {
	sorted := make([]Issue, len(issues))
	copy(sorted, issues)
	SortIssues(sorted)

	counters := make(map[string]int)
	renumbered := make([]Issue, 0, len(sorted))
	for _, issue := range sorted {
		prefix := PrefixForCategory(issue.Category)
		counters[prefix]++
		renumbered = append(renumbered, issue.WithID(fmt.Sprintf("%s-%03d", prefix, counters[prefix])))
	}

	return renumbered
}
