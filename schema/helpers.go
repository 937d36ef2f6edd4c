package schema

import "strings"

// Subject returns the first line of a commit message.
func Subject(message string) string {
	if i := strings.IndexByte(message, '\n'); i >= 0 {
		return strings.TrimSpace(message[:i])
	}
	return strings.TrimSpace(message)
}

// ShortHash returns the abbreviated form of a commit hash.
func ShortHash(hash string) string {
	const short = 8
	if len(hash) > short {
		return hash[:short]
	}
	return hash
}

// AbbreviateName formats "Samuel Huang" to "Samuel H" for compact table
// columns. Single-word names and bot accounts (e.g. dependabot[bot]) pass
// through unchanged.
func AbbreviateName(name string) string {
	trimmed := strings.TrimSpace(name)
	if strings.Contains(trimmed, "[bot]") {
		return trimmed
	}

	parts := strings.Fields(trimmed)
	if len(parts) < 2 {
		return trimmed
	}

	first := parts[0]
	last := []rune(parts[len(parts)-1])
	if len(last) == 0 {
		return first
	}
	return first + " " + string(last[0])
}

// AbbreviateAuthors applies abbreviation to all authors in the slice.
func AbbreviateAuthors(authors []string) []string {
	abbreviated := make([]string, len(authors))
	for i, a := range authors {
		abbreviated[i] = AbbreviateName(a)
	}
	return abbreviated
}
