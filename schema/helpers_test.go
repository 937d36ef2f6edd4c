package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubject(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"single line", "Fix bug", "Fix bug"},
		{"multi line", "Fix bug\n\nLonger description here", "Fix bug"},
		{"trailing newline", "Fix bug\n", "Fix bug"},
		{"leading whitespace", "  Fix bug", "Fix bug"},
		{"empty message", "", ""},
		{"only newlines", "\n\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Subject(tt.message))
		})
	}
}

func TestShortHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
		want string
	}{
		{"full sha1", "0123456789abcdef0123456789abcdef01234567", "01234567"},
		{"full sha256", "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef", "01234567"},
		{"already short", "abc123", "abc123"},
		{"exactly eight", "abcdef01", "abcdef01"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShortHash(tt.hash))
		})
	}
}

func TestAbbreviateName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		// Basic cases
		{"popcorn", "popcorn"},            // single-part name
		{"Samuel Huang", "Samuel H"},      // standard two-part name
		{"First Second Third", "First T"}, // three parts, uses last

		// Spaces
		{"  Alice  ", "Alice"},   // leading/trailing spaces
		{"John   Doe", "John D"}, // multiple spaces

		// Bot accounts
		{"dependabot[bot]", "dependabot[bot]"},   // bot account, no abbreviation
		{"dependabot [bot]", "dependabot [bot]"}, // bot account with space, no abbreviation

		// Unicode
		{"张三", "张三"},              // Chinese name, single part
		{"李 明", "李 明"},            // two-part Chinese name
		{"Hans Müller", "Hans M"}, // German name with umlaut
		{"José María", "José M"},  // Spanish name with accent
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AbbreviateName(tt.name)
			assert.Equal(t, tt.want, got, "AbbreviateName(%q) should match expected result", tt.name)
		})
	}
}

func TestAbbreviateAuthors(t *testing.T) {
	// Regular names abbreviate, bot accounts pass through unchanged.
	authors := []string{"Samuel Huang", "popcorn", "dependabot[bot]"}
	want := []string{"Samuel H", "popcorn", "dependabot[bot]"}

	got := AbbreviateAuthors(authors)
	assert.Equal(t, want, got, "AbbreviateAuthors should abbreviate all authors correctly")
}
