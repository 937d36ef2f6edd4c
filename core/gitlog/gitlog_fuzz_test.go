package gitlog

import (
	"strings"
	"testing"
)

// FuzzParseLog fuzzes ParseLog with arbitrary streams and delimiter pairs.
func FuzzParseLog(f *testing.F) {
	seeds := []struct {
		input    string
		fieldSep string
		entryEnd string
	}{
		{"abc123|Alice|Bob|2024-01-01T00:00:00+00:00|Fix bug----END----", "|", "----END----"},
		{"a\x1fb\x1fc\x1fd\x1fe\x1e\x1e", "\x1f", "\x1e\x1e"},
		{"", "|", "##"},
		{"no delimiters at all", "|", "##"},
		{"x|y##", "|", "##"},
	}
	for _, seed := range seeds {
		f.Add(seed.input, seed.fieldSep, seed.entryEnd)
	}

	f.Fuzz(func(t *testing.T, input string, fieldSep string, entryEnd string) {
		format := LogFormat{FieldSep: fieldSep, EntryEnd: entryEnd}

		records, err := format.ParseLog([]byte(input))
		if err != nil {
			return
		}

		// Every parsed record must have trimmed non-message fields and at
		// most as many records as end markers plus one.
		maxEntries := strings.Count(input, entryEnd) + 1
		if len(records) > maxEntries {
			t.Errorf("got %d records from input with %d possible fragments", len(records), maxEntries)
		}
		for i, r := range records {
			if r.Hash != strings.TrimSpace(r.Hash) {
				t.Errorf("record %d hash %q is not trimmed", i, r.Hash)
			}
			if r.AuthorDate != strings.TrimSpace(r.AuthorDate) {
				t.Errorf("record %d date %q is not trimmed", i, r.AuthorDate)
			}
		}
	})
}
