// Package gitlog decodes delimited `git log` output into commit records.
package gitlog

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/huangsam/repoguard/schema"
)

// Number of positional fields per log entry: hash, author, committer,
// author date, message.
const fieldCount = 5

// LogFormat holds the delimiter pair used to flatten commit entries into a
// single text stream. FieldSep joins the five fields of one entry and must be
// a single character; EntryEnd terminates each entry and must be a longer
// sentinel so it cannot collide with FieldSep inside a message.
type LogFormat struct {
	FieldSep string
	EntryEnd string
}

// DefaultFormat returns the delimiter pair used across repoguard. Both
// delimiters come from the C0 control range (unit separator and a doubled
// record separator), which git strips from hashes, names and dates and which
// never appears in human-written commit messages.
func DefaultFormat() LogFormat {
	return LogFormat{
		FieldSep: "\x1f",
		EntryEnd: "\x1e\x1e",
	}
}

// Validate reports whether the delimiter pair is usable for round-tripping
// log entries.
func (f LogFormat) Validate() error {
	if utf8.RuneCountInString(f.FieldSep) != 1 {
		return fmt.Errorf("field separator must be a single character, got %q", f.FieldSep)
	}
	if len(f.EntryEnd) < 2 {
		return fmt.Errorf("entry end marker must be at least two characters, got %q", f.EntryEnd)
	}
	if strings.Contains(f.EntryEnd, f.FieldSep) {
		return fmt.Errorf("entry end marker %q must not contain the field separator %q", f.EntryEnd, f.FieldSep)
	}
	return nil
}

// FormatArg builds the `--pretty` argument that makes git emit entries in
// this format. Delimiters are rendered as %xNN escapes so git materializes
// the bytes itself and no shell quoting is involved.
func (f LogFormat) FormatArg() string {
	sep := escapePretty(f.FieldSep)
	end := escapePretty(f.EntryEnd)
	placeholders := []string{"%H", "%an", "%cn", "%aI", "%B"}
	return "tformat:" + strings.Join(placeholders, sep) + end
}

// escapePretty encodes a delimiter for use inside a git pretty-format string.
// Printable ASCII passes through, % is doubled, and everything else becomes
// a %xNN byte escape.
func escapePretty(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '%':
			b.WriteString("%%")
		case c < 0x20 || c > 0x7e:
			fmt.Fprintf(&b, "%%x%02x", c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// ParseLog converts raw log output into an ordered slice of commit records,
// newest first as git emits them. The input is split on the entry end marker,
// fragments that are empty after trimming are dropped, and each remaining
// fragment is split on the field separator into exactly five fields. The
// first four fields are whitespace-trimmed; the message keeps its interior
// verbatim, including separator characters rejoined by the bounded split,
// and only loses surrounding whitespace.
//
// Empty input yields an empty slice. A fragment with fewer than five fields
// is a hard error because it means the delimiters collided with field
// content and every later field boundary is suspect.
func (f LogFormat) ParseLog(out []byte) ([]schema.CommitRecord, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	fragments := strings.Split(string(out), f.EntryEnd)
	records := make([]schema.CommitRecord, 0, len(fragments))

	for _, fragment := range fragments {
		if strings.TrimSpace(fragment) == "" {
			continue
		}

		fields := strings.SplitN(fragment, f.FieldSep, fieldCount)
		if len(fields) < fieldCount {
			return nil, fmt.Errorf("log entry %d has %d fields, expected %d",
				len(records)+1, len(fields), fieldCount)
		}

		records = append(records, schema.CommitRecord{
			Hash:       strings.TrimSpace(fields[0]),
			Author:     strings.TrimSpace(fields[1]),
			Committer:  strings.TrimSpace(fields[2]),
			AuthorDate: strings.TrimSpace(fields[3]),
			Message:    strings.TrimSpace(fields[4]),
		})
	}

	return records, nil
}
