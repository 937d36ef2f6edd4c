package gitlog

import (
	"strings"
	"testing"

	"github.com/huangsam/repoguard/schema"
	"github.com/stretchr/testify/assert"
)

func TestParseLogSingleEntry(t *testing.T) {
	format := LogFormat{FieldSep: "|", EntryEnd: "----END----"}
	input := "abc123|Alice|Bob|2024-01-01T00:00:00+00:00|Fix bug----END----"

	records, err := format.ParseLog([]byte(input))

	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, schema.CommitRecord{
		Hash:       "abc123",
		Author:     "Alice",
		Committer:  "Bob",
		AuthorDate: "2024-01-01T00:00:00+00:00",
		Message:    "Fix bug",
	}, records[0])
}

func TestParseLogEmptyInput(t *testing.T) {
	format := DefaultFormat()

	records, err := format.ParseLog([]byte(""))

	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseLogTrailingMarker(t *testing.T) {
	format := LogFormat{FieldSep: "|", EntryEnd: "----END----"}
	input := "a|Alice|Bob|2024-01-01T00:00:00+00:00|One----END----" +
		"b|Cara|Dan|2024-01-02T00:00:00+00:00|Two----END----"

	records, err := format.ParseLog([]byte(input))

	assert.NoError(t, err)
	assert.Len(t, records, 2, "trailing end marker should not produce an extra record")
}

func TestParseLogPreservesOrder(t *testing.T) {
	format := LogFormat{FieldSep: "|", EntryEnd: "##"}
	var b strings.Builder
	hashes := []string{"c3", "c2", "c1"} // newest first, as git emits
	for _, h := range hashes {
		b.WriteString(h + "|A|B|2024-01-01T00:00:00+00:00|msg##")
	}

	records, err := format.ParseLog([]byte(b.String()))

	assert.NoError(t, err)
	assert.Len(t, records, len(hashes))
	for i, h := range hashes {
		assert.Equal(t, h, records[i].Hash, "record %d should keep input order", i)
	}
}

func TestParseLogFieldTrimming(t *testing.T) {
	format := LogFormat{FieldSep: "|", EntryEnd: "##"}
	input := "  abc123 | Alice | Bob | 2024-01-01T00:00:00+00:00 |  Fix bug  ##"

	records, err := format.ParseLog([]byte(input))

	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, "abc123", records[0].Hash)
	assert.Equal(t, "Alice", records[0].Author)
	assert.Equal(t, "Bob", records[0].Committer)
	assert.Equal(t, "2024-01-01T00:00:00+00:00", records[0].AuthorDate)
	assert.Equal(t, "Fix bug", records[0].Message)
}

func TestParseLogMultilineMessage(t *testing.T) {
	format := LogFormat{FieldSep: "|", EntryEnd: "----END----"}
	message := "Fix bug\n\nLong explanation\nwith several lines"
	input := "abc123|Alice|Bob|2024-01-01T00:00:00+00:00|" + message + "\n----END----"

	records, err := format.ParseLog([]byte(input))

	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, message, records[0].Message,
		"interior line breaks should survive, surrounding whitespace should not")
}

func TestParseLogSeparatorInsideMessage(t *testing.T) {
	format := LogFormat{FieldSep: "|", EntryEnd: "##"}
	input := "abc123|Alice|Bob|2024-01-01T00:00:00+00:00|feat: a|b|c support##"

	records, err := format.ParseLog([]byte(input))

	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, "feat: a|b|c support", records[0].Message,
		"separator occurrences past the fourth should be rejoined into the message")
}

func TestParseLogShortEntry(t *testing.T) {
	format := LogFormat{FieldSep: "|", EntryEnd: "##"}
	input := "ok|Alice|Bob|2024-01-01T00:00:00+00:00|fine##bad|Alice|oops##"

	records, err := format.ParseLog([]byte(input))

	assert.Error(t, err)
	assert.Nil(t, records)
	assert.Contains(t, err.Error(), "entry 2", "error should name the offending entry")
}

func TestParseLogDefaultFormatStream(t *testing.T) {
	// Simulates what git emits for the DefaultFormat pretty argument,
	// including the newline tformat appends after every entry.
	format := DefaultFormat()
	input := "abc123\x1fAlice\x1fBob\x1f2024-01-01T00:00:00+00:00\x1fFix bug\n\x1e\x1e\n" +
		"def456\x1fCara\x1fDan\x1f2024-01-02T00:00:00+00:00\x1fAdd feature\n\x1e\x1e\n"

	records, err := format.ParseLog([]byte(input))

	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "abc123", records[0].Hash)
	assert.Equal(t, "Fix bug", records[0].Message)
	assert.Equal(t, "def456", records[1].Hash)
	assert.Equal(t, "Add feature", records[1].Message)
}

func TestFormatArg(t *testing.T) {
	tests := []struct {
		name   string
		format LogFormat
		want   string
	}{
		{
			"default control characters",
			DefaultFormat(),
			"tformat:%H%x1f%an%x1f%cn%x1f%aI%x1f%B%x1e%x1e",
		},
		{
			"printable delimiters",
			LogFormat{FieldSep: "|", EntryEnd: "----END----"},
			"tformat:%H|%an|%cn|%aI|%B----END----",
		},
		{
			"percent is doubled",
			LogFormat{FieldSep: "%", EntryEnd: "%%"},
			"tformat:%H%%%an%%%cn%%%aI%%%B%%%%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.format.FormatArg())
		})
	}
}

func TestLogFormatValidate(t *testing.T) {
	tests := []struct {
		name    string
		format  LogFormat
		wantErr bool
	}{
		{"default is valid", DefaultFormat(), false},
		{"printable pair is valid", LogFormat{FieldSep: "|", EntryEnd: "----END----"}, false},
		{"empty field separator", LogFormat{FieldSep: "", EntryEnd: "##"}, true},
		{"multi-character field separator", LogFormat{FieldSep: "||", EntryEnd: "##"}, true},
		{"single-character end marker", LogFormat{FieldSep: "|", EntryEnd: "#"}, true},
		{"end marker contains separator", LogFormat{FieldSep: "-", EntryEnd: "--END--"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.format.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseLogInvalidFormat(t *testing.T) {
	format := LogFormat{FieldSep: "||", EntryEnd: "##"}

	records, err := format.ParseLog([]byte("anything"))

	assert.Error(t, err)
	assert.Nil(t, records)
}
