package outwriter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/huangsam/repoguard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCheckInfos() []schema.CheckInfo {
	return []schema.CheckInfo{
		{Name: schema.CheckCommitHashes, Summary: "Commit hashes are well-formed hex and unique"},
		{Name: schema.CheckSecrets, Summary: "Secret scanner reports zero findings"},
	}
}

func TestWriteCheckTable(t *testing.T) {
	var buf bytes.Buffer
	err := writeCheckTable(sampleCheckInfos(), &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "commit-hashes")
	assert.Contains(t, out, "secrets")
	assert.Contains(t, out, "2 checks registered")
}

func TestWriteCSVCheckRows(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"rank", "name", "summary"}, func(w *csv.Writer) error {
		return writeCSVCheckRows(w, sampleCheckInfos())
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "commit-hashes")
	assert.Contains(t, lines[2], "secrets")
}
