package outwriter

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/repoguard/internal/contract"
	"github.com/huangsam/repoguard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSONHelper(t *testing.T) {
	var buf bytes.Buffer
	err := writeJSON(&buf, map[string]int{"count": 3})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"count": 3`)
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"a", "b"}, func(w *csv.Writer) error {
		return w.Write([]string{"1", "2"})
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "a,b", lines[0])
	assert.Equal(t, "1,2", lines[1])
}

func TestWriteWithFile(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "out.txt")
	err := writeWithFile(outputFile, func(w io.Writer) error {
		_, err := w.Write([]byte("hello"))
		return err
	}, "Wrote test")
	require.NoError(t, err)

	content, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
}

func TestStatusLabelPlain(t *testing.T) {
	cfg := &contract.Config{UseColors: false}
	assert.Equal(t, "PASS", statusLabel(cfg, schema.StatusPass))
	assert.Equal(t, "FAIL", statusLabel(cfg, schema.StatusFail))
	assert.Equal(t, "SKIP", statusLabel(cfg, schema.StatusSkip))
}

func TestStatusLabelColored(t *testing.T) {
	cfg := &contract.Config{UseColors: true}
	// Color codes depend on TTY detection, but the label text is always there
	assert.Contains(t, statusLabel(cfg, schema.StatusPass), "PASS")
	assert.Contains(t, statusLabel(cfg, schema.StatusFail), "FAIL")
}
