package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/repoguard/internal/contract"
	"github.com/huangsam/repoguard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAuditResult() *schema.AuditResult {
	return &schema.AuditResult{
		RepoPath:     "/src/webapp",
		Passed:       false,
		TotalCommits: 42,
		Duration:     1500 * time.Millisecond,
		Outcomes: []schema.CheckOutcome{
			{
				Name:     schema.CheckCommitHashes,
				Status:   schema.StatusPass,
				Duration: 10 * time.Millisecond,
			},
			{
				Name:   schema.CheckMessages,
				Status: schema.StatusFail,
				Violations: []schema.Violation{
					{Commit: "a1b2c3d4e5f6a7b8c9d0", Detail: "subject is 90 chars, limit is 72"},
				},
				Duration: 5 * time.Millisecond,
			},
			{
				Name:     schema.CheckSecrets,
				Status:   schema.StatusSkip,
				Note:     `scanner "gitleaks" not found on PATH`,
				Duration: time.Millisecond,
			},
		},
	}
}

func TestWriteJSONAuditResult(t *testing.T) {
	var buf bytes.Buffer
	err := writeJSONAuditResult(&buf, sampleAuditResult())
	require.NoError(t, err)

	var result map[string]any
	err = json.Unmarshal(buf.Bytes(), &result)
	require.NoError(t, err)

	assert.Equal(t, "/src/webapp", result["repo_path"])
	assert.Equal(t, false, result["passed"])
	assert.Equal(t, float64(42), result["total_commits"])

	outcomes, ok := result["outcomes"].([]any)
	require.True(t, ok)
	require.Len(t, outcomes, 3)

	first, ok := outcomes[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), first["rank"])
	assert.Equal(t, "PASS", first["label"])
	assert.Equal(t, "commit-hashes", first["name"])
}

func TestWriteCSVAuditRows(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"rank", "check", "status", "violations", "note", "duration_ms"}, func(w *csv.Writer) error {
		return writeCSVAuditRows(w, sampleAuditResult())
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4) // header + 3 rows

	assert.Contains(t, lines[0], "rank")
	assert.Contains(t, lines[1], "commit-hashes")
	assert.Contains(t, lines[1], "pass")
	assert.Contains(t, lines[2], "messages")
	assert.Contains(t, lines[2], "fail")
	assert.Contains(t, lines[3], "secrets")
	assert.Contains(t, lines[3], "not found on PATH")
}

func TestWriteAuditTable(t *testing.T) {
	cfg := &contract.Config{Workers: 4, Width: 120, CacheBackend: schema.SQLiteBackend}

	var buf bytes.Buffer
	err := writeAuditTable(sampleAuditResult(), cfg, 2*time.Second, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "commit-hashes")
	assert.Contains(t, out, "messages")
	assert.Contains(t, out, "secrets")

	// Failed checks get a violation breakdown below the table
	assert.Contains(t, out, "messages: 1 violation(s)")
	assert.Contains(t, out, "subject is 90 chars")

	// Summary lines
	assert.Contains(t, out, "Audit of /src/webapp: 1/3 checks passed across 42 commits")
	assert.Contains(t, out, "Cache backend: sqlite")
}

func TestWriteAuditTableAllPassed(t *testing.T) {
	result := &schema.AuditResult{
		RepoPath:     "/src/webapp",
		Passed:       true,
		TotalCommits: 5,
		Outcomes: []schema.CheckOutcome{
			{Name: schema.CheckCommitHashes, Status: schema.StatusPass},
			{Name: schema.CheckAuthorDates, Status: schema.StatusPass},
		},
	}
	cfg := &contract.Config{Workers: 1, Width: 120, CacheBackend: schema.NoneBackend}

	var buf bytes.Buffer
	err := writeAuditTable(result, cfg, time.Second, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "2/2 checks passed")
	assert.NotContains(t, out, "violation(s)")
}

func TestPrintAuditResultRejectsParquet(t *testing.T) {
	cfg := &contract.Config{Output: schema.ParquetOut}
	err := PrintAuditResult(sampleAuditResult(), cfg, time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "history export")
}

func TestFormatViolation(t *testing.T) {
	tests := []struct {
		name      string
		violation schema.Violation
		want      string
	}{
		{
			name:      "detail only",
			violation: schema.Violation{Detail: "commit message is empty"},
			want:      "commit message is empty",
		},
		{
			name:      "with commit",
			violation: schema.Violation{Commit: "a1b2c3d4e5f6", Detail: "bad date"},
			want:      "[a1b2c3d4] bad date",
		},
		{
			name:      "with path",
			violation: schema.Violation{Path: ".env", Detail: "forbidden path"},
			want:      ".env: forbidden path",
		},
		{
			name:      "with commit and path",
			violation: schema.Violation{Commit: "a1b2c3d4e5f6", Path: ".env", Detail: "forbidden path"},
			want:      "[a1b2c3d4] .env: forbidden path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatViolation(tt.violation))
		})
	}
}
