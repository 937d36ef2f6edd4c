package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/repoguard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetColorLabel(t *testing.T) {
	tests := []struct {
		name   string
		status schema.CheckStatus
		label  string
	}{
		{"pass", schema.StatusPass, "PASS"},
		{"fail", schema.StatusFail, "FAIL"},
		{"skip", schema.StatusSkip, "SKIP"},
		{"unknown", schema.CheckStatus("bogus"), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetColorLabel(tt.status)
			// Should contain the plain label
			assert.Contains(t, result, tt.label)
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "test_output.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		// Verify file was created
		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestMatchesAny(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		patterns  []string
		wantMatch bool
	}{
		{
			name:      "empty patterns",
			path:      "src/main.go",
			patterns:  []string{},
			wantMatch: false,
		},
		{
			name:      "prefix match",
			path:      "secrets/prod/key.txt",
			patterns:  []string{"secrets/"},
			wantMatch: true,
		},
		{
			name:      "suffix match on extension pattern",
			path:      "config/prod.env",
			patterns:  []string{".env"},
			wantMatch: true,
		},
		{
			name:      "dotfile base match",
			path:      "deploy/.env",
			patterns:  []string{".env"},
			wantMatch: true,
		},
		{
			name:      "glob match basename",
			path:      "certs/server.pem",
			patterns:  []string{"*.pem"},
			wantMatch: true,
		},
		{
			name:      "exact base match in subdirectory",
			path:      "keys/id_rsa",
			patterns:  []string{"id_rsa"},
			wantMatch: true,
		},
		{
			name:      "plain pattern does not match as substring",
			path:      "docs/id_rsa_setup.md",
			patterns:  []string{"id_rsa"},
			wantMatch: false,
		},
		{
			name:      "no match",
			path:      "src/core/engine.go",
			patterns:  []string{"secrets/", "*.pem", ".env"},
			wantMatch: false,
		},
		{
			name:      "multiple patterns with match",
			path:      "node_modules/react/index.js",
			patterns:  []string{"vendor/", "node_modules/", "third_party/"},
			wantMatch: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchesAny(tt.path, tt.patterns)
			assert.Equal(t, tt.wantMatch, got)
		})
	}
}

func TestGetCacheDBFilePath(t *testing.T) {
	path := GetCacheDBFilePath()

	// Should not be empty
	assert.NotEmpty(t, path)

	// Should contain the database name
	assert.Contains(t, path, ".repoguard_cache.db")

	// Should be in home directory
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, homeDir), "path %s should start with home dir %s", path, homeDir)
}

func TestGetHistoryDBFilePath(t *testing.T) {
	path := GetHistoryDBFilePath()

	assert.NotEmpty(t, path)
	assert.Contains(t, path, ".repoguard_history.db")

	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, homeDir), "path %s should start with home dir %s", path, homeDir)
}

func TestTruncatePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		maxWidth int
		expected string
	}{
		{"short path untouched", "a/b.go", 20, "a/b.go"},
		{"long path truncated", "internal/contract/configs.go", 15, "...t/configs.go"},
		{"width too small to truncate", "internal/contract/configs.go", 3, "internal/contract/configs.go"},
		{"exact width untouched", "abcdef", 6, "abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncatePath(tt.path, tt.maxWidth))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input       string
		expected    bool
		expectError bool
	}{
		{"yes", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"maybe", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}
