package contract

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/repoguard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeRawInput returns a fully populated input that passes validation,
// so each test case only mutates the field under test.
func makeRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		RepoPathStr:     ".",
		Checks:          "all",
		Limit:           0,
		Workers:         4,
		Output:          "text",
		LicensePattern:  "LICENSE*",
		RequiredIgnores: "node_modules/,.env",
		ForbiddenPaths:  ".env,*.pem,id_rsa",
		SubjectLimit:    DefaultSubjectLimit,
		Scanner:         DefaultScanner,
		ScannerArgs:     "detect,--no-banner",
		CacheBackend:    string(schema.SQLiteBackend),
		CacheMaxAge:     "7 days",
		Emoji:           "no",
		Color:           "yes",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
		verify      func(*testing.T, *Config)
	}{
		{
			name:        "valid defaults",
			mutate:      func(*ConfigRawInput) {},
			expectError: false,
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/mock/repo/root", cfg.RepoPath)
				assert.Equal(t, schema.AllCheckNames, cfg.Checks)
				assert.Equal(t, 7*24*time.Hour, cfg.CacheMaxAge)
				assert.True(t, cfg.StartTime.IsZero(), "default window should cover the full history")
				assert.True(t, cfg.EndTime.IsZero(), "default window should cover the full history")
			},
		},
		{
			name: "explicit check subset keeps canonical order",
			mutate: func(in *ConfigRawInput) {
				in.Checks = "license-file, messages"
			},
			expectError: false,
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []schema.CheckName{schema.CheckMessages, schema.CheckLicenseFile}, cfg.Checks)
			},
		},
		{
			name: "skip removes checks",
			mutate: func(in *ConfigRawInput) {
				in.Skip = "secrets,signoffs"
			},
			expectError: false,
			verify: func(t *testing.T, cfg *Config) {
				assert.Len(t, cfg.Checks, len(schema.AllCheckNames)-2)
				assert.NotContains(t, cfg.Checks, schema.CheckSecrets)
				assert.NotContains(t, cfg.Checks, schema.CheckSignoffs)
			},
		},
		{
			name: "unknown check name",
			mutate: func(in *ConfigRawInput) {
				in.Checks = "messages,bogus-check"
			},
			expectError: true,
		},
		{
			name: "unknown skip name",
			mutate: func(in *ConfigRawInput) {
				in.Skip = "bogus-check"
			},
			expectError: true,
		},
		{
			name: "all checks skipped",
			mutate: func(in *ConfigRawInput) {
				in.Checks = "messages"
				in.Skip = "messages"
			},
			expectError: true,
		},
		{
			name: "invalid limit (negative)",
			mutate: func(in *ConfigRawInput) {
				in.Limit = -1
			},
			expectError: true,
		},
		{
			name: "invalid limit (too large)",
			mutate: func(in *ConfigRawInput) {
				in.Limit = MaxCommitLimit + 1
			},
			expectError: true,
		},
		{
			name: "invalid workers (zero)",
			mutate: func(in *ConfigRawInput) {
				in.Workers = 0
			},
			expectError: true,
		},
		{
			name: "invalid subject limit",
			mutate: func(in *ConfigRawInput) {
				in.SubjectLimit = 0
			},
			expectError: true,
		},
		{
			name: "empty license pattern",
			mutate: func(in *ConfigRawInput) {
				in.LicensePattern = "  "
			},
			expectError: true,
		},
		{
			name: "empty scanner",
			mutate: func(in *ConfigRawInput) {
				in.Scanner = ""
			},
			expectError: true,
		},
		{
			name: "invalid output format",
			mutate: func(in *ConfigRawInput) {
				in.Output = "invalid_format"
			},
			expectError: true,
		},
		{
			name: "invalid emoji flag",
			mutate: func(in *ConfigRawInput) {
				in.Emoji = "maybe"
			},
			expectError: true,
		},
		{
			name: "invalid cache backend",
			mutate: func(in *ConfigRawInput) {
				in.CacheBackend = "invalid_backend"
			},
			expectError: true,
		},
		{
			name: "mysql backend without connection string",
			mutate: func(in *ConfigRawInput) {
				in.CacheBackend = string(schema.MySQLBackend)
			},
			expectError: true,
		},
		{
			name: "mysql backend with connection string",
			mutate: func(in *ConfigRawInput) {
				in.CacheBackend = string(schema.MySQLBackend)
				in.CacheDBConnect = "user:pass@tcp(localhost:3306)/repoguard"
			},
			expectError: false,
		},
		{
			name: "postgresql backend without connection string",
			mutate: func(in *ConfigRawInput) {
				in.CacheBackend = string(schema.PostgreSQLBackend)
			},
			expectError: true,
		},
		{
			name: "none backend",
			mutate: func(in *ConfigRawInput) {
				in.CacheBackend = string(schema.NoneBackend)
			},
			expectError: false,
		},
		{
			name: "history backend same sqlite file as cache",
			mutate: func(in *ConfigRawInput) {
				in.CacheBackend = string(schema.SQLiteBackend)
				in.CacheDBConnect = "/tmp/same.db"
				in.HistoryBackend = string(schema.SQLiteBackend)
				in.HistoryDBConnect = "/tmp/same.db"
			},
			expectError: true,
		},
		{
			name: "invalid cache max age",
			mutate: func(in *ConfigRawInput) {
				in.CacheMaxAge = "0 days"
			},
			expectError: true,
		},
		{
			name: "since after until",
			mutate: func(in *ConfigRawInput) {
				in.Since = "2025-01-02T00:00:00Z"
				in.Until = "2024-01-01T00:00:00Z"
			},
			expectError: true,
		},
		{
			name: "relative since",
			mutate: func(in *ConfigRawInput) {
				in.Since = "2 weeks ago"
			},
			expectError: false,
			verify: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.StartTime.IsZero())
			},
		},
		{
			name: "invalid since format",
			mutate: func(in *ConfigRawInput) {
				in.Since = "someday"
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := new(MockGitClient)

			// Dynamically determine the expected working directory
			workDir, err := filepath.Abs(".")
			require.NoError(t, err)

			input := makeRawInput()
			tt.mutate(input)

			if !tt.expectError {
				ctx := context.Background()
				mockClient.On("GetRepoRoot", ctx, workDir).Return("/mock/repo/root", nil)
			}

			cfg := &Config{}
			ctx := context.Background()
			err = ProcessAndValidate(ctx, cfg, mockClient, input)

			if tt.expectError {
				assert.Error(t, err, "contract.ProcessAndValidate should return an error for %s", tt.name)
			} else {
				assert.NoError(t, err, "contract.ProcessAndValidate should not return an error for %s", tt.name)
				if tt.verify != nil {
					tt.verify(t, cfg)
				}
				mockClient.AssertExpectations(t)
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	original := &Config{
		RepoPath:        "/repo",
		Checks:          []schema.CheckName{schema.CheckMessages, schema.CheckSecrets},
		RequiredIgnores: []string{"node_modules/"},
		ForbiddenPaths:  []string{".env"},
		ScannerArgs:     []string{"detect"},
	}

	clone := original.Clone()

	assert.Equal(t, original, clone)

	// Mutating the clone's slices must not touch the original.
	clone.Checks[0] = schema.CheckGitignore
	clone.RequiredIgnores[0] = "vendor/"
	clone.ForbiddenPaths[0] = "*.pem"
	clone.ScannerArgs[0] = "protect"

	assert.Equal(t, schema.CheckMessages, original.Checks[0])
	assert.Equal(t, "node_modules/", original.RequiredIgnores[0])
	assert.Equal(t, ".env", original.ForbiddenPaths[0])
	assert.Equal(t, "detect", original.ScannerArgs[0])
}

func TestCloneWithTimeWindow(t *testing.T) {
	original := &Config{RepoPath: "/repo"}
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)

	clone := original.CloneWithTimeWindow(start, end)

	assert.Equal(t, start, clone.StartTime)
	assert.Equal(t, end, clone.EndTime)
	assert.True(t, original.StartTime.IsZero(), "original window should be unchanged")
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name        string
		backend     schema.DatabaseBackend
		connStr     string
		expectError bool
	}{
		{"sqlite never requires connect", schema.SQLiteBackend, "", false},
		{"none never requires connect", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/repoguard", false},
		{"mysql missing tcp", schema.MySQLBackend, "user:pass@localhost/repoguard", true},
		{"mysql missing database", schema.MySQLBackend, "user:pass@tcp(localhost:3306)", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost port=5432 dbname=repoguard", false},
		{"postgres missing host", schema.PostgreSQLBackend, "dbname=repoguard", true},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
