package contract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/huangsam/repoguard/schema"
)

// Default values for configuration.
const (
	DefaultSubjectLimit = 72
	MaxCommitLimit      = 100000
	DefaultScanner      = "gitleaks"
)

// CacheGranularity defines the time granularity for caching commit logs.
// This ensures consistent cache key generation and time window alignment
// across the application and tests.
const CacheGranularity = time.Hour

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for an audit.
// This struct remains the "final, validated" config.
type Config struct {
	RepoPath    string
	StartTime   time.Time
	EndTime     time.Time
	CommitLimit int
	Workers     int

	// Checks is the selected rule set, in canonical report order.
	Checks []schema.CheckName

	RequireSignoff  bool
	LicensePattern  string
	RequiredIgnores []string
	ForbiddenPaths  []string
	SubjectLimit    int

	Scanner     string
	ScannerArgs []string

	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext
	CacheMaxAge    time.Duration

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Checks           string `mapstructure:"checks"`
	Skip             string `mapstructure:"skip"`
	Limit            int    `mapstructure:"limit"`
	Since            string `mapstructure:"since"`
	Until            string `mapstructure:"until"`
	Workers          int    `mapstructure:"workers"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Width            int    `mapstructure:"width"`
	CacheBackend     string `mapstructure:"cache-backend"`
	CacheDBConnect   string `mapstructure:"cache-db-connect"`
	CacheMaxAge      string `mapstructure:"cache-max-age"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	Emoji            string `mapstructure:"emoji"`
	Color            string `mapstructure:"color"`

	// --- Fields from auditCmd.Flags() ---
	RequireSignoff  bool   `mapstructure:"require-signoff"`
	LicensePattern  string `mapstructure:"license-pattern"`
	RequiredIgnores string `mapstructure:"required-ignores"`
	ForbiddenPaths  string `mapstructure:"forbidden-paths"`
	SubjectLimit    int    `mapstructure:"subject-limit"`

	// --- Scanner fields, also from rootCmd.PersistentFlags() ---
	Scanner     string `mapstructure:"scanner"`
	ScannerArgs string `mapstructure:"scanner-args"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Checks != nil {
		clone.Checks = make([]schema.CheckName, len(c.Checks))
		copy(clone.Checks, c.Checks)
	}
	if c.RequiredIgnores != nil {
		clone.RequiredIgnores = make([]string, len(c.RequiredIgnores))
		copy(clone.RequiredIgnores, c.RequiredIgnores)
	}
	if c.ForbiddenPaths != nil {
		clone.ForbiddenPaths = make([]string, len(c.ForbiddenPaths))
		copy(clone.ForbiddenPaths, c.ForbiddenPaths)
	}
	if c.ScannerArgs != nil {
		clone.ScannerArgs = make([]string, len(c.ScannerArgs))
		copy(clone.ScannerArgs, c.ScannerArgs)
	}
	return &clone
}

// CloneWithTimeWindow creates a copy of the Config and sets the new StartTime and EndTime.
func (c *Config) CloneWithTimeWindow(start time.Time, end time.Time) *Config {
	clone := c.Clone()
	clone.StartTime = start
	clone.EndTime = end
	return clone
}

// GetAuditStartTime returns the configured start time, truncated to the caching granularity.
// This ensures consistent time window alignment across the application and tests.
func (c *Config) GetAuditStartTime() time.Time {
	return c.StartTime.Truncate(CacheGranularity)
}

// GetAuditEndTime returns the configured end time, truncated to the caching granularity.
// This ensures consistent time window alignment across the application and tests.
func (c *Config) GetAuditEndTime() time.Time {
	return c.EndTime.Truncate(CacheGranularity)
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processChecks(cfg, input); err != nil {
		return err
	}
	if err := processTimeRange(cfg, input); err != nil {
		return err
	}
	if err := resolveGitPath(ctx, cfg, client, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	if input.CacheMaxAge != "" {
		maxAge, err := ParseLookbackDuration(input.CacheMaxAge)
		if err != nil {
			return fmt.Errorf("invalid cache-max-age: %w", err)
		}
		cfg.CacheMaxAge = maxAge
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend != "" {
		if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
			return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
		}
		cfg.HistoryDBConnect = input.HistoryDBConnect
		if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
			return err
		}

		// Validate that cache and history use different databases
		if cfg.CacheBackend == cfg.HistoryBackend && cfg.CacheBackend != schema.NoneBackend {
			// For SQLite, resolve to actual file paths to catch default path conflicts
			if cfg.CacheBackend == schema.SQLiteBackend {
				cacheDBPath := cfg.CacheDBConnect
				if cacheDBPath == "" {
					cacheDBPath = GetCacheDBFilePath()
				}
				historyDBPath := cfg.HistoryDBConnect
				if historyDBPath == "" {
					historyDBPath = GetHistoryDBFilePath()
				}
				if cacheDBPath == historyDBPath {
					return fmt.Errorf("cache and history storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
				}
			}
		}
	}

	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.RequireSignoff = input.RequireSignoff

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. CommitLimit Validation ---
	if input.Limit < 0 || input.Limit > MaxCommitLimit {
		return fmt.Errorf("limit must be between 0 (entire history) and %d (received %d)", MaxCommitLimit, input.Limit)
	}
	cfg.CommitLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Rule Knob Validation ---
	if input.SubjectLimit <= 0 {
		return fmt.Errorf("subject-limit must be greater than 0 (received %d)", input.SubjectLimit)
	}
	cfg.SubjectLimit = input.SubjectLimit

	cfg.LicensePattern = strings.TrimSpace(input.LicensePattern)
	if cfg.LicensePattern == "" {
		return fmt.Errorf("license-pattern must not be empty")
	}

	cfg.RequiredIgnores = splitFlagList(input.RequiredIgnores)
	cfg.ForbiddenPaths = splitFlagList(input.ForbiddenPaths)

	// --- 4. Scanner Validation ---
	cfg.Scanner = strings.TrimSpace(input.Scanner)
	if cfg.Scanner == "" {
		return fmt.Errorf("scanner must not be empty")
	}
	cfg.ScannerArgs = splitFlagList(input.ScannerArgs)

	// --- 5. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", cfg.Output)
	}

	// --- 6. Backend Validation ---
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}

	return nil
}

// processChecks resolves the --checks and --skip selections into the final
// rule set, preserving canonical report order.
func processChecks(cfg *Config, input *ConfigRawInput) error {
	selected := make(map[schema.CheckName]bool, len(schema.AllCheckNames))

	checksStr := strings.TrimSpace(input.Checks)
	if checksStr == "" || strings.EqualFold(checksStr, "all") {
		for _, name := range schema.AllCheckNames {
			selected[name] = true
		}
	} else {
		parts := strings.SplitSeq(checksStr, ",")
		for p := range parts {
			trimmedP := strings.TrimSpace(p)
			if trimmedP == "" {
				continue
			}
			name := schema.CheckName(strings.ToLower(trimmedP))
			if _, ok := schema.ValidCheckNames[name]; !ok {
				return fmt.Errorf("unknown check '%s'. run 'repoguard checks' to list valid names", trimmedP)
			}
			selected[name] = true
		}
	}

	if input.Skip != "" {
		parts := strings.SplitSeq(input.Skip, ",")
		for p := range parts {
			trimmedP := strings.TrimSpace(p)
			if trimmedP == "" {
				continue
			}
			name := schema.CheckName(strings.ToLower(trimmedP))
			if _, ok := schema.ValidCheckNames[name]; !ok {
				return fmt.Errorf("unknown check '%s' in --skip. run 'repoguard checks' to list valid names", trimmedP)
			}
			delete(selected, name)
		}
	}

	cfg.Checks = make([]schema.CheckName, 0, len(selected))
	for _, name := range schema.AllCheckNames {
		if selected[name] {
			cfg.Checks = append(cfg.Checks, name)
		}
	}
	if len(cfg.Checks) == 0 {
		return fmt.Errorf("no checks remain after applying --checks and --skip")
	}

	return nil
}

// processTimeRange handles the date parsing and time range validation.
// Both bounds default to zero, which audits the entire history.
func processTimeRange(cfg *Config, input *ConfigRawInput) error {
	now := time.Now()

	parseAbsolute := func(s string) (time.Time, error) {
		return time.Parse(DateTimeFormat, s)
	}

	// --- Process Start Time ---
	if input.Since != "" {
		t, err := parseAbsolute(input.Since)
		if err == nil {
			cfg.StartTime = t
		} else {
			t, relErr := ParseRelativeTime(input.Since, now)
			if relErr != nil {
				return fmt.Errorf("invalid since date format for '%s'. Expected absolute ISO8601 or 'N [units] ago': %v", input.Since, err)
			}
			cfg.StartTime = t
		}
	}

	// --- Process End Time ---
	if input.Until != "" {
		t, err := parseAbsolute(input.Until)
		if err == nil {
			cfg.EndTime = t
		} else {
			t, relErr := ParseRelativeTime(input.Until, now)
			if relErr != nil {
				return fmt.Errorf("invalid until date format for '%s'. Expected absolute ISO8601 or 'N [units] ago': %v", input.Until, err)
			}
			cfg.EndTime = t
		}
	}

	// --- Final Validation ---
	if !cfg.StartTime.IsZero() && !cfg.EndTime.IsZero() && cfg.StartTime.After(cfg.EndTime) {
		return fmt.Errorf("since time (%s) cannot be after until time (%s)", cfg.StartTime.Format(DateTimeFormat), cfg.EndTime.Format(DateTimeFormat))
	}

	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// resolveGitPath resolves the audited repository to its git root.
func resolveGitPath(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	searchPath := input.RepoPathStr
	absSearchPath, err := filepath.Abs(searchPath)
	if err != nil {
		return err
	}
	absSearchPath = filepath.Clean(absSearchPath)

	info, statErr := os.Stat(absSearchPath)
	gitContextPath := absSearchPath
	if statErr == nil && !info.IsDir() {
		gitContextPath = filepath.Dir(absSearchPath)
	}

	gitRoot, err := client.GetRepoRoot(ctx, gitContextPath)
	if err != nil {
		return err
	}

	cfg.RepoPath = gitRoot
	return nil
}

// splitFlagList splits a comma-separated flag value into trimmed non-empty parts.
func splitFlagList(s string) []string {
	result := []string{}
	if s == "" {
		return result
	}
	parts := strings.SplitSeq(s, ",")
	for p := range parts {
		trimmedP := strings.TrimSpace(p)
		if trimmedP != "" {
			result = append(result, trimmedP)
		}
	}
	return result
}
