package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/repoguard/schema"
)

// Color variables for console output.
var (
	PassColor = color.New(color.FgGreen, color.Bold) // passColor marks a rule that held.
	FailColor = color.New(color.FgRed, color.Bold)   // failColor marks a policy violation.
	SkipColor = color.New(color.FgYellow)            // skipColor marks a rule that was not evaluated.
)

// GetColorLabel returns a colored status label for console output (table).
// It uses schema.GetStatusLabel to determine the string, and then applies
// the appropriate color.
func GetColorLabel(status schema.CheckStatus) string {
	text := schema.GetStatusLabel(status)

	switch status {
	case schema.StatusPass:
		return PassColor.Sprint(text)
	case schema.StatusFail:
		return FailColor.Sprint(text)
	case schema.StatusSkip:
		return SkipColor.Sprint(text)
	default:
		return text
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path falls back to os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// MatchesAny returns true if the given path matches any of the patterns.
// It supports simple glob patterns (using filepath.Match) when the pattern
// contains wildcard characters (*, ?, [ ]). Patterns ending with '/' are
// treated as prefixes. Patterns starting with '.' are treated as suffix
// (extension) matches. A user can provide patterns like "vendor/", "*.pem",
// ".env".
func MatchesAny(path string, patterns []string) bool {
	for _, pat := range patterns {
		pat = strings.TrimSpace(pat)
		if pat == "" {
			continue
		}

		// If the pattern contains glob characters, try filepath.Match.
		if strings.ContainsAny(pat, "*?[") || strings.Contains(pat, "**") {
			p := strings.ReplaceAll(pat, "**", "*")
			if ok, err := filepath.Match(p, path); err == nil && ok {
				return true
			}
			// Also try matching against the base filename (e.g. *.pem)
			if ok, err := filepath.Match(p, filepath.Base(path)); err == nil && ok {
				return true
			}
			continue
		}

		// Handle prefix, suffix, or exact base matches
		switch {
		case strings.HasSuffix(pat, "/"):
			if strings.HasPrefix(path, pat) {
				return true
			}
		case strings.HasPrefix(pat, "."):
			if strings.HasSuffix(path, pat) || filepath.Base(path) == pat {
				return true
			}
		case path == pat || filepath.Base(path) == pat:
			return true
		}
	}
	return false
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for commit log cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".repoguard_cache.db"
	}
	return filepath.Join(homeDir, ".repoguard_cache.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for audit history storage.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".repoguard_history.db"
	}
	return filepath.Join(homeDir, ".repoguard_history.db")
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to ensure there's space for both the "..." prefix and at least one character of content.
// Without this check, small maxWidth values could cause slice bounds errors in the truncation calculation.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
