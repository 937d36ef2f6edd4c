package outwriter

import (
	"fmt"
	"path/filepath"

	"github.com/huangsam/repoguard/internal/contract"
)

// emojiPrefix returns the emoji plus a trailing space when emojis are enabled,
// and an empty string otherwise so headers stay plain in CI logs.
func emojiPrefix(cfg *contract.Config, symbol string) string {
	if cfg.UseEmojis {
		return symbol + " "
	}
	return ""
}

// formatWindow renders the audited time window for header lines.
// Both bounds default to zero, which means the entire history.
func formatWindow(cfg *contract.Config) string {
	switch {
	case cfg.StartTime.IsZero() && cfg.EndTime.IsZero():
		return "entire history"
	case cfg.StartTime.IsZero():
		return fmt.Sprintf("start → %s", cfg.EndTime.Format(contract.DateTimeFormat))
	case cfg.EndTime.IsZero():
		return fmt.Sprintf("%s → now", cfg.StartTime.Format(contract.DateTimeFormat))
	default:
		return fmt.Sprintf("%s → %s", cfg.StartTime.Format(contract.DateTimeFormat), cfg.EndTime.Format(contract.DateTimeFormat))
	}
}

// repoDisplayName returns a compact repository name for header lines.
func repoDisplayName(cfg *contract.Config) string {
	repoName := filepath.Base(cfg.RepoPath)
	if repoName == "" || repoName == "." {
		repoName = "current"
	}
	return repoName
}

// LogAuditHeader prints a concise, 2-line header for each audit phase.
func LogAuditHeader(cfg *contract.Config) {
	// Line 1: The audit summary (Repo and selected rule count)
	fmt.Printf("%sRepo: %s (Checks: %d)\n", emojiPrefix(cfg, "🔎"), repoDisplayName(cfg), len(cfg.Checks))

	// Line 2: The actual date range being audited
	fmt.Printf("%sRange: %s\n", emojiPrefix(cfg, "📅"), formatWindow(cfg))
}

// LogScanHeader prints a header for standalone secret scans.
func LogScanHeader(cfg *contract.Config) {
	fmt.Printf("%sRepo: %s (Scanner: %s)\n", emojiPrefix(cfg, "🔎"), repoDisplayName(cfg), cfg.Scanner)
	fmt.Printf("%sRange: %s\n", emojiPrefix(cfg, "📅"), formatWindow(cfg))
}
