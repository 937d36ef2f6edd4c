// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/repoguard/schema"
)

// GitClient defines the necessary operations for repository auditing.
// This allows the core audit logic to be tested without needing a real git executable.
type GitClient interface {
	// --- Generic / Low-Level ---

	// Run executes a git command and returns its standard output.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// --- Reference Resolution ---

	// GetRepoHash returns the current HEAD commit hash of the repository.
	GetRepoHash(ctx context.Context, repoPath string) (string, error)

	// GetRepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// --- Commit Logs ---

	// GetCommitLog returns the raw delimited commit log stream for the given
	// window. The formatArg is passed through to git's --pretty option. A
	// zero since or until leaves that side of the window open; a limit of
	// zero means the complete history.
	GetCommitLog(ctx context.Context, repoPath string, formatArg string, since, until time.Time, limit int) ([]byte, error)

	// --- File State / Content ---

	// ListCommitFiles returns the file paths touched by a single commit.
	ListCommitFiles(ctx context.Context, repoPath string, hash string) ([]string, error)

	// ListFilesAtRef returns a list of all tracked files in the repository at a specific reference.
	ListFilesAtRef(ctx context.Context, repoPath string, ref string) ([]string, error)
}

// ScanClient defines the operations for running an external secret scanner.
// This allows the secrets check to be tested without a scanner installed.
type ScanClient interface {
	// Available reports whether the scanner binary can be resolved on PATH.
	Available() bool

	// Scan runs the scanner against the repository and returns its raw report.
	Scan(ctx context.Context, repoPath string) ([]byte, error)
}

// Check is a single audit rule evaluated against a repository.
type Check interface {
	// Name returns the stable identifier used for selection and reporting.
	Name() schema.CheckName

	// Summary returns a one-line description for listings.
	Summary() string

	// Run evaluates the rule against the assembled input. A returned error
	// means the rule could not be evaluated at all; policy violations are
	// reported through the outcome instead.
	Run(ctx context.Context, input *CheckInput) (schema.CheckOutcome, error)
}

// CheckInput carries everything a check may consult. It is assembled once
// per audit and shared read-only across all selected checks, so the commit
// list is parsed exactly once regardless of how many rules inspect it.
type CheckInput struct {
	Cfg          *Config
	Client       GitClient
	Scanner      ScanClient
	Commits      []schema.CommitRecord
	TrackedFiles []string
}

// StoreManager defines the interface for managing persistent stores.
// This allows the storage layer to be mocked for testing.
type StoreManager interface {
	GetLogStore() CacheStore
	GetAuditStore() AuditStore
}

// CacheStore defines the interface for commit log cache storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// AuditStore defines the interface for tracking audit runs and their outcomes.
type AuditStore interface {
	// BeginAudit creates a new audit run and returns its unique ID
	BeginAudit(startTime time.Time, configParams map[string]any) (int64, error)

	// EndAudit updates the audit run with completion data
	EndAudit(auditID int64, endTime time.Time, totalCommits int, passed bool) error

	// RecordCheckOutcome stores the outcome of a single check for a run
	RecordCheckOutcome(auditID int64, outcome schema.CheckOutcome) error

	// GetStatus returns status information about the audit store
	GetStatus() (schema.AuditStatus, error)

	// GetAllAuditRuns retrieves all audit run records for export
	GetAllAuditRuns() ([]schema.AuditRunRecord, error)

	// GetAllCheckResults retrieves all per-check result records for export
	GetAllCheckResults() ([]schema.CheckResultRecord, error)

	// Close closes the underlying connection
	Close() error
}
