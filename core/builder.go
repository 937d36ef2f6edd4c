package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/repoguard/internal/contract"
	"github.com/huangsam/repoguard/schema"
)

// AuditResultBuilder builds the audit result using a builder pattern.
type AuditResultBuilder struct {
	ctx          context.Context
	cfg          *contract.Config
	client       contract.GitClient
	scanner      contract.ScanClient
	mgr          contract.StoreManager
	commits      []schema.CommitRecord
	trackedFiles []string
	outcomes     []schema.CheckOutcome
	auditID      int64
	result       *schema.AuditResult
}

// NewAuditResultBuilder creates a new builder for audit results.
func NewAuditResultBuilder(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) *AuditResultBuilder {
	return &AuditResultBuilder{
		ctx:     ctx,
		cfg:     cfg,
		client:  contract.NewLocalGitClient(),
		scanner: contract.NewLocalScanClient(cfg.Scanner, cfg.ScannerArgs),
		mgr:     mgr,
	}
}

// ValidatePrerequisites verifies the repository is auditable before any
// expensive work happens.
func (b *AuditResultBuilder) ValidatePrerequisites() (*AuditResultBuilder, error) {
	if len(b.cfg.Checks) == 0 {
		return nil, fmt.Errorf("no checks selected. Run 'repoguard checks' to list valid names")
	}

	if _, err := b.client.GetRepoHash(b.ctx, b.cfg.RepoPath); err != nil {
		return nil, fmt.Errorf("repository %q has no resolvable HEAD: %w", b.cfg.RepoPath, err)
	}

	return b, nil
}

// LoadCommitLog parses the commit log once for the configured window and
// lists the tracked files at HEAD. Every check reads from this snapshot, so
// the log is never re-parsed per rule.
func (b *AuditResultBuilder) LoadCommitLog() (*AuditResultBuilder, error) {
	commits, err := cachedCommitLog(b.ctx, b.cfg, b.client, b.mgr)
	if err != nil {
		return nil, fmt.Errorf("failed to load commit log: %w. Verify the repository has Git history and is readable", err)
	}
	b.commits = commits

	trackedFiles, err := b.client.ListFilesAtRef(b.ctx, b.cfg.RepoPath, "HEAD")
	if err != nil {
		return nil, fmt.Errorf("failed to list tracked files: %w", err)
	}
	b.trackedFiles = trackedFiles

	return b, nil
}

// RunChecks evaluates the selected rules sequentially, in canonical report
// order, recording each outcome in the audit history store when configured.
func (b *AuditResultBuilder) RunChecks() (*AuditResultBuilder, error) {
	input := &contract.CheckInput{
		Cfg:          b.cfg,
		Client:       b.client,
		Scanner:      b.scanner,
		Commits:      b.commits,
		TrackedFiles: b.trackedFiles,
	}

	store := b.auditStore()
	if store != nil {
		configParams := map[string]any{
			"repo_path": b.cfg.RepoPath,
			"limit":     b.cfg.CommitLimit,
			"workers":   b.cfg.Workers,
			"checks":    len(b.cfg.Checks),
		}
		auditID, err := store.BeginAudit(time.Now(), configParams)
		if err != nil {
			contract.LogWarn("Audit history tracking initialization failed", err)
		} else {
			b.auditID = auditID
		}
	}

	b.outcomes = make([]schema.CheckOutcome, 0, len(b.cfg.Checks))
	for _, check := range SelectChecks(b.cfg) {
		checkStart := time.Now()
		outcome, err := check.Run(b.ctx, input)
		if err != nil {
			return nil, fmt.Errorf("check %s could not be evaluated: %w", check.Name(), err)
		}
		outcome.Name = check.Name()
		outcome.Duration = time.Since(checkStart)
		b.outcomes = append(b.outcomes, outcome)

		if store != nil && b.auditID > 0 {
			if err := store.RecordCheckOutcome(b.auditID, outcome); err != nil {
				contract.LogWarn("Failed to record check outcome", err)
			}
		}
	}

	return b, nil
}

// BuildResult constructs the final AuditResult and finalizes history tracking.
func (b *AuditResultBuilder) BuildResult() *AuditResultBuilder {
	passed := true
	for _, o := range b.outcomes {
		if o.Status == schema.StatusFail {
			passed = false
			break
		}
	}

	b.result = &schema.AuditResult{
		RepoPath:     b.cfg.RepoPath,
		Passed:       passed,
		Outcomes:     b.outcomes,
		TotalCommits: len(b.commits),
		WindowSince:  b.cfg.StartTime,
		WindowUntil:  b.cfg.EndTime,
	}

	if store := b.auditStore(); store != nil && b.auditID > 0 {
		if err := store.EndAudit(b.auditID, time.Now(), len(b.commits), passed); err != nil {
			contract.LogWarn("Failed to finalize audit history tracking", err)
		}
	}

	return b
}

// GetResult returns the built AuditResult.
func (b *AuditResultBuilder) GetResult() *schema.AuditResult {
	return b.result
}

// auditStore returns the audit history store, or nil when tracking is off.
func (b *AuditResultBuilder) auditStore() contract.AuditStore {
	if b.mgr == nil {
		return nil
	}
	return b.mgr.GetAuditStore()
}
