// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/repoguard/internal/contract"
	"github.com/huangsam/repoguard/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteAudit prints full audit results using the configured output format.
func (ow *OutWriter) WriteAudit(result *schema.AuditResult, cfg *contract.Config, duration time.Duration) error {
	return PrintAuditResult(result, cfg, duration)
}

// WriteCommits prints parsed commit records using the configured output format.
func (ow *OutWriter) WriteCommits(commits []schema.CommitRecord, cfg *contract.Config, duration time.Duration) error {
	return PrintCommitRecords(commits, cfg, duration)
}

// WriteFindings prints secret scanner findings using the configured output format.
func (ow *OutWriter) WriteFindings(findings []schema.SecretFinding, cfg *contract.Config, duration time.Duration) error {
	return PrintSecretFindings(findings, cfg, duration)
}

// WriteChecksList prints the registered check listing using the configured output format.
func (ow *OutWriter) WriteChecksList(checks []schema.CheckInfo, cfg *contract.Config) error {
	return PrintCheckList(checks, cfg)
}
