// Package core has the audit orchestration and check logic for repoguard.
package core

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/repoguard/core/scan"
	"github.com/huangsam/repoguard/internal/contract"
	"github.com/huangsam/repoguard/internal/outwriter"
	"github.com/huangsam/repoguard/schema"
)

// ExecutorFunc defines the function signature for executing subcommands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// GetAuditResults runs the full audit pipeline and returns the result.
// This is the shared entry point for the CLI executor and the MCP handlers.
func GetAuditResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (*schema.AuditResult, time.Duration, error) {
	start := time.Now()

	builder := NewAuditResultBuilder(ctx, cfg, mgr)

	if _, err := builder.ValidatePrerequisites(); err != nil {
		return nil, time.Since(start), err
	}
	if _, err := builder.LoadCommitLog(); err != nil {
		return nil, time.Since(start), err
	}
	if _, err := builder.RunChecks(); err != nil {
		return nil, time.Since(start), err
	}
	builder.BuildResult()

	result := builder.GetResult()
	result.Duration = time.Since(start)
	return result, result.Duration, nil
}

// ExecuteAudit runs the audit and prints results to stdout. It exits with a
// non-zero code when any check fails, so it can gate CI pipelines.
func ExecuteAudit(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	if !shouldSuppressHeader(ctx) {
		outwriter.LogAuditHeader(cfg)
	}

	result, duration, err := GetAuditResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}

	ow := outwriter.NewOutWriter()
	if err := ow.WriteAudit(result, cfg, duration); err != nil {
		return err
	}

	if !result.Passed {
		fmt.Printf("%d violation(s) found across %d check(s)\n", result.TotalViolations(), len(result.FailedChecks()))
		os.Exit(1)
	}
	return nil
}

// GetCommitResults loads the parsed commit log for the configured window.
func GetCommitResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) ([]schema.CommitRecord, time.Duration, error) {
	start := time.Now()
	client := contract.NewLocalGitClient()
	commits, err := cachedCommitLog(ctx, cfg, client, mgr)
	if err != nil {
		return nil, time.Since(start), err
	}
	return commits, time.Since(start), nil
}

// ExecuteCommits lists the parsed commit records and prints them to stdout.
func ExecuteCommits(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	if !shouldSuppressHeader(ctx) {
		outwriter.LogAuditHeader(cfg)
	}

	commits, duration, err := GetCommitResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}

	ow := outwriter.NewOutWriter()
	return ow.WriteCommits(commits, cfg, duration)
}

// GetScanResults runs the secret scanner alone and returns its findings.
func GetScanResults(ctx context.Context, cfg *contract.Config) ([]schema.SecretFinding, time.Duration, error) {
	start := time.Now()
	scanner := contract.NewLocalScanClient(cfg.Scanner, cfg.ScannerArgs)
	if !scanner.Available() {
		return nil, time.Since(start), fmt.Errorf("scanner %q not found on PATH. Install it or set --scanner to another binary", cfg.Scanner)
	}
	out, err := scanner.Scan(ctx, cfg.RepoPath)
	if err != nil {
		return nil, time.Since(start), err
	}
	findings, err := scan.ParseFindings(out)
	if err != nil {
		return nil, time.Since(start), err
	}
	return findings, time.Since(start), nil
}

// ExecuteScan runs the secret scanner and prints findings to stdout.
func ExecuteScan(ctx context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	if !shouldSuppressHeader(ctx) {
		outwriter.LogScanHeader(cfg)
	}

	findings, duration, err := GetScanResults(ctx, cfg)
	if err != nil {
		return err
	}

	ow := outwriter.NewOutWriter()
	return ow.WriteFindings(findings, cfg, duration)
}

// GetCheckList returns the registered checks in canonical report order.
func GetCheckList() []schema.CheckInfo {
	checks := AllChecks()
	infos := make([]schema.CheckInfo, len(checks))
	for i, c := range checks {
		infos[i] = schema.CheckInfo{Name: c.Name(), Summary: c.Summary()}
	}
	return infos
}

// ExecuteChecksList prints the static listing of registered checks.
// This does not require Git access.
func ExecuteChecksList(_ context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	ow := outwriter.NewOutWriter()
	return ow.WriteChecksList(GetCheckList(), cfg)
}
