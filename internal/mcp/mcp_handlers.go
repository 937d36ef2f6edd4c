package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huangsam/repoguard/core"
	"github.com/huangsam/repoguard/internal/contract"
	"github.com/huangsam/repoguard/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

func (h *toolHandler) handleAuditRepo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoPath = p
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.CommitLimit = l
	}
	if err := applyCheckSelection(cfg, request.GetString("checks", "")); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid check selection: %v", err)), nil
	}

	result, _, err := core.GetAuditResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("audit failed: %v", err)), nil
	}

	payload := struct {
		RepoPath     string                        `json:"repo_path"`
		Passed       bool                          `json:"passed"`
		TotalCommits int                           `json:"total_commits"`
		Outcomes     []schema.EnrichedCheckOutcome `json:"outcomes"`
	}{
		RepoPath:     result.RepoPath,
		Passed:       result.Passed,
		TotalCommits: result.TotalCommits,
		Outcomes:     schema.EnrichOutcomes(result.Outcomes),
	}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListCommits(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoPath = p
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.CommitLimit = l
	}

	commits, _, err := core.GetCommitResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("commit listing failed: %v", err)), nil
	}

	enriched := schema.EnrichCommits(commits)
	jsonData, _ := json.MarshalIndent(enriched, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleScanSecrets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoPath = p
	}
	if s := request.GetString("scanner", ""); s != "" {
		cfg.Scanner = s
	}

	findings, _, err := core.GetScanResults(core.WithSuppressHeader(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(findings, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListChecks(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	checks := core.GetCheckList()
	jsonData, _ := json.MarshalIndent(checks, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// applyCheckSelection resolves a comma-separated check selection onto the
// cloned config, preserving canonical report order. Empty or "all" keeps the
// server's configured selection.
func applyCheckSelection(cfg *contract.Config, checksStr string) error {
	checksStr = strings.TrimSpace(checksStr)
	if checksStr == "" || strings.EqualFold(checksStr, "all") {
		return nil
	}

	selected := make(map[schema.CheckName]bool)
	for part := range strings.SplitSeq(checksStr, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		name := schema.CheckName(strings.ToLower(trimmed))
		if _, ok := schema.ValidCheckNames[name]; !ok {
			return fmt.Errorf("unknown check '%s'", trimmed)
		}
		selected[name] = true
	}
	if len(selected) == 0 {
		return fmt.Errorf("no valid checks in selection '%s'", checksStr)
	}

	cfg.Checks = cfg.Checks[:0]
	for _, name := range schema.AllCheckNames {
		if selected[name] {
			cfg.Checks = append(cfg.Checks, name)
		}
	}
	return nil
}
