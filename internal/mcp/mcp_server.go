// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/repoguard/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Repoguard MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Repoguard Audit Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: audit_repo ---
	s.AddTool(mcp.NewTool("audit_repo",
		mcp.WithDescription("Run the full policy audit against a Git repository's commit history and tracked files."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to the server's configured repository if not specified).")),
		mcp.WithString("checks", mcp.Description("Comma-separated check names to run (e.g. 'commit-hashes,messages'). Defaults to all checks.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of commits audited (0 audits the entire history).")),
	), h.handleAuditRepo)

	// --- 2. Tool: list_commits ---
	s.AddTool(mcp.NewTool("list_commits",
		mcp.WithDescription("List parsed commit records from a Git repository's history."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of commits returned.")),
	), h.handleListCommits)

	// --- 3. Tool: scan_secrets ---
	s.AddTool(mcp.NewTool("scan_secrets",
		mcp.WithDescription("Run the secret scanner against a Git repository and return its findings."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository.")),
		mcp.WithString("scanner", mcp.Description("Scanner binary to invoke. Defaults to 'gitleaks'.")),
	), h.handleScanSecrets)

	// --- 4. Tool: list_checks ---
	s.AddTool(mcp.NewTool("list_checks",
		mcp.WithDescription("List all registered audit checks with their summaries."),
	), h.handleListChecks)

	return s
}

// StartMCPServer starts the Repoguard MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
