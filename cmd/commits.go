package cmd

import (
	"github.com/huangsam/repoguard/core"
	"github.com/huangsam/repoguard/internal/contract"
	"github.com/spf13/cobra"
)

// commitsCmd lists the parsed commit log.
var commitsCmd = &cobra.Command{
	Use:   "commits [repo-path]",
	Short: "List parsed commit records from the repository history",
	Long: `Parse Git history into structured commit records and print them.

Each record carries the full hash, author, committer, strict ISO-8601
author date, and the complete message body. Records come back newest
first, exactly as the log emits them.

Useful for:
- Verifying what the audit checks will see
- Feeding commit metadata into other tooling (csv/json output)
- Inspecting a time window before running the full audit

Examples:
  # Show the most recent 20 commits
  repoguard commits --limit 20

  # Export a quarter of history as JSON
  repoguard commits --since "3 months ago" --output json --output-file commits.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCommits(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot list commits", err)
		}
	},
}
