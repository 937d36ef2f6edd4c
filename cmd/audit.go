package cmd

import (
	"github.com/huangsam/repoguard/core"
	"github.com/huangsam/repoguard/internal/contract"
	"github.com/spf13/cobra"
)

// auditCmd performs the full repository audit.
var auditCmd = &cobra.Command{
	Use:   "audit [repo-path]",
	Short: "Run all configured policy checks against the repository (fails build on violations)",
	Long: `Parse Git history and tracked files, then run every selected policy check.

Checks cover commit hygiene, repository files, and secret exposure:
- Commit hashes are well-formed hex and unique
- Author dates parse under strict ISO-8601
- Messages are non-empty with bounded subject lines
- Commits carry Signed-off-by trailers (opt-in)
- LICENSE exists and matches the expected pattern
- package.json parses with name, version, and license
- .gitignore exists with the required entries
- No commit touches a forbidden path
- Secret scanner reports zero findings

Exits with a non-zero code when any check fails, so it can gate CI pipelines.

Examples:
  # Audit the current repository with every check
  repoguard audit

  # Audit only commit hygiene on the last 500 commits
  repoguard audit --checks commit-hashes,author-dates,messages --limit 500

  # Enforce sign-offs within a release window
  repoguard audit --require-signoff --since "2 weeks ago"

  # Skip the scanner and export results for tracking
  repoguard audit --skip secrets --output csv --output-file audit.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAudit(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run audit", err)
		}
	},
}
