package cmd

import (
	"github.com/huangsam/repoguard/core"
	"github.com/huangsam/repoguard/internal/contract"
	"github.com/spf13/cobra"
)

// scanCmd runs the secret scanner on its own.
var scanCmd = &cobra.Command{
	Use:   "scan [repo-path]",
	Short: "Run the secret scanner and report its findings",
	Long: `Invoke the configured secret scanner against the repository and parse its JSON report.

Unlike 'repoguard audit', a scan with findings still exits zero; this
command reports, the audit's secrets check enforces.

The scanner binary must be installed separately. Gitleaks is the default,
and any scanner that emits a gitleaks-shaped JSON report will work.

Examples:
  # Scan with the default gitleaks setup
  repoguard scan

  # Use a different scanner binary
  repoguard scan --scanner my-scanner --scanner-args "audit,--json"

  # Export findings for triage
  repoguard scan --output csv --output-file findings.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteScan(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run scan", err)
		}
	},
}
