package cmd

import (
	"fmt"
	"strings"

	"github.com/huangsam/repoguard/core"
	"github.com/huangsam/repoguard/internal/contract"
	"github.com/huangsam/repoguard/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// checksSetup loads minimal configuration needed for the static check listing.
// This avoids Git repo validation since no history is read.
func checksSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	cfg.Output = schema.OutputMode(strings.ToLower(viper.GetString("output")))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", cfg.Output)
	}
	cfg.OutputFile = viper.GetString("output-file")

	colors, err := contract.ParseBoolString(viper.GetString("color"))
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	return nil
}

// checksSetupWrapper wraps checksSetup to provide PreRunE for the checks command.
func checksSetupWrapper(_ *cobra.Command, _ []string) error {
	return checksSetup()
}

// checksCmd lists the registered audit checks.
var checksCmd = &cobra.Command{
	Use:   "checks",
	Short: "List all registered audit checks and what they enforce",
	Long: `Show the full check registry with a one-line summary per check.

No Git access is performed - this is purely informational.

Use this to:
- Discover valid names for --checks and --skip
- Document the enforced policy for your team

Examples:
  # List every check
  repoguard checks

  # Machine-readable listing
  repoguard checks --output json`,
	PreRunE: checksSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteChecksList(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot list checks", err)
		}
	},
}
