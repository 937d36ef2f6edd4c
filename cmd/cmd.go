// Package cmd defines the command-line interface for repoguard.
package cmd

import (
	"github.com/huangsam/repoguard/internal/contract"
	"github.com/huangsam/repoguard/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(commitsCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(checksCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(historyCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("checks", "c", "all", "Comma-separated check names to run, or 'all'")
	rootCmd.PersistentFlags().String("skip", "", "Comma-separated check names to exclude from the selection")
	rootCmd.PersistentFlags().IntP("limit", "l", 0, "Number of commits to audit (0 = entire history)")
	rootCmd.PersistentFlags().String("since", "", "Start date in ISO8601 or time ago")
	rootCmd.PersistentFlags().String("until", "", "End date in ISO8601 or time ago")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("scanner", contract.DefaultScanner, "Secret scanner binary to invoke")
	rootCmd.PersistentFlags().String("scanner-args", "detect,--no-banner,--report-format=json,--report-path=/dev/stdout", "Comma-separated arguments passed to the scanner")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("cache-max-age", "7 days", "Maximum age before cached commit logs go stale")
	rootCmd.PersistentFlags().String("history-backend", "", "Audit history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for audit history (SQLite paths must differ from the cache file)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of auditCmd to Viper
	auditCmd.Flags().Bool("require-signoff", false, "Require a Signed-off-by trailer on every commit")
	auditCmd.Flags().String("license-pattern", "(?i)copyright", "Regular expression the license file must match")
	auditCmd.Flags().String("required-ignores", "", "Comma-separated entries the .gitignore file must contain")
	auditCmd.Flags().String("forbidden-paths", ".env,*.pem,id_rsa,*.key", "Comma-separated path patterns no commit may touch")
	auditCmd.Flags().Int("subject-limit", contract.DefaultSubjectLimit, "Maximum commit subject length in characters")
	if err := viper.BindPFlags(auditCmd.Flags()); err != nil {
		contract.LogFatal("Error binding audit flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
