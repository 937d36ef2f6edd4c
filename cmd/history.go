package cmd

import (
	"fmt"

	"github.com/huangsam/repoguard/internal/contract"
	"github.com/huangsam/repoguard/internal/iostore"
	"github.com/huangsam/repoguard/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need history access without full shared setup.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by export command)
	outputFile := viper.GetString("output-file")

	// Initialize stores with the loaded config (no log caching for history commands)
	if err := iostore.InitStores(schema.NoneBackend, "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = outputFile

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func historyMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = iostore.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historyMigrateSetupWrapper wraps historyMigrateSetup to provide PreRunE for migrate command.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return historyMigrateSetup()
}

// historyCmd focused on audit history management.
//
// Note: History subcommands use minimal initialization (historySetup) instead of
// the full sharedSetup used by audit commands. This avoids Git repo validation
// and complex config processing for simple history operations.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage audit history tracking and exports",
	Long: `Manage historical audit data used for trend tracking and reporting.

When enabled, Repoguard tracks every audit run, storing:
- Run metadata (timestamp, configuration, duration)
- Per-check outcomes with violation counts and skip notes
- Pass/fail verdicts across the whole history

This enables longitudinal compliance reporting and data export for BI tools.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show audit history statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all history data
  migrate - Run database schema migrations

Examples:
  # Check history status
  repoguard history status

  # Export for analysis in pandas/DuckDB
  repoguard history export --output-file audit-data.parquet`,
}

// historyClearCmd clears the audit history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all historical audit data",
	Long: `Delete all stored audit runs and per-check results.

This removes:
- All audit run metadata
- Historical check outcomes and violation counts

WARNING: This action cannot be undone. Consider exporting data first.

Use this when:
- Resetting compliance tracking
- Database storage is full
- Starting fresh audit history
- Testing history features

Examples:
  # Export before clearing
  repoguard history export --output-file backup.parquet
  repoguard history clear

  # Clear and start fresh
  repoguard history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iostore.ClearHistory(cfg.HistoryBackend, iostore.GetHistoryDBFilePath(), cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear history data", err)
		}
		fmt.Println("History data cleared successfully.")
	},
}

// historyStatusCmd shows audit history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display audit history statistics and connection details",
	Long: `Show detailed information about audit history tracking.

Displays:
- Backend type and connection status
- Total number of audit runs stored
- Last and oldest audit run timestamps
- Total check outcomes recorded across all runs
- Database table sizes

Use this to:
- Verify history tracking is enabled and working
- Monitor data accumulation over time
- Check database connection health
- Estimate storage requirements

Examples:
  # Check audit history status
  repoguard history status`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iostore.Manager.GetAuditStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		iostore.PrintAuditStatus(status)
	},
}

// historyExportCmd exports audit history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export audit history to Parquet for BI tools and analytics",
	Long: `Export all stored audit history to Parquet format for use with analytics tools.

Exports two datasets:
- Audit runs - metadata about each audit execution
- Check results - per-check outcomes with violation counts

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Schema evolution for future data additions
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --output-file parameter

Use cases:
- Compliance trend analysis across multiple runs
- Custom dashboards and visualizations
- Executive reporting and KPIs

Examples:
  # Export all data
  repoguard history export --output-file audit-data.parquet

  # Use with DuckDB for analysis
  repoguard history export --output-file data.parquet
  duckdb -c "SELECT * FROM read_parquet('data.parquet.audit_runs.parquet') LIMIT 10"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iostore.ExecuteHistoryExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export history data", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the audit history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the audit history store.

Migrations allow:
- Upgrading to new schema versions when Repoguard is updated
- Safely modifying database structure without data loss
- Rolling back schema changes if needed
- Testing new features on specific schema versions

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  repoguard history migrate

  # Migrate to specific version
  repoguard history migrate --target-version 1

  # Rollback to initial state
  repoguard history migrate --target-version 0`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iostore.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
