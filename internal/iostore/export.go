package iostore

import (
	"errors"
	"fmt"

	"github.com/huangsam/repoguard/internal/parquet"
)

// ExecuteHistoryExport performs the actual export of audit history to Parquet files.
func ExecuteHistoryExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the audit history store
	store := Manager.GetAuditStore()

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no audit history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total audit runs: %d\n", status.TotalRuns)
	fmt.Printf("Total check results: %d\n", status.TableSizes[checkResultsTable])

	// Retrieve all audit runs
	auditRuns, err := store.GetAllAuditRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve audit runs: %w", err)
	}

	// Retrieve all per-check results
	checkResults, err := store.GetAllCheckResults()
	if err != nil {
		return fmt.Errorf("failed to retrieve check results: %w", err)
	}

	// Convert to Parquet format
	parquetAuditRuns := parquet.ConvertAuditRunRecords(auditRuns)
	parquetCheckResults := parquet.ConvertCheckResultRecords(checkResults)

	// Write audit runs to Parquet
	auditRunsFile := outputFile + ".audit_runs.parquet"
	if err := parquet.WriteAuditRunsParquet(parquetAuditRuns, auditRunsFile); err != nil {
		return fmt.Errorf("failed to write audit runs: %w", err)
	}
	fmt.Printf("Exported %d audit runs to: %s\n", len(parquetAuditRuns), auditRunsFile)

	// Write check results to Parquet
	checkResultsFile := outputFile + ".check_results.parquet"
	if err := parquet.WriteCheckResultsParquet(parquetCheckResults, checkResultsFile); err != nil {
		return fmt.Errorf("failed to write check results: %w", err)
	}
	fmt.Printf("Exported %d check result records to: %s\n", len(parquetCheckResults), checkResultsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
