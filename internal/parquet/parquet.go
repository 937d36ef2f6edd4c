// Package parquet provides data structures and functions for exporting
// repoguard audit history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/repoguard/schema"
	"github.com/parquet-go/parquet-go"
)

// AuditRun represents a single audit run with metadata.
// This struct maps to the repoguard_audit_runs database table.
type AuditRun struct {
	// AuditID is the unique identifier for this audit run
	AuditID int64 `parquet:"audit_id,snappy"`

	// RepoPath is the root of the audited repository
	RepoPath string `parquet:"repo_path,snappy"`

	// StartTime is when the audit began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the audit completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the audit run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalCommits is the number of commits inspected in this run
	TotalCommits int32 `parquet:"total_commits,snappy"`

	// Passed reports whether every selected check held
	Passed bool `parquet:"passed,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// CheckResultRow represents the recorded outcome of one check in one audit run.
// This struct maps to the repoguard_check_results database table.
type CheckResultRow struct {
	// AuditID references the parent audit run
	AuditID int64 `parquet:"audit_id,snappy"`

	// CheckName is the stable identifier of the check
	CheckName string `parquet:"check_name,snappy"`

	// Status is pass, fail, or skip
	Status string `parquet:"status,snappy"`

	// Violations is the number of violations the check reported
	Violations int32 `parquet:"violations,snappy"`

	// Note explains why a check was skipped (nullable)
	Note *string `parquet:"note,optional,snappy"`

	// RecordedAt is when the outcome was stored (stored as TIMESTAMP with nanosecond precision)
	RecordedAt time.Time `parquet:"recorded_at,snappy"`
}

// WriteAuditRunsParquet writes a slice of AuditRun structs to a Parquet file.
func WriteAuditRunsParquet(data []AuditRun, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the AuditRun struct tags
	writer := parquet.NewGenericWriter[AuditRun](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteCheckResultsParquet writes a slice of CheckResultRow structs to a Parquet file.
func WriteCheckResultsParquet(data []CheckResultRow, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the CheckResultRow struct tags
	writer := parquet.NewGenericWriter[CheckResultRow](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// MockFetchAuditRuns generates sample AuditRun data for demonstration.
func MockFetchAuditRuns() []AuditRun {
	now := time.Now()
	startTime1 := now.Add(-2 * time.Hour)
	endTime1 := now.Add(-1*time.Hour - 55*time.Minute)
	durationMs1 := int32(endTime1.Sub(startTime1).Milliseconds())
	configParams1 := `{"repo_path":"/src/webapp","limit":100,"checks":9}`

	startTime2 := now.Add(-24 * time.Hour)
	endTime2 := now.Add(-23*time.Hour - 58*time.Minute)
	durationMs2 := int32(endTime2.Sub(startTime2).Milliseconds())
	configParams2 := `{"repo_path":"/src/api","limit":0,"checks":5}`

	startTime3 := now.Add(-10 * time.Minute)
	// Note: endTime3, durationMs3, configParams3 are nil to demonstrate nullable fields

	return []AuditRun{
		{
			AuditID:       1,
			RepoPath:      "/src/webapp",
			StartTime:     startTime1,
			EndTime:       &endTime1,
			RunDurationMs: &durationMs1,
			TotalCommits:  150,
			Passed:        true,
			ConfigParams:  &configParams1,
		},
		{
			AuditID:       2,
			RepoPath:      "/src/api",
			StartTime:     startTime2,
			EndTime:       &endTime2,
			RunDurationMs: &durationMs2,
			TotalCommits:  75,
			Passed:        false,
			ConfigParams:  &configParams2,
		},
		{
			AuditID:       3,
			RepoPath:      "/src/webapp",
			StartTime:     startTime3,
			EndTime:       nil, // Still running - nullable field
			RunDurationMs: nil, // Not yet calculated - nullable field
			TotalCommits:  0,
			Passed:        false,
			ConfigParams:  nil, // No config stored - nullable field
		},
	}
}

// MockFetchCheckResults generates sample CheckResultRow data for demonstration.
func MockFetchCheckResults() []CheckResultRow {
	now := time.Now()
	skipNote := "scanner \"gitleaks\" not found on PATH"

	return []CheckResultRow{
		{
			AuditID:    1,
			CheckName:  "commit-hashes",
			Status:     "pass",
			Violations: 0,
			Note:       nil,
			RecordedAt: now.Add(-2 * time.Hour),
		},
		{
			AuditID:    1,
			CheckName:  "secrets",
			Status:     "skip",
			Violations: 0,
			Note:       &skipNote,
			RecordedAt: now.Add(-2 * time.Hour),
		},
		{
			AuditID:    2,
			CheckName:  "messages",
			Status:     "fail",
			Violations: 4,
			Note:       nil,
			RecordedAt: now.Add(-24 * time.Hour),
		},
	}
}

// ConvertAuditRunRecords converts schema.AuditRunRecord to AuditRun for Parquet export.
func ConvertAuditRunRecords(records []schema.AuditRunRecord) []AuditRun {
	result := make([]AuditRun, len(records))
	for i, record := range records {
		result[i] = AuditRun{
			AuditID:       record.AuditID,
			RepoPath:      record.RepoPath,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalCommits:  record.TotalCommits,
			Passed:        record.Passed,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertCheckResultRecords converts schema.CheckResultRecord to CheckResultRow for Parquet export.
func ConvertCheckResultRecords(records []schema.CheckResultRecord) []CheckResultRow {
	result := make([]CheckResultRow, len(records))
	for i, record := range records {
		result[i] = CheckResultRow{
			AuditID:    record.AuditID,
			CheckName:  record.CheckName,
			Status:     record.Status,
			Violations: record.Violations,
			Note:       record.Note,
			RecordedAt: record.RecordedAt,
		}
	}
	return result
}
