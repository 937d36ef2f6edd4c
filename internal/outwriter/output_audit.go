package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/repoguard/internal/contract"
	"github.com/huangsam/repoguard/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Fixed column budget for the audit table: Rank + Check + Status + Violations
// with borders/padding. The note column absorbs the remaining width.
const auditTableBaseWidth = 45

// PrintAuditResult outputs the audit results, dispatching based on the output format configured.
func PrintAuditResult(result *schema.AuditResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeAuditJSONResult(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeAuditCSVResult(result, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return errParquetUnsupported()
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAuditTable(result, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeAuditJSONResult handles opening the file and calling the JSON writer.
func writeAuditJSONResult(result *schema.AuditResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONAuditResult(w, result)
	}, "Wrote JSON")
}

// writeAuditCSVResult handles opening the file and calling the CSV writer.
func writeAuditCSVResult(result *schema.AuditResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"rank", "check", "status", "violations", "note", "duration_ms"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			return writeCSVAuditRows(csvWriter, result)
		})
	}, "Wrote CSV")
}

// writeAuditTable generates and writes the human-readable table.
func writeAuditTable(result *schema.AuditResult, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	table.Header([]string{"Rank", "Check", "Status", "Violations", "Note"})

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	// 3. Populate Rows
	noteWidth := getMaxTableTextWidth(cfg, auditTableBaseWidth)
	var data [][]string
	for i, o := range result.Outcomes {
		row := []string{
			strconv.Itoa(i + 1),                    // Rank
			string(o.Name),                         // Check
			statusLabel(cfg, o.Status),             // Status
			strconv.Itoa(len(o.Violations)),        // Violations
			contract.TruncatePath(o.Note, noteWidth), // Note (set for skipped checks)
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// 5. List the violations of every failed check below the table
	if err := writeViolationDetails(result, writer); err != nil {
		return err
	}

	// Compute summary stats
	passed := 0
	for _, o := range result.Outcomes {
		if o.Status == schema.StatusPass {
			passed++
		}
	}
	if _, err := fmt.Fprintf(writer, "Audit of %s: %d/%d checks passed across %d commits\n", result.RepoPath, passed, len(result.Outcomes), result.TotalCommits); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Audit completed in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeViolationDetails prints the per-violation breakdown for failed checks.
func writeViolationDetails(result *schema.AuditResult, writer io.Writer) error {
	for _, o := range result.FailedChecks() {
		if _, err := fmt.Fprintf(writer, "%s: %d violation(s)\n", o.Name, len(o.Violations)); err != nil {
			return err
		}
		for _, v := range o.Violations {
			if _, err := fmt.Fprintf(writer, "  - %s\n", formatViolation(v)); err != nil {
				return err
			}
		}
	}
	return nil
}

// formatViolation renders a single violation with whatever context it carries.
func formatViolation(v schema.Violation) string {
	switch {
	case v.Commit != "" && v.Path != "":
		return fmt.Sprintf("[%s] %s: %s", schema.ShortHash(v.Commit), v.Path, v.Detail)
	case v.Commit != "":
		return fmt.Sprintf("[%s] %s", schema.ShortHash(v.Commit), v.Detail)
	case v.Path != "":
		return fmt.Sprintf("%s: %s", v.Path, v.Detail)
	default:
		return v.Detail
	}
}

// writeCSVAuditRows writes the audit results in CSV format, one row per check.
func writeCSVAuditRows(w *csv.Writer, result *schema.AuditResult) error {
	for i, o := range result.Outcomes {
		rec := []string{
			strconv.Itoa(i + 1),                               // Rank
			string(o.Name),                                    // Check
			string(o.Status),                                  // Status
			strconv.Itoa(len(o.Violations)),                   // Violations
			o.Note,                                            // Note
			strconv.FormatInt(o.Duration.Milliseconds(), 10), // Duration in ms
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONAuditResult writes the audit results in JSON format.
func writeJSONAuditResult(w io.Writer, result *schema.AuditResult) error {
	// Prepare the data structure for JSON with rank and label added
	type JSONAuditResult struct {
		RepoPath     string                        `json:"repo_path"`
		Passed       bool                          `json:"passed"`
		TotalCommits int                           `json:"total_commits"`
		DurationMs   int64                         `json:"duration_ms"`
		Outcomes     []schema.EnrichedCheckOutcome `json:"outcomes"`
	}

	output := JSONAuditResult{
		RepoPath:     result.RepoPath,
		Passed:       result.Passed,
		TotalCommits: result.TotalCommits,
		DurationMs:   result.Duration.Milliseconds(),
		Outcomes:     schema.EnrichOutcomes(result.Outcomes),
	}

	return writeJSON(w, output)
}
