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

// Fixed column budget for the findings table: Rank + Rule + Line + Commit
// with borders/padding. The file column absorbs the remaining width.
const findingsTableBaseWidth = 55

// PrintSecretFindings outputs the scanner findings, dispatching based on the output format configured.
func PrintSecretFindings(findings []schema.SecretFinding, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeFindingJSONResults(findings, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeFindingCSVResults(findings, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return errParquetUnsupported()
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFindingTable(findings, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeFindingJSONResults handles opening the file and calling the JSON writer.
func writeFindingJSONResults(findings []schema.SecretFinding, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		// Prepare the data structure for JSON with rank added
		type JSONSecretFinding struct {
			Rank int `json:"rank"`
			schema.SecretFinding
		}

		output := make([]JSONSecretFinding, len(findings))
		for i, f := range findings {
			output[i] = JSONSecretFinding{
				Rank:          i + 1,
				SecretFinding: f,
			}
		}
		return writeJSON(w, output)
	}, "Wrote JSON")
}

// writeFindingCSVResults handles opening the file and calling the CSV writer.
func writeFindingCSVResults(findings []schema.SecretFinding, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"rank", "rule_id", "description", "file", "start_line", "end_line", "commit", "author", "date"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			return writeCSVFindingRows(csvWriter, findings)
		})
	}, "Wrote CSV")
}

// writeFindingTable generates and writes the human-readable table.
// Secret values themselves never make it into the table, only their locations.
func writeFindingTable(findings []schema.SecretFinding, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	table.Header([]string{"Rank", "Rule", "File", "Line", "Commit"})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	fileWidth := getMaxTableTextWidth(cfg, findingsTableBaseWidth)
	var data [][]string
	for i, f := range findings {
		row := []string{
			strconv.Itoa(i + 1),                      // Rank
			f.RuleID,                                 // Rule
			contract.TruncatePath(f.File, fileWidth), // File
			strconv.Itoa(f.StartLine),                // Line
			schema.ShortHash(f.Commit),               // Commit
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Scanner %s reported %d finding(s)\n", cfg.Scanner, len(findings)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Scan completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// writeCSVFindingRows writes the scanner findings in CSV format.
func writeCSVFindingRows(w *csv.Writer, findings []schema.SecretFinding) error {
	for i, f := range findings {
		rec := []string{
			strconv.Itoa(i + 1),        // Rank
			f.RuleID,                   // Rule
			f.Description,              // Description
			f.File,                     // File
			strconv.Itoa(f.StartLine),  // Start Line
			strconv.Itoa(f.EndLine),    // End Line
			f.Commit,                   // Commit
			f.Author,                   // Author
			f.Date,                     // Date
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
