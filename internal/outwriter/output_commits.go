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

// Fixed column budget for the commits table: Rank + Hash + Author + Date
// with borders/padding. The subject column absorbs the remaining width.
const commitsTableBaseWidth = 50

// PrintCommitRecords outputs the parsed commit log, dispatching based on the output format configured.
func PrintCommitRecords(commits []schema.CommitRecord, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeCommitJSONResults(commits, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCommitCSVResults(commits, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return errParquetUnsupported()
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCommitTable(commits, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeCommitJSONResults handles opening the file and calling the JSON writer.
func writeCommitJSONResults(commits []schema.CommitRecord, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, schema.EnrichCommits(commits))
	}, "Wrote JSON")
}

// writeCommitCSVResults handles opening the file and calling the CSV writer.
func writeCommitCSVResults(commits []schema.CommitRecord, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"rank", "hash", "author", "committer", "author_date", "subject"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			return writeCSVCommitRows(csvWriter, commits)
		})
	}, "Wrote CSV")
}

// writeCommitTable generates and writes the human-readable table.
func writeCommitTable(commits []schema.CommitRecord, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	table.Header([]string{"Rank", "Hash", "Author", "Date", "Subject"})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	subjectWidth := getMaxTableTextWidth(cfg, commitsTableBaseWidth)
	var data [][]string
	for i, c := range commits {
		row := []string{
			strconv.Itoa(i + 1),             // Rank
			schema.ShortHash(c.Hash),        // Hash
			schema.AbbreviateName(c.Author), // Author
			c.AuthorDate,                    // Date
			contract.TruncatePath(schema.Subject(c.Message), subjectWidth), // Subject
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing %d commits\n", len(commits)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Listing completed in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVCommitRows writes the commit records in CSV format.
func writeCSVCommitRows(w *csv.Writer, commits []schema.CommitRecord) error {
	for i, c := range commits {
		rec := []string{
			strconv.Itoa(i + 1),       // Rank
			c.Hash,                    // Full Hash
			c.Author,                  // Author
			c.Committer,               // Committer
			c.AuthorDate,              // Author Date
			schema.Subject(c.Message), // Subject
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
