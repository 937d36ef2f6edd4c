package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/repoguard/internal/contract"
	"github.com/huangsam/repoguard/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintCheckList outputs the registered check listing, dispatching based on the output format configured.
func PrintCheckList(checks []schema.CheckInfo, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, checks)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"rank", "name", "summary"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				return writeCSVCheckRows(csvWriter, checks)
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetUnsupported()
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCheckTable(checks, w)
		}, "Wrote table")
	}
}

// writeCheckTable generates and writes the human-readable table.
func writeCheckTable(checks []schema.CheckInfo, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	table.Header([]string{"Name", "Summary"})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for _, c := range checks {
		data = append(data, []string{string(c.Name), c.Summary})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "%d checks registered\n", len(checks))
	return err
}

// writeCSVCheckRows writes the check listing in CSV format.
func writeCSVCheckRows(w *csv.Writer, checks []schema.CheckInfo) error {
	for i, c := range checks {
		rec := []string{
			strconv.Itoa(i + 1),
			string(c.Name),
			c.Summary,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
