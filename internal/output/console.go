package output

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

const consoleCellWidth = 60

// ConsoleWriter writes reports as an aligned table.
type ConsoleWriter struct{}

// Write outputs the report to the console.
func (w *ConsoleWriter) Write(report *QueryReport, options OutputOptions) error {
	rows := limitTop(report.Result.Rows, options.Top)

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	color.New(color.FgGreen).Fprintf(out, "%s results\n", report.Title)
	fmt.Fprintf(out, "Source: %s\n", report.Source)
	fmt.Fprintf(out, "Total rows: %d\n\n", len(report.Result.Rows))

	if len(report.Result.Rows) == 0 {
		fmt.Fprintln(out, "No rows.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	// Write header
	fmt.Fprintln(tw, "#\t"+strings.Join(report.Result.Columns, "\t"))

	// Write rows
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, v := range row {
			if v == nil {
				cells[j] = color.New(color.Faint).Sprint("NULL")
				continue
			}
			cells[j] = truncateMessage(firstLine(formatValue(v, "")), consoleCellWidth)
		}
		fmt.Fprintf(tw, "%d\t%s\n", i+1, strings.Join(cells, "\t"))
	}

	return tw.Flush()
}

// Helper functions

func truncateMessage(msg string, maxLen int) string {
	if len(msg) <= maxLen {
		return msg
	}
	return msg[:maxLen-3] + "..."
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
