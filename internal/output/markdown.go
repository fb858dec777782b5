package output

import (
	"fmt"
	"strings"
)

// MarkdownWriter writes reports as a Markdown table.
type MarkdownWriter struct{}

// Write outputs the report as Markdown.
func (w *MarkdownWriter) Write(report *QueryReport, options OutputOptions) error {
	rows := limitTop(report.Result.Rows, options.Top)

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	// Header
	fmt.Fprintf(out, "# %s results\n", escapeMarkdown(report.Title))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "**Source:** `%s`\n\n", strings.ReplaceAll(report.Source, "`", "'"))
	fmt.Fprintf(out, "**Total Rows:** %d\n\n", len(report.Result.Rows))

	if len(report.Result.Columns) == 0 {
		return nil
	}

	// Table header
	seps := make([]string, len(report.Result.Columns))
	for i, c := range report.Result.Columns {
		seps[i] = strings.Repeat("-", max(3, len(c)))
	}
	fmt.Fprintf(out, "| %s |\n", strings.Join(report.Result.Columns, " | "))
	fmt.Fprintf(out, "|%s|\n", "-"+strings.Join(seps, "-|-")+"-")

	// Table rows
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = escapeMarkdown(formatValue(v, "NULL"))
		}
		fmt.Fprintf(out, "| %s |\n", strings.Join(cells, " | "))
	}

	return nil
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"|", "\\|",
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
		"\r\n", "<br>",
		"\n", "<br>",
	)
	return replacer.Replace(s)
}
