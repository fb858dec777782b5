package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// NDJSONWriter writes reports as NDJSON (one JSON object per line) for pipelines.
type NDJSONWriter struct{}

// NDJSONSummary is the first line of NDJSON output.
type NDJSONSummary struct {
	Type      string   `json:"type"`
	Title     string   `json:"title"`
	Columns   []string `json:"columns"`
	TotalRows int      `json:"totalRows"`
}

// NDJSONRow is one row of NDJSON output.
type NDJSONRow struct {
	Type   string         `json:"type"`
	Values map[string]any `json:"values"`
}

// Write outputs the report as NDJSON.
func (w *NDJSONWriter) Write(report *QueryReport, options OutputOptions) error {
	rows := limitTop(report.Result.Rows, options.Top)

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	// Write summary line
	summary := NDJSONSummary{
		Type:      "summary",
		Title:     report.Title,
		Columns:   report.Result.Columns,
		TotalRows: len(report.Result.Rows),
	}
	if err := writeNDJSONLine(out, summary); err != nil {
		return err
	}

	for _, row := range rows {
		entry := NDJSONRow{Type: "row", Values: rowObject(report.Result.Columns, row)}
		if err := writeNDJSONLine(out, entry); err != nil {
			return err
		}
	}

	return nil
}

func writeNDJSONLine(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal NDJSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
