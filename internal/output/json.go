package output

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// JSONWriter writes reports as a single JSON document.
type JSONWriter struct{}

// JSONReport is the JSON output structure.
type JSONReport struct {
	Title       string           `json:"title"`
	Source      string           `json:"source"`
	GeneratedAt string           `json:"generatedAt"`
	Columns     []string         `json:"columns"`
	TotalRows   int              `json:"totalRows"`
	Rows        []map[string]any `json:"rows"`
}

// Write outputs the report as JSON.
func (w *JSONWriter) Write(report *QueryReport, options OutputOptions) error {
	rows := limitTop(report.Result.Rows, options.Top)

	jsonRows := make([]map[string]any, len(rows))
	for i, row := range rows {
		jsonRows[i] = rowObject(report.Result.Columns, row)
	}

	jsonReport := JSONReport{
		Title:       report.Title,
		Source:      report.Source,
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
		Columns:     report.Result.Columns,
		TotalRows:   len(report.Result.Rows),
		Rows:        jsonRows,
	}

	return writeJSON(jsonReport, options.OutputPath)
}

func writeJSON(data interface{}, outputPath string) error {
	encoder := json.NewEncoder(os.Stdout)
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		defer file.Close()
		encoder = json.NewEncoder(file)
	}

	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
