package output

import (
	"encoding/csv"
	"os"
)

// CSVWriter writes reports as CSV. NULL is written as an empty field.
type CSVWriter struct{}

// Write outputs the report as CSV.
func (w *CSVWriter) Write(report *QueryReport, options OutputOptions) error {
	rows := limitTop(report.Result.Rows, options.Top)

	writer, file, err := createCSVWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	// Write header
	if err := writer.Write(report.Result.Columns); err != nil {
		return err
	}

	// Write data
	for _, row := range rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = formatValue(v, "")
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func createCSVWriter(outputPath string) (*csv.Writer, *os.File, error) {
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return nil, nil, err
		}
		return csv.NewWriter(file), file, nil
	}
	return csv.NewWriter(os.Stdout), nil, nil
}
