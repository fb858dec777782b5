package output

import (
	"time"

	"github.com/masmgr/gitsql/internal/vtab"
)

// Compile-time interface conformance checks.
var (
	_ ReportWriter = (*ConsoleWriter)(nil)
	_ ReportWriter = (*JSONWriter)(nil)
	_ ReportWriter = (*CSVWriter)(nil)
	_ ReportWriter = (*MarkdownWriter)(nil)
	_ ReportWriter = (*NDJSONWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"
	FormatJSON     OutputFormat = "json"
	FormatCSV      OutputFormat = "csv"
	FormatMarkdown OutputFormat = "markdown"
	FormatNDJSON   OutputFormat = "ndjson"
)

// Formats lists the supported output formats.
var Formats = []OutputFormat{FormatConsole, FormatJSON, FormatCSV, FormatMarkdown, FormatNDJSON}

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	Top        int
	OutputPath string
}

// QueryReport is a result set with the context it was produced in.
type QueryReport struct {
	// Title names the relation or "query".
	Title string
	// Source is the repository path or the SQL text.
	Source      string
	GeneratedAt time.Time
	Result      *vtab.ResultSet
}

// ReportWriter writes query reports.
type ReportWriter interface {
	Write(report *QueryReport, options OutputOptions) error
}

// NewReportWriter creates a report writer for the specified format.
func NewReportWriter(format OutputFormat) ReportWriter {
	switch format {
	case FormatJSON:
		return &JSONWriter{}
	case FormatCSV:
		return &CSVWriter{}
	case FormatMarkdown:
		return &MarkdownWriter{}
	case FormatNDJSON:
		return &NDJSONWriter{}
	default:
		return &ConsoleWriter{}
	}
}
