package cmd

import (
	"regexp"
	"testing"

	"github.com/masmgr/gitsql/internal/output"
	"github.com/masmgr/gitsql/internal/vtab"
)

func TestGetOutputFormat(t *testing.T) {
	tests := []struct {
		input string
		want  output.OutputFormat
	}{
		{input: "json", want: output.FormatJSON},
		{input: "csv", want: output.FormatCSV},
		{input: "markdown", want: output.FormatMarkdown},
		{input: "md", want: output.FormatMarkdown},
		{input: "ndjson", want: output.FormatNDJSON},
		{input: "ci", want: output.FormatConsole},
		{input: "", want: output.FormatConsole},
		{input: "unknown", want: output.FormatConsole},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := getOutputFormat(tt.input); got != tt.want {
				t.Fatalf("getOutputFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestConvertToRegex(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Single word", input: "fix", expected: `\b(fix)\b`},
		{name: "Two words", input: "fix,close", expected: `\b(fix|close)\b`},
		{name: "Spaces trimmed", input: " fixed , resolved ", expected: `\b(fixed|resolved)\b`},
		{name: "Metacharacters quoted", input: "c++", expected: `\b(c\+\+)\b`},
		{name: "Empty string", input: "", expected: ""},
		{name: "Only commas", input: ",,", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := convertToRegex(tt.input)
			if result != tt.expected {
				t.Errorf("convertToRegex(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
			if _, err := regexp.Compile(result); err != nil {
				t.Errorf("convertToRegex(%q) produced invalid regex: %v", tt.input, err)
			}
		})
	}
}

func TestFilterRows(t *testing.T) {
	rs := &vtab.ResultSet{
		Columns: []string{"hash", "message"},
		Rows: [][]any{
			{"a", "fix crash"},
			{"b", "add feature"},
			{"c", nil},
		},
	}

	got, err := filterRows(rs, "message", func(v any) bool { return v != nil })
	if err != nil {
		t.Fatalf("filterRows() error = %v", err)
	}
	if len(got.Rows) != 2 || got.Rows[1][0] != "b" {
		t.Errorf("filterRows() rows = %v", got.Rows)
	}

	if _, err := filterRows(rs, "missing", func(any) bool { return true }); err == nil {
		t.Error("filterRows() expected error for unknown column")
	}
}

func TestDescribeTables(t *testing.T) {
	rs := describeTables(vtab.DefaultRegistry(vtab.Options{}))

	// commits and commit have 13 columns each, stats has 5.
	if len(rs.Rows) != 31 {
		t.Fatalf("describeTables() has %d rows, want 31", len(rs.Rows))
	}
	last := rs.Rows[len(rs.Rows)-1]
	if last[0] != "stats" || last[2] != "hash" || last[4] != true {
		t.Errorf("last row = %v", last)
	}
}
