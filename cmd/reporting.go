package cmd

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitsql/internal/output"
	"github.com/masmgr/gitsql/internal/vtab"
)

func writeReport(c *cli.Context, ctx *CommandContext, title, source string, rs *vtab.ResultSet) error {
	report := &output.QueryReport{
		Title:       title,
		Source:      source,
		GeneratedAt: time.Now(),
		Result:      rs,
	}
	opts := ctx.OutputOptions(c)
	writer := output.NewReportWriter(opts.Format)
	return writer.Write(report, opts)
}
