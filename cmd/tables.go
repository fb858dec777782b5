package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitsql/internal/vtab"
)

// TablesCmd returns the tables command.
func TablesCmd() *cli.Command {
	return &cli.Command{
		Name:   "tables",
		Usage:  "Describe the available tables and their columns",
		Flags:  outputFlags(),
		Action: tablesAction,
	}
}

func tablesAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	defer ctx.Close()

	return writeReport(c, ctx, "tables", "gitsql", describeTables(ctx.Registry))
}

func describeTables(registry *vtab.Registry) *vtab.ResultSet {
	rs := &vtab.ResultSet{Columns: []string{"table", "position", "column", "type", "parameter"}}
	for _, rel := range registry.Relations() {
		schema := rel.Schema()
		for i, col := range schema.Columns {
			rs.Rows = append(rs.Rows, []any{schema.Name, int64(i), col.Name, string(col.Type), col.Hidden()})
		}
	}
	return rs
}
