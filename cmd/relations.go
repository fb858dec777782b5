package cmd

import (
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitsql/internal/vtab"
)

// CommitsCmd returns the commits command.
func CommitsCmd() *cli.Command {
	flags := append(repoFlags(), outputFlags()...)
	flags = append(flags, bugfixFlags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:  "rev",
			Usage: "Revision whose ancestry is listed (default: HEAD)",
		},
		&cli.BoolFlag{
			Name:  "bugfix-only",
			Usage: "Only list commits whose message matches a bugfix pattern",
		},
	)

	return &cli.Command{
		Name:   "commits",
		Usage:  "List the commits reachable from a revision",
		Flags:  flags,
		Action: commitsAction,
	}
}

// CommitCmd returns the commit command.
func CommitCmd() *cli.Command {
	flags := append(repoFlags(), outputFlags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:     "rev",
			Usage:    "Revision to show",
			Required: true,
		},
	)

	return &cli.Command{
		Name:   "commit",
		Usage:  "Show a single commit",
		Flags:  flags,
		Action: commitAction,
	}
}

// StatsCmd returns the stats command.
func StatsCmd() *cli.Command {
	flags := append(repoFlags(), outputFlags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:  "rev",
			Usage: "Commit whose changes are counted (default: HEAD)",
		},
	)

	return &cli.Command{
		Name:   "stats",
		Usage:  "Show per-file added and deleted lines of a commit",
		Flags:  flags,
		Action: statsAction,
	}
}

func commitsAction(c *cli.Context) error {
	return scanRelation(c, "commits", "revision", func(ctx *CommandContext, rs *vtab.ResultSet) (*vtab.ResultSet, error) {
		if !c.Bool("bugfix-only") {
			return rs, nil
		}
		detector, err := newDetector(c, ctx)
		if err != nil {
			return nil, err
		}
		return filterRows(rs, "message", detector.MatchValue)
	})
}

func commitAction(c *cli.Context) error {
	return scanRelation(c, "commit_info", "revision", nil)
}

func statsAction(c *cli.Context) error {
	return scanRelation(c, "stats", "hash", nil)
}

type resultHook func(ctx *CommandContext, rs *vtab.ResultSet) (*vtab.ResultSet, error)

// scanRelation binds --repo and --rev to the relation's hidden columns and
// writes every row.
func scanRelation(c *cli.Context, name, revColumn string, hook resultHook) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	defer ctx.Close()

	rel, err := ctx.Relation(name)
	if err != nil {
		return err
	}

	params := map[string]string{}
	if repo := c.String("repo"); repo != "" {
		params["repository"] = repo
	}
	if rev := c.String("rev"); rev != "" {
		params[revColumn] = rev
	}

	rs, err := vtab.Scan(rel, params)
	if err != nil {
		return err
	}
	if hook != nil {
		if rs, err = hook(ctx, rs); err != nil {
			return err
		}
	}

	return writeReport(c, ctx, name, ctx.RepoPath, rs)
}

// filterRows keeps the rows whose column value satisfies keep.
func filterRows(rs *vtab.ResultSet, column string, keep func(any) bool) (*vtab.ResultSet, error) {
	idx := -1
	for i, c := range rs.Columns {
		if c == column {
			idx = i
		}
	}
	if idx < 0 {
		return nil, errors.New("no column " + column)
	}

	out := &vtab.ResultSet{Columns: rs.Columns}
	for _, row := range rs.Rows {
		if keep(row[idx]) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}
