package cmd

import (
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitsql/internal/sqlitevt"
)

// QueryCmd returns the query command.
func QueryCmd() *cli.Command {
	flags := append(repoFlags(), outputFlags()...)
	flags = append(flags, bugfixFlags()...)

	return &cli.Command{
		Name:      "query",
		Aliases:   []string{"q"},
		Usage:     "Run SQL over the commits, commit_info and stats tables",
		ArgsUsage: "SQL",
		Description: `Tables:
   commits(hash, message, author_name, author_email, author_when, committer_name,
           committer_email, committer_when, is_merge, parent_1, parent_2,
           repository HIDDEN, revision HIDDEN)
   commit_info(...)  same columns, the bound revision only
   stats(file_name, additions, deletions, repository HIDDEN, hash HIDDEN)

Functions:
   is_bugfix(message)
   change_entropy(additions, deletions)  aggregate

Example:
   gitsql query "SELECT c.hash, sum(s.additions) FROM commits c JOIN stats s ON s.hash = c.hash GROUP BY c.hash"`,
		Flags:  flags,
		Action: queryAction,
	}
}

func queryAction(c *cli.Context) error {
	query := c.Args().First()
	if query == "" {
		return errors.New("query requires an SQL argument")
	}

	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	defer ctx.Close()

	detector, err := newDetector(c, ctx)
	if err != nil {
		return err
	}

	engine, err := sqlitevt.Open(sqlitevt.Options{
		Registry: ctx.Registry,
		Bugfix:   detector,
		Logger:   ctx.Logger,
	})
	if err != nil {
		return err
	}
	defer engine.Close()

	rs, err := engine.Query(c.Context, query)
	if err != nil {
		return err
	}

	return writeReport(c, ctx, "query", query, rs)
}
