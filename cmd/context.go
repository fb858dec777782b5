package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/masmgr/gitsql/config"
	"github.com/masmgr/gitsql/internal/git"
	"github.com/masmgr/gitsql/internal/logging"
	"github.com/masmgr/gitsql/internal/output"
	"github.com/masmgr/gitsql/internal/vtab"
)

// CommandContext holds common state for command execution.
// It encapsulates the shared setup logic across all commands.
type CommandContext struct {
	Config   *config.Config
	Logger   *zap.Logger
	RepoPath string
	Registry *vtab.Registry
}

// NewCommandContext creates a context from CLI flags.
// It loads configuration, builds the logger, and registers the relations.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	filter, err := git.NewPathFilter(cfg.Filters.Include, cfg.Filters.Exclude)
	if err != nil {
		return nil, fmt.Errorf("invalid path filter: %w", err)
	}

	repoPath := cfg.Repository.DefaultPath
	registry := vtab.DefaultRegistry(vtab.Options{
		DefaultRepository: repoPath,
		Filter:            filter,
		Logger:            logger,
	})

	logger.Debug("command context ready",
		zap.String("command", c.Command.Name),
		zap.String("repository", repoPath),
		zap.Strings("include", cfg.Filters.Include),
		zap.Strings("exclude", cfg.Filters.Exclude),
	)

	return &CommandContext{
		Config:   cfg,
		Logger:   logger,
		RepoPath: repoPath,
		Registry: registry,
	}, nil
}

// Close flushes the logger.
func (ctx *CommandContext) Close() {
	_ = ctx.Logger.Sync()
}

// Relation returns the registered relation called name.
func (ctx *CommandContext) Relation(name string) (vtab.Relation, error) {
	rel, ok := ctx.Registry.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown relation %q", name)
	}
	return rel, nil
}

// OutputOptions creates OutputOptions from config and CLI flags.
func (ctx *CommandContext) OutputOptions(c *cli.Context) output.OutputOptions {
	return output.OutputOptions{
		Format:     getOutputFormat(ctx.Config.Output.Format),
		Top:        ctx.Config.Output.Top,
		OutputPath: c.String("output"),
	}
}
