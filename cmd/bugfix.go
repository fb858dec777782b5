package cmd

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitsql/internal/bugfix"
)

func bugfixFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "bug-patterns",
			Usage: "Regex patterns marking bugfix commit messages (can be specified multiple times)",
		},
		&cli.StringFlag{
			Name:    "words",
			Aliases: []string{"w"},
			Usage:   "Bugfix indicator word list, ie: \"fixes,closed\"",
		},
	}
}

// resolveBugPatterns prefers --words, then --bug-patterns (already merged
// into the config), then the configured patterns.
func resolveBugPatterns(c *cli.Context, ctx *CommandContext) []string {
	if words := c.String("words"); words != "" {
		return []string{convertToRegex(words)}
	}
	return ctx.Config.Bugfix.Patterns
}

func newDetector(c *cli.Context, ctx *CommandContext) (*bugfix.Detector, error) {
	detector, err := bugfix.NewDetector(resolveBugPatterns(c, ctx))
	if err != nil {
		return nil, fmt.Errorf("invalid bug pattern: %w", err)
	}
	return detector, nil
}

// convertToRegex turns "fix,close" into a word-bounded alternation.
func convertToRegex(words string) string {
	var parts []string
	for _, w := range strings.Split(words, ",") {
		if w = strings.TrimSpace(w); w != "" {
			parts = append(parts, regexp.QuoteMeta(w))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return `\b(` + strings.Join(parts, "|") + `)\b`
}
