// Command leaguereport renders tab-separated league reports from a YAML
// fixture, without running the HTTP server.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/mkovel/pitchside/internal/adapters/report"
	"github.com/mkovel/pitchside/internal/adapters/repository"
	"github.com/mkovel/pitchside/internal/seed"
)

func main() {
	app := &cli.App{
		Name:  "leaguereport",
		Usage: "render tab-separated league reports from a YAML fixture",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "fixture",
				Aliases:  []string{"f"},
				Usage:    "path to the YAML league fixture",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "output file (defaults to stdout)",
			},
		},
		Commands: []*cli.Command{
			reportCommand("players", "one line per player with roster slot", report.Players),
			reportCommand("teams", "one line per team with city and coach", report.Teams),
			reportCommand("matches", "one line per match with its score", report.Matches),
			reportCommand("standings", "the ranked league table", report.Standings),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "leaguereport:", err)
		os.Exit(1)
	}
}

func reportCommand(name, usage string, render func(context.Context, repository.Store, io.Writer) error) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: usage,
		Action: func(c *cli.Context) error {
			ctx := c.Context

			store := repository.NewMemStore(ctx)
			if err := seed.Load(ctx, store, c.String("fixture")); err != nil {
				return fmt.Errorf("load fixture: %w", err)
			}

			w := io.Writer(os.Stdout)
			if path := c.String("out"); path != "" {
				f, err := os.Create(path)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return render(ctx, store, w)
		},
	}
}
