// Command catalog is the command-line front end of the book catalog.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := newCLI().Run(os.Args); err != nil {
		log.Error().Err(err).Msg("catalog failed")
		os.Exit(1)
	}
}

func newCLI() *cli.App {
	return (&app{openRepo: openPostgres}).cli()
}

func (a *app) cli() *cli.App {
	return &cli.App{
		Name:    "catalog",
		Usage:   "Manage the book catalog",
		Version: fmt.Sprintf("%s (%s)", version, commit),
		Before:  setupLogging,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Bulk-load books from a CSV file (isbn,title,year,author)",
				ArgsUsage: " ",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "CSV `FILE` to ingest; the first line is a header",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Ingest into an in-memory catalog instead of the database",
					},
				},
				Action: a.ingestAction,
			},
			{
				Name:  "search",
				Usage: "Search books by title and author name",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "title", Usage: "Title substring"},
					&cli.StringFlag{Name: "author", Usage: "Author name substring"},
				}, pageFlags()...),
				Action: a.searchAction,
			},
			{
				Name:  "authors",
				Usage: "List authors",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Name substring"},
				}, pageFlags()...),
				Action: a.authorsAction,
			},
			a.bookCommand(),
			a.authorCommand(),
			isbnCommand(),
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "command",
						Usage: "Migration command: up, down, status, create",
						Value: "up",
					},
					&cli.StringFlag{
						Name:  "name",
						Usage: "Name for 'create' command",
					},
				},
				Action: migrateAction,
			},
		},
	}
}

func pageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "page", Value: 1, Usage: "1-based page number"},
		&cli.IntFlag{Name: "page-size", Value: 10, Usage: "Items per page (max 100)"},
	}
}
