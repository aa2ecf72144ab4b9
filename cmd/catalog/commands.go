package main

import (
	"errors"
	"fmt"
	"os"

	"bookcatalog/internal/catalog"
	"bookcatalog/internal/ingest"

	"github.com/urfave/cli/v2"
)

func (a *app) ingestAction(c *cli.Context) error {
	f, err := os.Open(c.String("file"))
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	records, err := ingest.ParseCSV(f)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return errors.New("no valid records found in CSV")
	}

	e, err := a.newEnv(c.Context, c.Bool("dry-run"))
	if err != nil {
		return err
	}
	defer e.Close()

	out, err := ingest.NewService(e.catalog).Ingest(c.Context, records)
	if err != nil {
		return err
	}
	return writeJSON(c.App.Writer, out)
}

func (a *app) searchAction(c *cli.Context) error {
	e, err := a.newEnv(c.Context, false)
	if err != nil {
		return err
	}
	defer e.Close()

	res, err := e.catalog.SearchBooks(c.Context, catalog.SearchBooksParams{
		Title:      c.String("title"),
		AuthorName: c.String("author"),
		Page:       c.Int("page"),
		PageSize:   c.Int("page-size"),
	})
	if err != nil {
		return err
	}
	return writeJSON(c.App.Writer, res)
}

func (a *app) authorsAction(c *cli.Context) error {
	e, err := a.newEnv(c.Context, false)
	if err != nil {
		return err
	}
	defer e.Close()

	res, err := e.catalog.ListAuthors(c.Context, catalog.ListAuthorsParams{
		Name:     c.String("name"),
		Page:     c.Int("page"),
		PageSize: c.Int("page-size"),
	})
	if err != nil {
		return err
	}
	return writeJSON(c.App.Writer, res)
}
