package main

import (
	"fmt"

	"bookcatalog/internal/catalog"

	"github.com/urfave/cli/v2"
)

func idFlag() cli.Flag {
	return &cli.StringFlag{Name: "id", Usage: "Entity id", Required: true}
}

func (a *app) bookCommand() *cli.Command {
	return &cli.Command{
		Name:  "book",
		Usage: "Create, show, update and delete single books",
		Subcommands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a book; the ISBN must pass its checksum",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "isbn", Required: true},
					&cli.StringFlag{Name: "title", Required: true},
					&cli.IntFlag{Name: "year", Usage: "Publication year", Required: true},
					&cli.StringFlag{Name: "author-id", Required: true},
				},
				Action: a.bookCreate,
			},
			{
				Name:   "get",
				Usage:  "Show a book with its author name",
				Flags:  []cli.Flag{idFlag()},
				Action: a.bookGet,
			},
			{
				Name:  "update",
				Usage: "Change the given fields of a book",
				Flags: []cli.Flag{
					idFlag(),
					&cli.StringFlag{Name: "isbn"},
					&cli.StringFlag{Name: "title"},
					&cli.IntFlag{Name: "year", Usage: "Publication year"},
					&cli.StringFlag{Name: "author-id"},
				},
				Action: a.bookUpdate,
			},
			{
				Name:   "delete",
				Usage:  "Delete a book",
				Flags:  []cli.Flag{idFlag()},
				Action: a.bookDelete,
			},
		},
	}
}

func (a *app) bookCreate(c *cli.Context) error {
	e, err := a.newEnv(c.Context, false)
	if err != nil {
		return err
	}
	defer e.Close()

	v, err := e.catalog.CreateBook(c.Context, catalog.CreateBookInput{
		ISBN:            c.String("isbn"),
		Title:           c.String("title"),
		PublicationYear: c.Int("year"),
		AuthorID:        c.String("author-id"),
	})
	if err != nil {
		return err
	}
	return writeJSON(c.App.Writer, v)
}

func (a *app) bookGet(c *cli.Context) error {
	e, err := a.newEnv(c.Context, false)
	if err != nil {
		return err
	}
	defer e.Close()

	id := c.String("id")
	v, err := e.catalog.GetBook(c.Context, id)
	if err != nil {
		return err
	}
	if v == nil {
		return bookNotFound(id)
	}
	return writeJSON(c.App.Writer, v)
}

func (a *app) bookUpdate(c *cli.Context) error {
	e, err := a.newEnv(c.Context, false)
	if err != nil {
		return err
	}
	defer e.Close()

	var in catalog.UpdateBookInput
	in.ISBN = stringIfSet(c, "isbn")
	in.Title = stringIfSet(c, "title")
	in.AuthorID = stringIfSet(c, "author-id")
	if c.IsSet("year") {
		year := c.Int("year")
		in.PublicationYear = &year
	}

	id := c.String("id")
	v, err := e.catalog.UpdateBook(c.Context, id, in)
	if err != nil {
		return err
	}
	if v == nil {
		return bookNotFound(id)
	}
	return writeJSON(c.App.Writer, v)
}

func (a *app) bookDelete(c *cli.Context) error {
	e, err := a.newEnv(c.Context, false)
	if err != nil {
		return err
	}
	defer e.Close()

	id := c.String("id")
	ok, err := e.catalog.DeleteBook(c.Context, id)
	if err != nil {
		return err
	}
	if !ok {
		return bookNotFound(id)
	}
	return writeJSON(c.App.Writer, deleted{ID: id, Deleted: true})
}

type deleted struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

func bookNotFound(id string) error {
	return fmt.Errorf("book with ID %s not found", id)
}

// stringIfSet returns nil unless the flag was given on the command line.
func stringIfSet(c *cli.Context, name string) *string {
	if !c.IsSet(name) {
		return nil
	}
	v := c.String(name)
	return &v
}
