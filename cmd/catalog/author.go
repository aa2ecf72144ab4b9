package main

import (
	"fmt"

	"bookcatalog/internal/catalog"

	"github.com/urfave/cli/v2"
)

func (a *app) authorCommand() *cli.Command {
	return &cli.Command{
		Name:  "author",
		Usage: "Create, show, rename and delete single authors",
		Subcommands: []*cli.Command{
			{
				Name:   "create",
				Usage:  "Create an author under its canonical name",
				Flags:  []cli.Flag{&cli.StringFlag{Name: "name", Required: true}},
				Action: a.authorCreate,
			},
			{
				Name:   "get",
				Usage:  "Show an author",
				Flags:  []cli.Flag{idFlag()},
				Action: a.authorGet,
			},
			{
				Name:   "update",
				Usage:  "Rename an author",
				Flags:  []cli.Flag{idFlag(), &cli.StringFlag{Name: "name"}},
				Action: a.authorUpdate,
			},
			{
				Name:   "delete",
				Usage:  "Delete an author and all of its books",
				Flags:  []cli.Flag{idFlag()},
				Action: a.authorDelete,
			},
		},
	}
}

func (a *app) authorCreate(c *cli.Context) error {
	e, err := a.newEnv(c.Context, false)
	if err != nil {
		return err
	}
	defer e.Close()

	author, err := e.catalog.CreateAuthor(c.Context, catalog.CreateAuthorInput{Name: c.String("name")})
	if err != nil {
		return err
	}
	return writeJSON(c.App.Writer, author)
}

func (a *app) authorGet(c *cli.Context) error {
	e, err := a.newEnv(c.Context, false)
	if err != nil {
		return err
	}
	defer e.Close()

	id := c.String("id")
	author, err := e.catalog.GetAuthor(c.Context, id)
	if err != nil {
		return err
	}
	if author == nil {
		return authorNotFound(id)
	}
	return writeJSON(c.App.Writer, author)
}

func (a *app) authorUpdate(c *cli.Context) error {
	e, err := a.newEnv(c.Context, false)
	if err != nil {
		return err
	}
	defer e.Close()

	id := c.String("id")
	author, err := e.catalog.UpdateAuthor(c.Context, id, catalog.UpdateAuthorInput{Name: stringIfSet(c, "name")})
	if err != nil {
		return err
	}
	if author == nil {
		return authorNotFound(id)
	}
	return writeJSON(c.App.Writer, author)
}

func (a *app) authorDelete(c *cli.Context) error {
	e, err := a.newEnv(c.Context, false)
	if err != nil {
		return err
	}
	defer e.Close()

	id := c.String("id")
	ok, err := e.catalog.DeleteAuthor(c.Context, id)
	if err != nil {
		return err
	}
	if !ok {
		return authorNotFound(id)
	}
	return writeJSON(c.App.Writer, deleted{ID: id, Deleted: true})
}

func authorNotFound(id string) error {
	return fmt.Errorf("author with ID %s not found", id)
}
