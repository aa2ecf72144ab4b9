package main

import (
	"errors"

	"bookcatalog/internal/isbn"

	"github.com/urfave/cli/v2"
)

type isbnValidation struct {
	ISBN    string `json:"isbn"`
	IsValid bool   `json:"is_valid"`
	Message string `json:"message"`
}

func isbnCommand() *cli.Command {
	return &cli.Command{
		Name:  "isbn",
		Usage: "ISBN utilities",
		Subcommands: []*cli.Command{
			{
				Name:      "validate",
				Usage:     "Check an ISBN-10 or ISBN-13 checksum",
				ArgsUsage: "ISBN",
				Action:    isbnValidate,
			},
		},
	}
}

func isbnValidate(c *cli.Context) error {
	code := c.Args().First()
	if code == "" {
		return errors.New("an ISBN argument is required")
	}

	res := isbnValidation{ISBN: code, IsValid: isbn.Valid(code), Message: "ISBN is invalid"}
	if res.IsValid {
		res.Message = "ISBN is valid"
	}
	return writeJSON(c.App.Writer, res)
}
