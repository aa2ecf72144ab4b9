package main

import (
	"errors"
	"fmt"

	"bookcatalog/internal/config"
	"bookcatalog/internal/platform/postgres"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/urfave/cli/v2"
)

func migrateAction(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	command := c.String("command")
	dir := cfg.MigrationsDir

	if command == "create" {
		name := c.String("name")
		if name == "" {
			return errors.New("name is required for 'create' command")
		}
		if err := goose.Create(nil, dir, name, "sql"); err != nil {
			return fmt.Errorf("create migration: %w", err)
		}
		fmt.Fprintf(c.App.Writer, "Migration created: %s\n", name)
		return nil
	}

	switch command {
	case "up", "down", "status":
	default:
		return fmt.Errorf("unknown command: %s. Use: up, down, status, create", command)
	}

	pool, err := postgres.Open(c.Context, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch command {
	case "up":
		if err := goose.UpContext(c.Context, db, dir); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		fmt.Fprintln(c.App.Writer, "Migrations applied successfully")
	case "down":
		if err := goose.DownContext(c.Context, db, dir); err != nil {
			return fmt.Errorf("rollback migrations: %w", err)
		}
		fmt.Fprintln(c.App.Writer, "Migrations rolled back successfully")
	case "status":
		if err := goose.StatusContext(c.Context, db, dir); err != nil {
			return fmt.Errorf("check migration status: %w", err)
		}
	}
	return nil
}
