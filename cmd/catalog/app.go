package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"bookcatalog/internal/catalog"
	"bookcatalog/internal/config"
	"bookcatalog/internal/cover"
	"bookcatalog/internal/logger"
	"bookcatalog/internal/platform/openlibrary"
	"bookcatalog/internal/platform/postgres"
	"bookcatalog/internal/platform/rediscache"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

const repoTimeout = 5 * time.Second

// env is the wired dependency graph for one command invocation.
type env struct {
	cfg     config.Config
	catalog *catalog.Service
	closers []func()
}

func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
}

func setupLogging(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Setup(logger.Config{Level: cfg.LogLevel, Format: logger.ParseFormat(cfg.LogFormat)})
	return nil
}

// repoOpener returns the catalog repository and a function releasing it.
type repoOpener func(ctx context.Context, cfg config.Config) (catalog.Repository, func(), error)

func openPostgres(ctx context.Context, cfg config.Config) (catalog.Repository, func(), error) {
	pool, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}
	return catalog.NewPostgresRepo(pool, repoTimeout), pool.Close, nil
}

// app holds what the commands share across one process.
type app struct {
	openRepo repoOpener
}

// newEnv wires the catalog service. With inMemory set no database
// connection is opened.
func (a *app) newEnv(ctx context.Context, inMemory bool) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg}

	var repo catalog.Repository
	if inMemory {
		repo = catalog.NewMemoryRepo()
	} else {
		r, release, err := a.openRepo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		e.closers = append(e.closers, release)
		repo = r
	}

	e.catalog = catalog.NewService(repo, newCoverResolver(ctx, e))
	return e, nil
}

func newCoverResolver(ctx context.Context, e *env) *cover.Resolver {
	cfg := e.cfg
	client := openlibrary.NewClient(cfg.OpenLibraryUserAgent, cfg.OpenLibraryRPS, cfg.OpenLibraryMaxRetries,
		openlibrary.WithBaseURL(cfg.OpenLibraryBaseURL))

	opts := []cover.Option{cover.WithTimeout(cfg.CoverLookupTimeout)}
	if cfg.RedisAddr != "" {
		cache := rediscache.NewCoverCache(
			rediscache.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB), cfg.CoverCacheTTL)
		if err := cache.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("cover cache unavailable, continuing without it")
			_ = cache.Close()
		} else {
			e.closers = append(e.closers, func() { _ = cache.Close() })
			opts = append(opts, cover.WithCache(cache))
		}
	}
	return cover.NewResolver(client, opts...)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
