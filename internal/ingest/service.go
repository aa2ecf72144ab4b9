package ingest

import (
	"context"
	"errors"
	"time"

	"bookcatalog/internal/catalog"

	"github.com/rs/zerolog/log"
)

// ErrNilBatch is the only batch-level failure: the record sequence itself is
// missing. An empty, non-nil batch is valid.
var ErrNilBatch = errors.New("ingest: nil record batch")

// Catalog is the subset of catalog.Service the engine drives.
type Catalog interface {
	FindOrCreateAuthor(ctx context.Context, name string) (catalog.Author, error)
	CreateBook(ctx context.Context, in catalog.CreateBookInput) (catalog.BookView, error)
}

// Service ingests batches of raw records one at a time, in input order.
// A failing record is reported in the Outcome and processing continues.
type Service struct {
	catalog Catalog
}

func NewService(c Catalog) *Service {
	return &Service{catalog: c}
}

// Ingest processes records sequentially so that later records observe authors
// created by earlier ones in the same batch.
func (s *Service) Ingest(ctx context.Context, records []RawRecord) (Outcome, error) {
	if records == nil {
		return Outcome{}, ErrNilBatch
	}

	started := time.Now()
	log.Info().Int("total", len(records)).Msg("ingest started")

	out := Outcome{
		Total:    len(records),
		Errors:   []string{},
		Failures: []Failure{},
	}
	for i, rec := range records {
		if err := s.ingestOne(ctx, rec); err != nil {
			log.Warn().Err(err).Int("row", i).Str("isbn", rec.ISBN).Msg("ingest record failed")
			out.fail(i, rec, err)
			continue
		}
		out.succeed()
	}

	log.Info().
		Int("total", out.Total).
		Int("successful", out.Successful).
		Int("failed", out.Failed).
		Dur("elapsed", time.Since(started)).
		Msg("ingest finished")
	return out, nil
}

func (s *Service) ingestOne(ctx context.Context, rec RawRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	author, err := s.catalog.FindOrCreateAuthor(ctx, rec.AuthorName)
	if err != nil {
		return err
	}

	_, err = s.catalog.CreateBook(ctx, catalog.CreateBookInput{
		ISBN:            rec.ISBN,
		Title:           rec.Title,
		PublicationYear: rec.PublicationYear,
		AuthorID:        author.ID,
	})
	return err
}
