package catalog

import (
	"context"
	"errors"
	"fmt"

	"bookcatalog/internal/isbn"
	"bookcatalog/internal/normalize"

	"github.com/rs/zerolog/log"
)

// Service implements single-entity catalog operations. Not-found targets are
// reported as nil results or false, never as errors.
type Service struct {
	repo   Repository
	covers CoverResolver
}

// NewService creates a catalog service. covers may be nil, in which case
// books are stored without a cover.
func NewService(repo Repository, covers CoverResolver) *Service {
	return &Service{repo: repo, covers: covers}
}

func persistence(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}

// CreateAuthor stores a new author under the canonical form of in.Name.
func (s *Service) CreateAuthor(ctx context.Context, in CreateAuthorInput) (Author, error) {
	name := normalize.Text(in.Name)
	if err := validateAuthorName(name); err != nil {
		return Author{}, err
	}

	a, err := s.repo.CreateAuthor(ctx, name)
	if err != nil {
		return Author{}, persistence("create author", err)
	}
	return a, nil
}

// FindOrCreateAuthor returns the author whose canonical name matches name,
// creating it when absent. A concurrent insert of the same name is resolved by
// reading the winner back.
func (s *Service) FindOrCreateAuthor(ctx context.Context, name string) (Author, error) {
	canonical := normalize.Text(name)
	if err := validateAuthorName(canonical); err != nil {
		return Author{}, err
	}

	a, err := s.repo.FindAuthorByName(ctx, canonical)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Author{}, persistence("find author", err)
	}

	a, err = s.repo.CreateAuthor(ctx, canonical)
	if errors.Is(err, ErrDuplicateAuthor) {
		a, err = s.repo.FindAuthorByName(ctx, canonical)
		if err != nil {
			return Author{}, persistence("find author after conflict", err)
		}
		return a, nil
	}
	if err != nil {
		return Author{}, persistence("create author", err)
	}

	log.Debug().Str("author_id", a.ID).Str("name", a.Name).Msg("author created")
	return a, nil
}

func (s *Service) GetAuthor(ctx context.Context, id string) (*Author, error) {
	a, err := s.repo.FindAuthorByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, persistence("find author", err)
	}
	return &a, nil
}

// UpdateAuthor renames an author. It returns nil when id does not exist.
func (s *Service) UpdateAuthor(ctx context.Context, id string, in UpdateAuthorInput) (*Author, error) {
	a, err := s.repo.FindAuthorByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, persistence("find author", err)
	}

	if name := supplied(in.Name); name != nil {
		canonical := normalize.Text(*name)
		if err := validateAuthorName(canonical); err != nil {
			return nil, err
		}
		a.Name = canonical
	}

	if err := s.repo.UpdateAuthor(ctx, &a); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, persistence("update author", err)
	}
	return &a, nil
}

// DeleteAuthor removes an author and its books. It reports false when id
// does not exist.
func (s *Service) DeleteAuthor(ctx context.Context, id string) (bool, error) {
	ok, err := s.repo.DeleteAuthor(ctx, id)
	if err != nil {
		return false, persistence("delete author", err)
	}
	return ok, nil
}

func (s *Service) ListAuthors(ctx context.Context, p ListAuthorsParams) (PagedResult[Author], error) {
	page, size, offset := normalizePage(p.Page, p.PageSize)
	items, total, err := s.repo.ListAuthors(ctx, AuthorQuery{
		Name:   normalize.Text(p.Name),
		Limit:  size,
		Offset: offset,
	})
	if err != nil {
		return PagedResult[Author]{}, persistence("list authors", err)
	}
	return NewPagedResult(items, total, page, size), nil
}

// CreateBook validates the ISBN, resolves a cover best-effort, normalizes the
// title and stores the book. The ISBN is stored in cleaned form.
func (s *Service) CreateBook(ctx context.Context, in CreateBookInput) (BookView, error) {
	if !isbn.Valid(in.ISBN) {
		return BookView{}, fmt.Errorf("%w: %s", ErrInvalidIdentifier, in.ISBN)
	}
	if err := in.Validate(); err != nil {
		return BookView{}, invalidInput(err)
	}

	b := &Book{
		ISBN:            isbn.Clean(in.ISBN),
		Title:           normalize.Text(in.Title),
		PublicationYear: in.PublicationYear,
		AuthorID:        in.AuthorID,
	}
	b.CoverURL = s.resolveCover(ctx, b.ISBN)

	if err := s.repo.CreateBook(ctx, b); err != nil {
		return BookView{}, persistence("create book", err)
	}

	view, err := s.repo.FindBookByID(ctx, b.ID)
	if err != nil {
		return BookView{}, persistence("load created book", err)
	}
	return view, nil
}

func (s *Service) GetBook(ctx context.Context, id string) (*BookView, error) {
	view, err := s.repo.FindBookByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, persistence("find book", err)
	}
	return &view, nil
}

// UpdateBook applies the supplied fields of in. A new ISBN is validated the
// same way as on create and re-resolves the cover. It returns nil when id does
// not exist.
func (s *Service) UpdateBook(ctx context.Context, id string, in UpdateBookInput) (*BookView, error) {
	current, err := s.repo.FindBookByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, persistence("find book", err)
	}

	in.ISBN = supplied(in.ISBN)
	in.Title = supplied(in.Title)
	in.AuthorID = supplied(in.AuthorID)

	if in.ISBN != nil && !isbn.Valid(*in.ISBN) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidIdentifier, *in.ISBN)
	}
	if err := in.Validate(); err != nil {
		return nil, invalidInput(err)
	}

	b := current.Book
	if in.ISBN != nil {
		b.ISBN = isbn.Clean(*in.ISBN)
		b.CoverURL = s.resolveCover(ctx, b.ISBN)
	}
	if in.Title != nil {
		b.Title = normalize.Text(*in.Title)
	}
	if in.PublicationYear != nil {
		b.PublicationYear = *in.PublicationYear
	}
	if in.AuthorID != nil {
		b.AuthorID = *in.AuthorID
	}

	if err := s.repo.UpdateBook(ctx, &b); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, persistence("update book", err)
	}

	view, err := s.repo.FindBookByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, persistence("load updated book", err)
	}
	return &view, nil
}

func (s *Service) DeleteBook(ctx context.Context, id string) (bool, error) {
	ok, err := s.repo.DeleteBook(ctx, id)
	if err != nil {
		return false, persistence("delete book", err)
	}
	return ok, nil
}

// SearchBooks filters by canonical title and author-name substrings (ANDed)
// and pages the filtered set.
func (s *Service) SearchBooks(ctx context.Context, p SearchBooksParams) (PagedResult[BookView], error) {
	page, size, offset := normalizePage(p.Page, p.PageSize)
	items, total, err := s.repo.QueryBooks(ctx, BookQuery{
		Title:      normalize.Text(p.Title),
		AuthorName: normalize.Text(p.AuthorName),
		Limit:      size,
		Offset:     offset,
	})
	if err != nil {
		return PagedResult[BookView]{}, persistence("search books", err)
	}
	return NewPagedResult(items, total, page, size), nil
}

func (s *Service) resolveCover(ctx context.Context, code string) *string {
	if s.covers == nil {
		return nil
	}
	u, ok := s.covers.Resolve(ctx, code)
	if !ok {
		return nil
	}
	return &u
}
