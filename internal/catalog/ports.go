package catalog

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository_test.go -package=catalog

// Repository is the storage boundary. Lookups return ErrNotFound for missing
// rows; CreateAuthor and UpdateAuthor return ErrDuplicateAuthor on a name
// conflict; CreateBook and UpdateBook return ErrUnknownAuthor for a dangling
// author reference. Every call is durable on return.
type Repository interface {
	FindAuthorByName(ctx context.Context, name string) (Author, error)
	FindAuthorByID(ctx context.Context, id string) (Author, error)
	CreateAuthor(ctx context.Context, name string) (Author, error)
	UpdateAuthor(ctx context.Context, author *Author) error
	DeleteAuthor(ctx context.Context, id string) (bool, error)
	ListAuthors(ctx context.Context, q AuthorQuery) ([]Author, int, error)

	CreateBook(ctx context.Context, book *Book) error
	FindBookByID(ctx context.Context, id string) (BookView, error)
	UpdateBook(ctx context.Context, book *Book) error
	DeleteBook(ctx context.Context, id string) (bool, error)
	QueryBooks(ctx context.Context, q BookQuery) ([]BookView, int, error)
}

// CoverResolver looks up a cover URL. ok is false when there is none.
type CoverResolver interface {
	Resolve(ctx context.Context, isbn string) (url string, ok bool)
}
