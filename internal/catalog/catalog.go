package catalog

import (
	"math"
	"time"
)

// Author owns books. Name is always canonical (see normalize.Text).
type Author struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Book is the stored form of a catalog entry. ISBN is stored cleaned and
// checksum-valid, Title canonical.
type Book struct {
	ID              string    `json:"id"`
	ISBN            string    `json:"isbn"`
	Title           string    `json:"title"`
	CoverURL        *string   `json:"cover_url,omitempty"`
	PublicationYear int       `json:"publication_year"`
	AuthorID        string    `json:"author_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BookView is a book hydrated with its author's name.
type BookView struct {
	Book
	AuthorName string `json:"author_name"`
}

// BookQuery filters books by canonical title and author-name substrings.
// Empty filters are not applied.
type BookQuery struct {
	Title      string
	AuthorName string
	Limit      int
	Offset     int
}

// AuthorQuery filters authors by canonical name substring.
type AuthorQuery struct {
	Name   string
	Limit  int
	Offset int
}

type CreateAuthorInput struct {
	Name string `json:"name"`
}

type UpdateAuthorInput struct {
	Name *string `json:"name,omitempty"`
}

type CreateBookInput struct {
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	PublicationYear int    `json:"publication_year"`
	AuthorID        string `json:"author_id"`
}

// UpdateBookInput changes only the fields that are non-nil.
type UpdateBookInput struct {
	ISBN            *string `json:"isbn,omitempty"`
	Title           *string `json:"title,omitempty"`
	PublicationYear *int    `json:"publication_year,omitempty"`
	AuthorID        *string `json:"author_id,omitempty"`
}

// SearchBooksParams are the caller-facing search parameters. Page is 1-based.
type SearchBooksParams struct {
	Title      string
	AuthorName string
	Page       int
	PageSize   int
}

type ListAuthorsParams struct {
	Name     string
	Page     int
	PageSize int
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	// MaxPage keeps (page-1)*size within an int32 for every page size.
	MaxPage = math.MaxInt32 / MaxPageSize
)

// PagedResult is one page of a filtered result set. TotalCount counts every
// matching row, not just the page.
type PagedResult[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"total_count"`
	PageNumber int `json:"page_number"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

func NewPagedResult[T any](items []T, total, page, size int) PagedResult[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}
	return PagedResult[T]{
		Items:      items,
		TotalCount: total,
		PageNumber: page,
		PageSize:   size,
		TotalPages: pages,
	}
}

// normalizePage clamps page and size and returns the matching offset.
func normalizePage(page, size int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size, (page - 1) * size
}
