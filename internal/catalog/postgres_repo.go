package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgInvalidText         = "22P02"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// mapError translates driver errors into repository sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrDuplicateAuthor
		case pgForeignKeyViolation:
			return ErrUnknownAuthor
		}
	}
	return err
}

// mapIDError treats malformed uuids as missing rows.
func mapIDError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgInvalidText {
		return ErrNotFound
	}
	return mapError(err)
}

func (r *PostgresRepo) FindAuthorByName(ctx context.Context, name string) (Author, error) {
	const query = `SELECT id, name, created_at, updated_at FROM authors WHERE name = $1`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var a Author
	err := r.db.QueryRow(ctx, query, name).Scan(&a.ID, &a.Name, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return Author{}, mapError(err)
	}
	return a, nil
}

func (r *PostgresRepo) FindAuthorByID(ctx context.Context, id string) (Author, error) {
	const query = `SELECT id, name, created_at, updated_at FROM authors WHERE id = $1`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var a Author
	err := r.db.QueryRow(ctx, query, id).Scan(&a.ID, &a.Name, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return Author{}, mapIDError(err)
	}
	return a, nil
}

func (r *PostgresRepo) CreateAuthor(ctx context.Context, name string) (Author, error) {
	const sql = `
		INSERT INTO authors (id, name, created_at, updated_at)
		VALUES ($1, $2, now(), now())
		RETURNING id, name, created_at, updated_at`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var a Author
	err := r.db.QueryRow(ctx, sql, uuid.NewString(), name).Scan(&a.ID, &a.Name, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return Author{}, mapError(err)
	}
	return a, nil
}

func (r *PostgresRepo) UpdateAuthor(ctx context.Context, author *Author) error {
	const sql = `
		UPDATE authors SET name = $2, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err := r.db.QueryRow(ctx, sql, author.ID, author.Name).Scan(&author.CreatedAt, &author.UpdatedAt)
	return mapIDError(err)
}

// DeleteAuthor relies on ON DELETE CASCADE to remove owned books.
func (r *PostgresRepo) DeleteAuthor(ctx context.Context, id string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		if errors.Is(mapIDError(err), ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresRepo) ListAuthors(ctx context.Context, q AuthorQuery) ([]Author, int, error) {
	clauses := []string{"1=1"}
	args := []any{}
	argn := 1

	if q.Name != "" {
		clauses = append(clauses, fmt.Sprintf("strpos(name, $%d) > 0", argn))
		args = append(args, q.Name)
		argn++
	}

	where := "WHERE " + strings.Join(clauses, " AND ")

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM authors "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := fmt.Sprintf(`
		SELECT id, name, created_at, updated_at
		FROM authors
		%s
		ORDER BY name ASC, created_at ASC, id ASC
		LIMIT $%d OFFSET $%d`,
		where, argn, argn+1)

	argsWithPage := append([]any{}, args...)
	argsWithPage = append(argsWithPage, q.Limit, q.Offset)
	rows, err := r.db.Query(ctx, dataSQL, argsWithPage...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []Author{}
	for rows.Next() {
		var a Author
		if err := rows.Scan(&a.ID, &a.Name, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepo) CreateBook(ctx context.Context, b *Book) error {
	const sql = `
		INSERT INTO books (id, isbn, title, cover_url, publication_year, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		RETURNING created_at, updated_at`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	id := uuid.NewString()
	err := r.db.QueryRow(ctx, sql, id, b.ISBN, b.Title, b.CoverURL, b.PublicationYear, b.AuthorID).
		Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgInvalidText {
			return ErrUnknownAuthor
		}
		return mapError(err)
	}
	b.ID = id
	return nil
}

const bookViewColumns = `
	b.id, b.isbn, b.title, b.cover_url, b.publication_year, b.author_id,
	b.created_at, b.updated_at, a.name`

func scanBookView(row pgx.Row) (BookView, error) {
	var v BookView
	err := row.Scan(
		&v.ID, &v.ISBN, &v.Title, &v.CoverURL, &v.PublicationYear, &v.AuthorID,
		&v.CreatedAt, &v.UpdatedAt, &v.AuthorName,
	)
	return v, err
}

func (r *PostgresRepo) FindBookByID(ctx context.Context, id string) (BookView, error) {
	query := `SELECT ` + bookViewColumns + `
		FROM books b
		JOIN authors a ON a.id = b.author_id
		WHERE b.id = $1`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	v, err := scanBookView(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return BookView{}, mapIDError(err)
	}
	return v, nil
}

func (r *PostgresRepo) UpdateBook(ctx context.Context, b *Book) error {
	const sql = `
		UPDATE books SET
			isbn = $2,
			title = $3,
			cover_url = $4,
			publication_year = $5,
			author_id = $6,
			updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err := r.db.QueryRow(ctx, sql, b.ID, b.ISBN, b.Title, b.CoverURL, b.PublicationYear, b.AuthorID).
		Scan(&b.CreatedAt, &b.UpdatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgInvalidText {
		return ErrUnknownAuthor
	}
	return mapError(err)
}

func (r *PostgresRepo) DeleteBook(ctx context.Context, id string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		if errors.Is(mapIDError(err), ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresRepo) QueryBooks(ctx context.Context, q BookQuery) ([]BookView, int, error) {
	clauses := []string{"1=1"}
	args := []any{}
	argn := 1

	if q.Title != "" {
		clauses = append(clauses, fmt.Sprintf("strpos(b.title, $%d) > 0", argn))
		args = append(args, q.Title)
		argn++
	}

	if q.AuthorName != "" {
		clauses = append(clauses, fmt.Sprintf("strpos(a.name, $%d) > 0", argn))
		args = append(args, q.AuthorName)
		argn++
	}

	where := "WHERE " + strings.Join(clauses, " AND ")
	from := "FROM books b JOIN authors a ON a.id = b.author_id"

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var total int
	if err := r.db.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) %s %s", from, where), args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := fmt.Sprintf(`
		SELECT %s
		%s
		%s
		ORDER BY b.title ASC, b.created_at ASC, b.id ASC
		LIMIT $%d OFFSET $%d`,
		bookViewColumns, from, where, argn, argn+1)

	argsWithPage := append([]any{}, args...)
	argsWithPage = append(argsWithPage, q.Limit, q.Offset)
	rows, err := r.db.Query(ctx, dataSQL, argsWithPage...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []BookView{}
	for rows.Next() {
		v, err := scanBookView(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, v)
	}
	return out, total, rows.Err()
}
