package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memAuthor struct {
	seq    int64
	author Author
}

type memBook struct {
	seq  int64
	book Book
}

// MemoryRepo is an in-memory Repository. Entities live in maps keyed by id;
// books refer to authors by id only.
type MemoryRepo struct {
	mu           sync.RWMutex
	seq          int64
	authors      map[string]memAuthor
	authorByName map[string]string
	books        map[string]memBook
	now          func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		authors:      make(map[string]memAuthor),
		authorByName: make(map[string]string),
		books:        make(map[string]memBook),
		now:          time.Now,
	}
}

func (r *MemoryRepo) nextSeq() int64 {
	r.seq++
	return r.seq
}

func (r *MemoryRepo) FindAuthorByName(ctx context.Context, name string) (Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.authorByName[name]
	if !ok {
		return Author{}, ErrNotFound
	}
	return r.authors[id].author, nil
}

func (r *MemoryRepo) FindAuthorByID(ctx context.Context, id string) (Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.authors[id]
	if !ok {
		return Author{}, ErrNotFound
	}
	return a.author, nil
}

func (r *MemoryRepo) CreateAuthor(ctx context.Context, name string) (Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.authorByName[name]; exists {
		return Author{}, ErrDuplicateAuthor
	}

	now := r.now().UTC()
	a := Author{ID: uuid.NewString(), Name: name, CreatedAt: now, UpdatedAt: now}
	r.authors[a.ID] = memAuthor{seq: r.nextSeq(), author: a}
	r.authorByName[name] = a.ID
	return a, nil
}

func (r *MemoryRepo) UpdateAuthor(ctx context.Context, author *Author) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.authors[author.ID]
	if !ok {
		return ErrNotFound
	}
	if owner, exists := r.authorByName[author.Name]; exists && owner != author.ID {
		return ErrDuplicateAuthor
	}

	delete(r.authorByName, cur.author.Name)
	cur.author.Name = author.Name
	cur.author.UpdatedAt = r.now().UTC()
	r.authors[author.ID] = cur
	r.authorByName[author.Name] = author.ID

	*author = cur.author
	return nil
}

// DeleteAuthor removes the author and every book it owns.
func (r *MemoryRepo) DeleteAuthor(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.authors[id]
	if !ok {
		return false, nil
	}
	for bid, b := range r.books {
		if b.book.AuthorID == id {
			delete(r.books, bid)
		}
	}
	delete(r.authorByName, a.author.Name)
	delete(r.authors, id)
	return true, nil
}

func (r *MemoryRepo) ListAuthors(ctx context.Context, q AuthorQuery) ([]Author, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]memAuthor, 0, len(r.authors))
	for _, a := range r.authors {
		if q.Name != "" && !strings.Contains(a.author.Name, q.Name) {
			continue
		}
		matched = append(matched, a)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].author.Name != matched[j].author.Name {
			return matched[i].author.Name < matched[j].author.Name
		}
		return matched[i].seq < matched[j].seq
	})

	lo, hi := window(len(matched), q.Offset, q.Limit)
	out := make([]Author, 0, hi-lo)
	for _, a := range matched[lo:hi] {
		out = append(out, a.author)
	}
	return out, len(matched), nil
}

func (r *MemoryRepo) CreateBook(ctx context.Context, book *Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.authors[book.AuthorID]; !ok {
		return ErrUnknownAuthor
	}

	now := r.now().UTC()
	book.ID = uuid.NewString()
	book.CreatedAt = now
	book.UpdatedAt = now
	r.books[book.ID] = memBook{seq: r.nextSeq(), book: copyBook(*book)}
	return nil
}

func (r *MemoryRepo) FindBookByID(ctx context.Context, id string) (BookView, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[id]
	if !ok {
		return BookView{}, ErrNotFound
	}
	return r.view(b.book), nil
}

func (r *MemoryRepo) UpdateBook(ctx context.Context, book *Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.books[book.ID]
	if !ok {
		return ErrNotFound
	}
	if _, ok := r.authors[book.AuthorID]; !ok {
		return ErrUnknownAuthor
	}

	book.CreatedAt = cur.book.CreatedAt
	book.UpdatedAt = r.now().UTC()
	cur.book = copyBook(*book)
	r.books[book.ID] = cur
	return nil
}

func (r *MemoryRepo) DeleteBook(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return false, nil
	}
	delete(r.books, id)
	return true, nil
}

func (r *MemoryRepo) QueryBooks(ctx context.Context, q BookQuery) ([]BookView, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type row struct {
		seq  int64
		view BookView
	}
	matched := make([]row, 0, len(r.books))
	for _, b := range r.books {
		v := r.view(b.book)
		if q.Title != "" && !strings.Contains(v.Title, q.Title) {
			continue
		}
		if q.AuthorName != "" && !strings.Contains(v.AuthorName, q.AuthorName) {
			continue
		}
		matched = append(matched, row{seq: b.seq, view: v})
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].view.Title != matched[j].view.Title {
			return matched[i].view.Title < matched[j].view.Title
		}
		return matched[i].seq < matched[j].seq
	})

	lo, hi := window(len(matched), q.Offset, q.Limit)
	out := make([]BookView, 0, hi-lo)
	for _, m := range matched[lo:hi] {
		out = append(out, m.view)
	}
	return out, len(matched), nil
}

// view must be called with r.mu held.
func (r *MemoryRepo) view(b Book) BookView {
	return BookView{Book: copyBook(b), AuthorName: r.authors[b.AuthorID].author.Name}
}

func copyBook(b Book) Book {
	if b.CoverURL != nil {
		u := *b.CoverURL
		b.CoverURL = &u
	}
	return b
}

// window returns the [lo, hi) bounds of a page over n rows.
func window(n, offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		offset = n
	}
	hi := n
	if limit > 0 && offset+limit < n {
		hi = offset + limit
	}
	return offset, hi
}
