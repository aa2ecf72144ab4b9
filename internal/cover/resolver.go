// Package cover resolves cover-art URLs for ISBNs from an external
// bibliographic lookup. Every failure degrades to "no cover".
package cover

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
)

// Fetcher returns the raw lookup payload for an ISBN.
type Fetcher interface {
	FetchByISBN(ctx context.Context, isbn string) ([]byte, error)
}

// Cache stores resolved cover URLs. Only hits are cached; a miss is looked up
// again next time.
type Cache interface {
	Get(ctx context.Context, isbn string) (string, bool, error)
	Set(ctx context.Context, isbn, url string) error
}

// Resolver looks up cover URLs through a Fetcher, optionally behind a Cache.
type Resolver struct {
	fetcher Fetcher
	cache   Cache
	timeout time.Duration
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCache enables caching of resolved URLs.
func WithCache(c Cache) Option {
	return func(r *Resolver) {
		r.cache = c
	}
}

// WithTimeout bounds a single lookup. Zero means no extra bound.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		r.timeout = d
	}
}

// NewResolver creates a resolver over fetcher. A nil fetcher resolves nothing.
func NewResolver(fetcher Fetcher, opts ...Option) *Resolver {
	r := &Resolver{fetcher: fetcher}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the cover URL for isbn, preferring large over medium over
// small. ok is false when no cover could be found for any reason.
func (r *Resolver) Resolve(ctx context.Context, isbn string) (url string, ok bool) {
	if r == nil || r.fetcher == nil || isbn == "" {
		return "", false
	}

	if r.cache != nil {
		if u, hit, err := r.cache.Get(ctx, isbn); err != nil {
			log.Debug().Err(err).Str("isbn", isbn).Msg("cover cache read failed")
		} else if hit {
			return u, true
		}
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	payload, err := r.fetcher.FetchByISBN(ctx, isbn)
	if err != nil {
		log.Debug().Err(err).Str("isbn", isbn).Msg("cover lookup failed")
		return "", false
	}

	url, ok = ParsePayload(payload)
	if !ok {
		return "", false
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, isbn, url); err != nil {
			log.Debug().Err(err).Str("isbn", isbn).Msg("cover cache write failed")
		}
	}
	return url, true
}

type coverVariants struct {
	Large  string `json:"large"`
	Medium string `json:"medium"`
	Small  string `json:"small"`
}

type bookEntry struct {
	Cover *coverVariants `json:"cover"`
}

// ParsePayload extracts a cover URL from an api/books payload. Entries are
// visited in bibliographic key order; the first entry with any cover variant
// wins.
func ParsePayload(payload []byte) (string, bool) {
	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 || bytes.Equal(payload, []byte("{}")) {
		return "", false
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(payload, &entries); err != nil {
		return "", false
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		var entry bookEntry
		if err := json.Unmarshal(entries[k], &entry); err != nil || entry.Cover == nil {
			continue
		}
		for _, u := range []string{entry.Cover.Large, entry.Cover.Medium, entry.Cover.Small} {
			if u != "" {
				return u, true
			}
		}
	}
	return "", false
}
