package trending

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/five82/reel/internal/tmdb"
)

// ErrNotFound is returned by Store.FindByTerm when no document matches.
var ErrNotFound = errors.New("search term not found")

const (
	// DefaultLimit is the number of entries shown in the trending strip.
	DefaultLimit = 5

	// DefaultImageBase prefixes poster paths when building poster URLs.
	DefaultImageBase = "https://image.tmdb.org/t/p/w500"
)

// Document is one persisted search-count record.
type Document struct {
	ID         string
	SearchTerm string
	Count      int
	MovieID    int64
	PosterURL  string
	Title      string
}

// Entry is the trending-strip view of a Document.
type Entry struct {
	ID        string
	PosterURL string
	Title     string
}

// Store persists search-count documents in a single collection.
type Store interface {
	// FindByTerm returns the document whose SearchTerm equals term, or ErrNotFound.
	FindByTerm(ctx context.Context, term string) (Document, error)
	// Create inserts doc and returns it with its assigned ID.
	Create(ctx context.Context, doc Document) (Document, error)
	// SetCount overwrites the count of the document with the given id.
	SetCount(ctx context.Context, id string, count int) error
	// Top returns up to limit documents ordered by count descending.
	Top(ctx context.Context, limit int) ([]Document, error)
}

// Aggregator records searches and reads back the most searched terms.
type Aggregator struct {
	store     Store
	imageBase string
	limit     int
}

// AggregatorOption customises an Aggregator.
type AggregatorOption func(*Aggregator)

// WithImageBase sets the prefix used to build poster URLs.
func WithImageBase(base string) AggregatorOption {
	return func(a *Aggregator) {
		if base = strings.TrimSpace(base); base != "" {
			a.imageBase = base
		}
	}
}

// WithLimit overrides the number of trending entries returned.
func WithLimit(n int) AggregatorOption {
	return func(a *Aggregator) {
		if n > 0 {
			a.limit = n
		}
	}
}

// NewAggregator wraps store.
func NewAggregator(store Store, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		store:     store,
		imageBase: DefaultImageBase,
		limit:     DefaultLimit,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// UpdateSearchCount increments the counter for term, creating it from the
// top result on first sight. The read and the write are not atomic; two
// clients racing on the same term may lose an increment.
func (a *Aggregator) UpdateSearchCount(ctx context.Context, term string, top tmdb.Movie) error {
	if a == nil || a.store == nil {
		return fmt.Errorf("aggregator has no store")
	}
	doc, err := a.store.FindByTerm(ctx, term)
	switch {
	case err == nil:
		if err := a.store.SetCount(ctx, doc.ID, doc.Count+1); err != nil {
			return fmt.Errorf("increment %q: %w", term, err)
		}
		return nil
	case errors.Is(err, ErrNotFound):
		_, err := a.store.Create(ctx, Document{
			SearchTerm: term,
			Count:      1,
			MovieID:    top.ID,
			PosterURL:  top.PosterURL(a.imageBase),
			Title:      top.Title,
		})
		if err != nil {
			return fmt.Errorf("create %q: %w", term, err)
		}
		return nil
	default:
		return fmt.Errorf("lookup %q: %w", term, err)
	}
}

// GetTrendingMovies returns the top entries ordered by count descending.
func (a *Aggregator) GetTrendingMovies(ctx context.Context) ([]Entry, error) {
	if a == nil || a.store == nil {
		return nil, fmt.Errorf("aggregator has no store")
	}
	docs, err := a.store.Top(ctx, a.limit)
	if err != nil {
		return nil, fmt.Errorf("list trending: %w", err)
	}
	entries := make([]Entry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, Entry{ID: doc.ID, PosterURL: doc.PosterURL, Title: doc.Title})
	}
	return entries, nil
}
