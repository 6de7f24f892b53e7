package search

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/five82/reel/internal/tmdb"
	"github.com/five82/reel/internal/trending"
)

// User-visible fetch errors.
const (
	MsgFetchFailed = "Failed to fetch movies"
	MsgTryAgain    = "Error fetching movies. Please try again later."
)

const defaultWriteTimeout = 10 * time.Second

// Trends is the trend aggregator as seen by the page.
type Trends interface {
	UpdateSearchCount(ctx context.Context, term string, top tmdb.Movie) error
	GetTrendingMovies(ctx context.Context) ([]trending.Entry, error)
}

var _ Trends = (*trending.Aggregator)(nil)

// Result is the outcome of one FetchMovies call. Err is empty on success.
type Result struct {
	Query  string
	Movies []tmdb.Movie
	Err    string
}

// Service runs the page's network flows.
type Service struct {
	catalog      tmdb.Catalog
	trends       Trends
	logger       *slog.Logger
	writeTimeout time.Duration
	writes       sync.WaitGroup
}

// NewService wires a catalog and an optional trend aggregator. A nil logger
// discards output.
func NewService(catalog tmdb.Catalog, trends Trends, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		catalog:      catalog,
		trends:       trends,
		logger:       logger.With("component", "search"),
		writeTimeout: defaultWriteTimeout,
	}
}

// FetchMovies looks up query, or popular movies when query is empty. Every
// failure is folded into Result.Err. A successful non-empty search starts a
// detached trend write for the top result; that write never affects the
// returned Result.
func (s *Service) FetchMovies(ctx context.Context, query string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("fetch movies panicked", "query", query, "panic", r)
			res = Result{Query: query, Err: MsgTryAgain}
		}
	}()

	// Wait covers the fetch itself, not only the write it may spawn.
	if query != "" && s.trends != nil {
		s.writes.Add(1)
		defer s.writes.Done()
	}

	var (
		page tmdb.Page
		err  error
	)
	if query != "" {
		page, err = s.catalog.SearchMovies(ctx, query)
	} else {
		page, err = s.catalog.DiscoverMovies(ctx)
	}
	if err != nil {
		s.logger.Error("error fetching movies", "query", query, "error", err)
		return Result{Query: query, Err: MsgTryAgain}
	}
	if page.Failed() {
		msg := page.FailureMessage()
		if msg == "" {
			msg = MsgFetchFailed
		}
		s.logger.Warn("catalog reported failure", "query", query, "message", msg)
		return Result{Query: query, Err: msg}
	}

	movies := page.Results
	if movies == nil {
		movies = []tmdb.Movie{}
	}
	s.logger.Debug("fetched movies", "query", query, "count", len(movies))
	if query != "" && len(movies) > 0 {
		s.recordSearch(ctx, query, movies[0])
	}
	return Result{Query: query, Movies: movies}
}

// LoadTrending reads the trending list. Errors are logged and returned so the
// caller can keep its previous list.
func (s *Service) LoadTrending(ctx context.Context) ([]trending.Entry, error) {
	if s.trends == nil {
		return nil, nil
	}
	entries, err := s.trends.GetTrendingMovies(ctx)
	if err != nil {
		s.logger.Warn("error fetching trending movies", "error", err)
		return nil, err
	}
	return entries, nil
}

// Wait blocks until in-flight searches and the trend writes they start have
// finished.
func (s *Service) Wait() {
	s.writes.Wait()
}

// recordSearch runs the trend write on its own goroutine with a context that
// outlives the fetch. Its errors stop here.
func (s *Service) recordSearch(parent context.Context, term string, top tmdb.Movie) {
	if s.trends == nil {
		return
	}
	s.writes.Add(1)
	go func() {
		defer s.writes.Done()
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("update search count panicked", "term", term, "panic", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), s.writeTimeout)
		defer cancel()
		if err := s.trends.UpdateSearchCount(ctx, term, top); err != nil {
			s.logger.Warn("update search count failed", "term", term, "movie_id", top.ID, "error", err)
			return
		}
		s.logger.Debug("search count updated", "term", term, "movie_id", top.ID)
	}()
}
