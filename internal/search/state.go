package search

import (
	"github.com/five82/reel/internal/tmdb"
	"github.com/five82/reel/internal/trending"
)

// Mode is what the results section currently shows.
type Mode int

const (
	ModeResults Mode = iota
	ModeLoading
	ModeError
)

// Request identifies one fetch. Seq increases with every BeginFetch.
type Request struct {
	Seq   uint64
	Query string
}

// State is the search page's owned state record. It is mutated only through
// its transition methods and is not safe for concurrent use; the UI event
// loop owns it.
type State struct {
	Query          string
	CommittedQuery string
	Loading        bool
	Error          string
	Results        []tmdb.Movie
	Trending       []trending.Entry

	seq uint64
}

// SetQuery records a keystroke. It reports whether the value changed.
func (s *State) SetQuery(q string) bool {
	if s.Query == q {
		return false
	}
	s.Query = q
	return true
}

// Commit promotes a settled query. It reports whether the committed value
// changed, which is the only case that should trigger a fetch.
func (s *State) Commit(q string) bool {
	if s.CommittedQuery == q {
		return false
	}
	s.CommittedQuery = q
	return true
}

// BeginFetch enters the loading state for query and returns the request
// token the result must be delivered with.
func (s *State) BeginFetch(query string) Request {
	s.seq++
	s.Loading = true
	s.Error = ""
	return Request{Seq: s.seq, Query: query}
}

// FinishFetch applies res if req is the latest issued request. Responses to
// superseded requests are dropped and leave loading untouched because a
// newer request is still in flight. It reports whether res was applied.
func (s *State) FinishFetch(req Request, res Result) bool {
	if req.Seq != s.seq {
		return false
	}
	s.Loading = false
	if res.Err != "" {
		s.Error = res.Err
		s.Results = nil
		return true
	}
	s.Error = ""
	s.Results = res.Movies
	return true
}

// SetTrending replaces the cached trending list.
func (s *State) SetTrending(entries []trending.Entry) {
	s.Trending = entries
}

// Mode derives the active display mode. Loading wins over error, error
// wins over results.
func (s State) Mode() Mode {
	switch {
	case s.Loading:
		return ModeLoading
	case s.Error != "":
		return ModeError
	default:
		return ModeResults
	}
}

// LatestSeq returns the sequence number of the last issued request.
func (s State) LatestSeq() uint64 {
	return s.seq
}
