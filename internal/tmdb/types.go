package tmdb

import (
	"strings"
	"time"
)

// Page mirrors the list payload returned by /search/movie and /discover/movie.
// Response and Error carry the legacy failure envelope; Success and
// StatusMessage carry TMDB's own.
type Page struct {
	Page          int     `json:"page"`
	Results       []Movie `json:"results"`
	TotalPages    int     `json:"total_pages"`
	TotalResults  int     `json:"total_results"`
	Response      string  `json:"Response,omitempty"`
	Error         string  `json:"Error,omitempty"`
	Success       *bool   `json:"success,omitempty"`
	StatusMessage string  `json:"status_message,omitempty"`
}

// Failed reports whether the payload signals an application-level failure.
func (p Page) Failed() bool {
	if strings.EqualFold(strings.TrimSpace(p.Response), "false") {
		return true
	}
	return p.Success != nil && !*p.Success
}

// FailureMessage returns the API-provided failure text, if any.
func (p Page) FailureMessage() string {
	if msg := strings.TrimSpace(p.Error); msg != "" {
		return msg
	}
	return strings.TrimSpace(p.StatusMessage)
}

// Movie describes a catalog entry in transport-friendly form.
type Movie struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"`
	OriginalLanguage string  `json:"original_language"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	Adult            bool    `json:"adult"`
	Video            bool    `json:"video"`
	GenreIDs         []int   `json:"genre_ids"`
}

// Year returns the release year, or an empty string when unknown.
func (m Movie) Year() string {
	if t := m.ParsedReleaseDate(); !t.IsZero() {
		return t.Format("2006")
	}
	if year, _, ok := strings.Cut(strings.TrimSpace(m.ReleaseDate), "-"); ok && len(year) == 4 {
		return year
	}
	return ""
}

// ParsedReleaseDate returns the release date as time.Time when possible.
func (m Movie) ParsedReleaseDate() time.Time {
	value := strings.TrimSpace(m.ReleaseDate)
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

// PosterURL joins the poster path onto an image base such as
// https://image.tmdb.org/t/p/w500. It returns "" when the movie has no poster.
func (m Movie) PosterURL(imageBase string) string {
	path := strings.TrimSpace(m.PosterPath)
	if path == "" {
		return ""
	}
	return strings.TrimSuffix(imageBase, "/") + "/" + strings.TrimPrefix(path, "/")
}
