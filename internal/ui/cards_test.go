package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/five82/reel/internal/tmdb"
)

func TestLabels(t *testing.T) {
	m := tmdb.Movie{Title: "The Dark Knight", VoteAverage: 8.516, ReleaseDate: "2008-07-16", OriginalLanguage: "en"}
	assert.Equal(t, "8.5", RatingLabel(m))
	assert.Equal(t, "2008", YearLabel(m))
	assert.Equal(t, "en", LanguageLabel(m))
	assert.Equal(t, "★ 8.5 • en • 2008", MetaLine(m))

	var blank tmdb.Movie
	assert.Equal(t, "N/A", RatingLabel(blank))
	assert.Equal(t, "N/A", YearLabel(blank))
	assert.Equal(t, "★ N/A • N/A", MetaLine(blank))
}

func TestGridColumns(t *testing.T) {
	assert.Equal(t, 1, gridColumns(0))
	assert.Equal(t, 1, gridColumns(cardWidth))
	assert.Equal(t, 2, gridColumns(2*cardWidth+cardGap))
	assert.Equal(t, 3, gridColumns(100))
}

func TestOverviewText(t *testing.T) {
	m := tmdb.Movie{Title: "Heat", ReleaseDate: "1995-12-15", PosterPath: "/heat.jpg", Overview: "  A thief and a cop.  "}
	text := overviewText(m, "https://image.tmdb.org/t/p/w500")
	assert.Contains(t, text, "Heat (1995)")
	assert.Contains(t, text, "Poster: https://image.tmdb.org/t/p/w500/heat.jpg")
	assert.Contains(t, text, "\nA thief and a cop.\n")

	assert.Contains(t, overviewText(tmdb.Movie{Title: "X"}, ""), "No overview available.")
}

func TestTruncateAndPad(t *testing.T) {
	assert.Equal(t, "abc", truncate(" abc ", 5))
	assert.Equal(t, "ab...", truncate("abcdefgh", 5))
	assert.Equal(t, "ab", truncate("abcdefgh", 2))
	assert.Equal(t, "ab  ", padRight("ab", 4))
	assert.Equal(t, "abcd", padRight("abcd", 2))
}
