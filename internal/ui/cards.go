package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/reel/internal/tmdb"
)

const (
	cardWidth  = 30 // outer width including border
	cardHeight = 4  // two content lines plus border
	cardGap    = 1
)

const notAvailable = "N/A"

// RatingLabel formats the vote average to one decimal, or N/A when unrated.
func RatingLabel(m tmdb.Movie) string {
	if m.VoteAverage == 0 {
		return notAvailable
	}
	return fmt.Sprintf("%.1f", m.VoteAverage)
}

// YearLabel returns the release year, or N/A.
func YearLabel(m tmdb.Movie) string {
	if y := m.Year(); y != "" {
		return y
	}
	return notAvailable
}

// LanguageLabel returns the original language code as reported.
func LanguageLabel(m tmdb.Movie) string {
	return strings.TrimSpace(m.OriginalLanguage)
}

// MetaLine is the "★ 7.4 • en • 2008" line shown under a title.
func MetaLine(m tmdb.Movie) string {
	return "★ " + RatingLabel(m) + " • " + metaDetails(m)
}

func metaDetails(m tmdb.Movie) string {
	if lang := LanguageLabel(m); lang != "" {
		return lang + " • " + YearLabel(m)
	}
	return YearLabel(m)
}

// gridColumns returns how many cards fit across width.
func gridColumns(width int) int {
	cols := (width + cardGap) / (cardWidth + cardGap)
	if cols < 1 {
		return 1
	}
	return cols
}

// renderCard draws one movie card.
func (m Model) renderCard(movie tmdb.Movie, selected bool) string {
	styles := m.theme.Styles()
	inner := cardWidth - 4 // border and padding

	style := styles.Card
	if selected && m.focus == focusGrid {
		style = styles.CardSelected
	}

	title := styles.Text.Bold(true).Render(truncate(movie.Title, inner))
	meta := styles.RatingText.Render("★ "+RatingLabel(movie)) +
		styles.MutedText.Render(" • "+metaDetails(movie))

	return style.Width(cardWidth - 2).Render(title + "\n" + meta)
}

// renderGrid lays cards out in rows, keyed by movie id order.
func (m Model) renderGrid() string {
	movies := m.state.Results
	if len(movies) == 0 {
		return ""
	}
	cols := gridColumns(m.width)
	gap := lipgloss.NewStyle().Width(cardGap).Render("")

	rows := make([]string, 0, (len(movies)+cols-1)/cols)
	for start := 0; start < len(movies); start += cols {
		end := min(start+cols, len(movies))
		cells := make([]string, 0, 2*(end-start))
		for i := start; i < end; i++ {
			if i > start {
				cells = append(cells, gap)
			}
			cells = append(cells, m.renderCard(movies[i], i == m.selected))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// overviewText is the plain-text document shown in the pager for a movie.
func overviewText(movie tmdb.Movie, imageBase string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", movie.Title, YearLabel(movie))
	b.WriteString(MetaLine(movie))
	b.WriteString("\n")
	if movie.OriginalTitle != "" && movie.OriginalTitle != movie.Title {
		fmt.Fprintf(&b, "Original title: %s\n", movie.OriginalTitle)
	}
	if movie.ReleaseDate != "" {
		fmt.Fprintf(&b, "Released: %s\n", movie.ReleaseDate)
	}
	if poster := movie.PosterURL(imageBase); poster != "" {
		fmt.Fprintf(&b, "Poster: %s\n", poster)
	}
	b.WriteString("\n")
	overview := strings.TrimSpace(movie.Overview)
	if overview == "" {
		overview = "No overview available."
	}
	b.WriteString(overview)
	b.WriteString("\n")
	return b.String()
}
