package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/reel/internal/search"
)

const tagline = "Find Movies You'll Love Without the Hassle"

// renderMain renders the full page.
func (m Model) renderMain() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTop(),
		m.grid.View(),
		m.renderFooter(),
	)
}

// renderTop renders everything above the results grid.
func (m Model) renderTop() string {
	parts := []string{m.renderHeader(), m.renderSearchBox()}
	if strip := m.renderTrending(); strip != "" {
		parts = append(parts, strip)
	}
	parts = append(parts, m.renderSectionTitle("All Movies"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderHeader shows the logo and tagline on the surface bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	head, tail, _ := strings.Cut(tagline, "Movies")
	line := bg.Render("reel", styles.Logo) + bg.Spaces(2) +
		bg.Render(head, styles.Text) +
		bg.Render("Movies", styles.AccentText.Bold(true)) +
		bg.Render(tail, styles.Text)
	return styles.Header.Width(m.width).Render(line)
}

func (m Model) renderSearchBox() string {
	styles := m.theme.Styles()
	box := styles.SearchBox
	if m.focus == focusInput {
		box = styles.SearchBoxFocused
	}
	return box.Width(max(m.width-2, 10)).Render(m.input.View())
}

// renderTrending lists trending titles by rank. It is empty when there is
// nothing trending.
func (m Model) renderTrending() string {
	entries := m.state.Trending
	if len(entries) == 0 {
		return ""
	}
	styles := m.theme.Styles()

	items := make([]string, 0, len(entries))
	for i, entry := range entries {
		title := entry.Title
		if title == "" {
			title = "Untitled"
		}
		items = append(items, styles.AccentText.Bold(true).Render(fmt.Sprintf("%d", i+1))+" "+styles.Text.Render(truncate(title, 24)))
	}
	row := lipgloss.NewStyle().MaxWidth(max(m.width, 1)).Render(strings.Join(items, "   "))
	return lipgloss.JoinVertical(lipgloss.Left, m.renderSectionTitle("Trending Movies"), row)
}

func (m Model) renderSectionTitle(title string) string {
	return m.theme.Styles().SectionTitle.MarginTop(1).Render(title)
}

// renderResults is the body of the "All Movies" section: a spinner while
// loading, the error text, or the card grid.
func (m Model) renderResults() string {
	styles := m.theme.Styles()
	switch m.state.Mode() {
	case search.ModeLoading:
		return m.spinner.View() + " " + styles.MutedText.Render("Loading movies...")
	case search.ModeError:
		return styles.DangerText.Render(m.state.Error)
	default:
		return m.renderGrid()
	}
}

// renderFooter shows focus, result count, and key hints.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	focus := "search"
	if m.focus == focusGrid {
		focus = "movies"
	}
	parts := []string{
		bg.Render(padRight(focus, 6), styles.AccentText),
		bg.Render(fmt.Sprintf("%d results", len(m.state.Results)), styles.MutedText),
	}
	if q := m.state.CommittedQuery; q != "" {
		parts = append(parts, bg.Render("for \""+truncate(q, 30)+"\"", styles.MutedText))
	}
	if m.notice != "" {
		parts = append(parts, bg.Render(m.notice, styles.DangerText))
	}
	parts = append(parts, bg.Render(m.footerHints(), styles.FaintText))
	return bg.FillLine(styles.Footer.Render(bg.Join(parts, "  ")), m.width)
}

// footerHints lists the keys that act in the focused area.
func (m Model) footerHints() string {
	if m.focus == focusGrid {
		return "tab search  enter open  ctrl+t theme  ? help"
	}
	return "tab movies  esc clear  ctrl+t theme  ctrl+c quit"
}
