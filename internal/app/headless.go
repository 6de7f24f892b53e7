package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/five82/reel/internal/search"
	"github.com/five82/reel/internal/trending"
	"github.com/five82/reel/internal/ui"
)

// runHeadless mounts the page without a terminal UI: it loads trending, runs
// one fetch for query, waits for the trend write, and prints both.
func runHeadless(ctx context.Context, service *search.Service, query string, w io.Writer) error {
	// LoadTrending logs its own failure; the report just omits the strip.
	entries, _ := service.LoadTrending(ctx)
	res := service.FetchMovies(ctx, query)
	service.Wait()

	if err := writeReport(w, query, entries, res); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if res.Err != "" {
		return errors.New(res.Err)
	}
	return nil
}

func writeReport(w io.Writer, query string, entries []trending.Entry, res search.Result) error {
	heading := lipgloss.NewStyle().Bold(true)

	if len(entries) > 0 {
		if _, err := fmt.Fprintln(w, heading.Render("Trending Movies")); err != nil {
			return err
		}
		for i, entry := range entries {
			if _, err := fmt.Fprintf(w, "%d. %s\n", i+1, entry.Title); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	title := "All Movies"
	if query != "" {
		title = fmt.Sprintf("All Movies matching %q", query)
	}
	if _, err := fmt.Fprintln(w, heading.Render(title)); err != nil {
		return err
	}
	if res.Err != "" {
		_, err := fmt.Fprintln(w, res.Err)
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Title", "Rating", "Lang", "Year")
	for i, movie := range res.Movies {
		t.Row(strconv.Itoa(i+1), movie.Title, ui.RatingLabel(movie), ui.LanguageLabel(movie), ui.YearLabel(movie))
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
