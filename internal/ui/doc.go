// Package ui is reel's search page, built on Bubble Tea.
//
// # Layout
//
//	reel  Find Movies You'll Love Without the Hassle
//	╭──────────────────────────────────────────────╮
//	│ ⌕ Search through thousands of movies         │
//	╰──────────────────────────────────────────────╯
//	Trending Movies                    (only when non-empty)
//	1 The Dark Knight   2 Inception   3 ...
//	All Movies
//	spinner | error text | grid of cards
//	footer: focus, result count, hints
//
// # Event Flow
//
// Keystrokes update search.State.Query and schedule a debounce tick. When a
// tick arrives for the newest pending value the query is committed and, if it
// changed, a fetch command runs search.Service.FetchMovies off the event
// loop. Its fetchedMsg is applied only if it answers the latest request, so a
// slow response can never overwrite a newer one.
//
// Mounting the page fetches the empty query (popular movies) and loads the
// trending list once.
//
// # Pager
//
// enter opens the selected movie's overview, and ctrl+l opens the log file,
// in the ov pager via tea.Exec.
package ui
