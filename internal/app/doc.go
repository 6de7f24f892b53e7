// Package app is reel's composition root.
//
// # Overview
//
// Run wires configuration, logging, the catalog client, the trending store,
// and the search service, then hands control to the TUI or, in headless mode,
// performs a single search and prints it.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()          Read ~/.config/reel/config.toml
//	       ├─────> openLogger()           slog text handler on the log file
//	       ├─────> tmdb.NewClient()       Catalog API client
//	       ├─────> openStore()            appwrite, sqlite or memory backend
//	       ├─────> search.NewService()    Fetch flow + detached trend writes
//	       └─────> ui.Run()               Start TUI (blocks)
//	               or runHeadless()       One fetch, printed to stdout
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Configuration file unreadable or invalid
//   - Log file or trending store cannot be opened
//   - Headless fetch reported an error
//
// Everything that happens after the page is up is recoverable: fetch errors
// become the page's error text and trend store errors are only logged.
//
// # Shutdown
//
// Run waits for in-flight searches and the trend writes they start before
// closing the store, so a search still running at quit time is counted.
package app
