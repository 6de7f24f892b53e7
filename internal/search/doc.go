// Package search holds the search page's state machine and network flows.
//
// State is the page's owned record: the raw query, the committed query,
// the fetch state (loading, error, results) and the trending cache. It
// changes only through its transition methods, so the whole page can be
// exercised without rendering anything.
//
// Debouncer turns keystrokes into committed queries. Service performs the
// catalog fetch and the trend reads and writes.
//
// Request ordering: each fetch gets a sequence number from BeginFetch.
// FinishFetch applies only the newest one, so a slow response for an old
// query cannot overwrite results for a newer query.
package search
