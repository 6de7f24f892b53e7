// Package trending aggregates search counts into a "trending" list.
//
// The Aggregator has two operations. UpdateSearchCount looks up the document
// for a search term and either bumps its count or creates it from the top
// catalog result. GetTrendingMovies reads the five most counted documents.
//
// Storage sits behind the Store interface:
//
//   - AppwriteStore: a collection in an Appwrite project, over REST
//   - SQLiteStore: a local database file
//   - MemoryStore: process memory, mostly for tests
//
// Counts are updated read-modify-write without a transaction. Concurrent
// clients incrementing the same term can lose updates; for a popularity
// counter that is acceptable.
package trending
