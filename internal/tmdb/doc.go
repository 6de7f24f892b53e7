// Package tmdb provides an HTTP client for the TMDB movie catalog.
//
// The client exposes the two listings the search page uses:
//
//   - GET {base}/search/movie?query=<urlencoded>
//   - GET {base}/discover/movie?include_adult=false&include_video=false&language=en-US&page=1&sort_by=popularity.desc
//
// Every request carries the same options: GET, Accept: application/json,
// a bearer Authorization header and the reel User-Agent.
//
// Transport errors and non-2xx responses are returned wrapped around
// ErrFetchFailed. A well-formed payload that flags a failure (Response
// "False" or success false) is returned as-is; callers check Page.Failed.
package tmdb
