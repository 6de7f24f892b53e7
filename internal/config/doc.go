// Package config loads reel's TOML configuration.
//
// # Configuration Discovery
//
// Load reads the given path, or ~/.config/reel/config.toml when the path is
// empty. A missing file is not an error: every field has a default and reel
// works against TMDB with a local SQLite trend store out of the box (it still
// needs a token to get results).
//
// # TOML Format
//
//	log_path = "~/.local/state/reel/reel.log"
//
//	[catalog]
//	base_url   = "https://api.themoviedb.org/3"
//	token      = ""            # or TMDB_API_TOKEN
//	language   = "en-US"
//	image_base = "https://image.tmdb.org/t/p/w500"
//
//	[trending]
//	backend     = "sqlite"     # sqlite, appwrite or memory
//	sqlite_path = "~/.local/share/reel/trending.db"
//
//	[trending.appwrite]
//	endpoint      = "https://cloud.appwrite.io/v1"
//	project_id    = ""         # or APPWRITE_PROJECT_ID
//	database_id   = ""
//	collection_id = ""
//	api_key       = ""         # or APPWRITE_API_KEY
//
//	[ui]
//	debounce_ms = 500
//
// When backend is omitted it is "appwrite" if a project id is known and
// "sqlite" otherwise.
//
// # Validation
//
// Load fails on unreadable or malformed files, unknown backends, an
// incomplete appwrite section, a language that is not a BCP 47 tag, and a
// negative debounce. Paths are trimmed and ~ is expanded.
package config
