package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

// Config captures everything reel needs to start.
type Config struct {
	Catalog  Catalog
	Trending Trending
	Debounce time.Duration
	LogPath  string
}

// Catalog locates the movie catalog API.
type Catalog struct {
	BaseURL   string
	Token     string
	Language  string
	ImageBase string
}

// Trending selects and configures the search-count store.
type Trending struct {
	Backend    string
	SQLitePath string
	Appwrite   Appwrite
}

// Appwrite identifies one Appwrite collection.
type Appwrite struct {
	Endpoint     string
	ProjectID    string
	DatabaseID   string
	CollectionID string
	APIKey       string
}

// Store backends.
const (
	BackendAppwrite = "appwrite"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

const (
	defaultConfigPath  = "~/.config/reel/config.toml"
	defaultSQLitePath  = "~/.local/share/reel/trending.db"
	defaultLogPath     = "~/.local/state/reel/reel.log"
	defaultBaseURL     = "https://api.themoviedb.org/3"
	defaultLanguage    = "en-US"
	defaultImageBase   = "https://image.tmdb.org/t/p/w500"
	defaultAppwriteURL = "https://cloud.appwrite.io/v1"
	defaultDebounce    = 500 * time.Millisecond
	envCatalogToken    = "TMDB_API_TOKEN"
	envAppwriteKey     = "APPWRITE_API_KEY"
	envAppwriteProject = "APPWRITE_PROJECT_ID"
)

type rawConfig struct {
	LogPath string `toml:"log_path"`
	Catalog struct {
		BaseURL   string `toml:"base_url"`
		Token     string `toml:"token"`
		Language  string `toml:"language"`
		ImageBase string `toml:"image_base"`
	} `toml:"catalog"`
	Trending struct {
		Backend    string `toml:"backend"`
		SQLitePath string `toml:"sqlite_path"`
		Appwrite   struct {
			Endpoint     string `toml:"endpoint"`
			ProjectID    string `toml:"project_id"`
			DatabaseID   string `toml:"database_id"`
			CollectionID string `toml:"collection_id"`
			APIKey       string `toml:"api_key"`
		} `toml:"appwrite"`
	} `toml:"trending"`
	UI struct {
		DebounceMS int `toml:"debounce_ms"`
	} `toml:"ui"`
}

// Load locates and parses the reel config, falling back to defaults when missing.
// Secrets left empty in the file are read from the environment.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var raw rawConfig
	file, err := os.Open(resolved)
	switch {
	case err == nil:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	return fromRaw(raw)
}

func fromRaw(raw rawConfig) (Config, error) {
	cfg := Config{
		Catalog: Catalog{
			BaseURL:   orDefault(raw.Catalog.BaseURL, defaultBaseURL),
			Token:     orEnv(raw.Catalog.Token, envCatalogToken),
			ImageBase: orDefault(raw.Catalog.ImageBase, defaultImageBase),
		},
		Trending: Trending{
			Appwrite: Appwrite{
				Endpoint:     orDefault(raw.Trending.Appwrite.Endpoint, defaultAppwriteURL),
				ProjectID:    orEnv(raw.Trending.Appwrite.ProjectID, envAppwriteProject),
				DatabaseID:   strings.TrimSpace(raw.Trending.Appwrite.DatabaseID),
				CollectionID: strings.TrimSpace(raw.Trending.Appwrite.CollectionID),
				APIKey:       orEnv(raw.Trending.Appwrite.APIKey, envAppwriteKey),
			},
		},
		Debounce: defaultDebounce,
		LogPath:  mustExpand(orDefault(raw.LogPath, defaultLogPath)),
	}

	lang, err := normalizeLanguage(raw.Catalog.Language)
	if err != nil {
		return Config{}, err
	}
	cfg.Catalog.Language = lang

	if ms := raw.UI.DebounceMS; ms > 0 {
		cfg.Debounce = time.Duration(ms) * time.Millisecond
	} else if ms < 0 {
		return Config{}, fmt.Errorf("ui.debounce_ms must not be negative, got %d", ms)
	}

	backend := strings.ToLower(strings.TrimSpace(raw.Trending.Backend))
	if backend == "" {
		backend = BackendSQLite
		if cfg.Trending.Appwrite.ProjectID != "" {
			backend = BackendAppwrite
		}
	}
	switch backend {
	case BackendAppwrite:
		a := cfg.Trending.Appwrite
		if a.ProjectID == "" || a.DatabaseID == "" || a.CollectionID == "" {
			return Config{}, fmt.Errorf("trending.appwrite requires project_id, database_id and collection_id")
		}
	case BackendSQLite, BackendMemory:
	default:
		return Config{}, fmt.Errorf("unknown trending.backend %q", raw.Trending.Backend)
	}
	cfg.Trending.Backend = backend
	cfg.Trending.SQLitePath = mustExpand(orDefault(raw.Trending.SQLitePath, defaultSQLitePath))

	return cfg, nil
}

// normalizeLanguage canonicalises a BCP 47 tag such as "en-us" to "en-US".
func normalizeLanguage(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return defaultLanguage, nil
	}
	tag, err := language.Parse(value)
	if err != nil {
		return "", fmt.Errorf("catalog.language %q: %w", value, err)
	}
	return tag.String(), nil
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func orEnv(value, key string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return strings.TrimSpace(os.Getenv(key))
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
