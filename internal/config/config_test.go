package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(envCatalogToken, "")
	t.Setenv(envAppwriteKey, "")
	t.Setenv(envAppwriteProject, "")
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Catalog.BaseURL != defaultBaseURL {
		t.Fatalf("BaseURL = %q, want %q", cfg.Catalog.BaseURL, defaultBaseURL)
	}
	if cfg.Catalog.Language != "en-US" {
		t.Fatalf("Language = %q, want en-US", cfg.Catalog.Language)
	}
	if cfg.Debounce != 500*time.Millisecond {
		t.Fatalf("Debounce = %v, want 500ms", cfg.Debounce)
	}
	if cfg.Trending.Backend != BackendSQLite {
		t.Fatalf("Backend = %q, want %q", cfg.Trending.Backend, BackendSQLite)
	}
	wantDB, err := ExpandPath(defaultSQLitePath)
	if err != nil {
		t.Fatalf("ExpandPath(defaultSQLitePath) returned error: %v", err)
	}
	if cfg.Trending.SQLitePath != wantDB {
		t.Fatalf("SQLitePath = %q, want %q", cfg.Trending.SQLitePath, wantDB)
	}
	if !strings.HasPrefix(cfg.LogPath, home) {
		t.Fatalf("LogPath = %q, want it under HOME %q", cfg.LogPath, home)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	path := writeConfig(t, `
log_path = "  ~/logs/reel.log  "

[catalog]
base_url = "  https://tmdb.example/3  "
token = " abc "
language = "fr-ca"

[trending]
backend = "Appwrite"

[trending.appwrite]
endpoint = "https://aw.example/v1"
project_id = "p1"
database_id = "d1"
collection_id = "c1"
api_key = "k1"

[ui]
debounce_ms = 250
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Catalog.BaseURL != "https://tmdb.example/3" {
		t.Fatalf("BaseURL = %q", cfg.Catalog.BaseURL)
	}
	if cfg.Catalog.Token != "abc" {
		t.Fatalf("Token = %q, want abc", cfg.Catalog.Token)
	}
	if cfg.Catalog.Language != "fr-CA" {
		t.Fatalf("Language = %q, want fr-CA", cfg.Catalog.Language)
	}
	if cfg.Trending.Backend != BackendAppwrite {
		t.Fatalf("Backend = %q, want appwrite", cfg.Trending.Backend)
	}
	a := cfg.Trending.Appwrite
	if a.Endpoint != "https://aw.example/v1" || a.ProjectID != "p1" || a.DatabaseID != "d1" || a.CollectionID != "c1" || a.APIKey != "k1" {
		t.Fatalf("Appwrite = %#v", a)
	}
	if cfg.Debounce != 250*time.Millisecond {
		t.Fatalf("Debounce = %v, want 250ms", cfg.Debounce)
	}
	if cfg.LogPath != filepath.Join(home, "logs", "reel.log") {
		t.Fatalf("LogPath = %q", cfg.LogPath)
	}
}

func TestLoad_EnvFillsSecrets(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(envCatalogToken, "from-env")
	t.Setenv(envAppwriteKey, "aw-key")
	t.Setenv(envAppwriteProject, "aw-project")

	path := writeConfig(t, `
[trending.appwrite]
database_id = "d"
collection_id = "c"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Catalog.Token != "from-env" {
		t.Fatalf("Token = %q, want from-env", cfg.Catalog.Token)
	}
	if cfg.Trending.Backend != BackendAppwrite {
		t.Fatalf("Backend = %q, want appwrite once a project is set", cfg.Trending.Backend)
	}
	if cfg.Trending.Appwrite.APIKey != "aw-key" || cfg.Trending.Appwrite.ProjectID != "aw-project" {
		t.Fatalf("Appwrite = %#v", cfg.Trending.Appwrite)
	}
}

func TestLoad_Rejects(t *testing.T) {
	cases := map[string]struct {
		body string
		want string
	}{
		"invalid toml":        {`log_path = [`, "parse config"},
		"unknown backend":     {"[trending]\nbackend = \"redis\"", "unknown trending.backend"},
		"incomplete appwrite": {"[trending]\nbackend = \"appwrite\"\n[trending.appwrite]\nproject_id = \"p\"", "requires project_id"},
		"bad language":        {"[catalog]\nlanguage = \"not a language tag\"", "catalog.language"},
		"negative debounce":   {"[ui]\ndebounce_ms = -1", "debounce_ms"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			clearEnv(t)
			_, err := Load(writeConfig(t, tc.body))
			if err == nil {
				t.Fatalf("Load returned nil error, want %q", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("Load error = %q, want it to mention %q", err.Error(), tc.want)
			}
		})
	}
}

func TestLoad_MemoryBackend(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)
	cfg, err := Load(writeConfig(t, "[trending]\nbackend = \"memory\"\n"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Trending.Backend != BackendMemory {
		t.Fatalf("Backend = %q, want memory", cfg.Trending.Backend)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/a/b")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("ExpandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := ExpandPath("   "); err == nil {
		t.Fatalf("ExpandPath returned nil error, want error")
	}
}
