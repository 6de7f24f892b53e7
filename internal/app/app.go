package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/reel/internal/config"
	"github.com/five82/reel/internal/prefs"
	"github.com/five82/reel/internal/search"
	"github.com/five82/reel/internal/tmdb"
	"github.com/five82/reel/internal/trending"
	"github.com/five82/reel/internal/ui"
)

// Options configure the reel application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/reel/prefs.toml
	LogPath    string // overrides log_path from the config
	Debug      bool

	// Headless runs Query once and prints the result instead of starting the TUI.
	Headless bool
	Query    string
	Stdout   io.Writer
}

// Run boots reel until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.LogPath != "" {
		path, err := config.ExpandPath(opts.LogPath)
		if err != nil {
			return fmt.Errorf("log path: %w", err)
		}
		cfg.LogPath = path
	}

	logger, closeLog, err := openLogger(cfg.LogPath, opts.Debug)
	if err != nil {
		return err
	}
	defer closeLog()

	if cfg.Catalog.Token == "" {
		logger.Warn("no catalog token configured; set catalog.token or TMDB_API_TOKEN")
	}
	catalog, err := tmdb.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Token, tmdb.WithLanguage(cfg.Catalog.Language))
	if err != nil {
		return fmt.Errorf("init catalog client: %w", err)
	}

	store, closeStore, err := openStore(cfg.Trending)
	if err != nil {
		return fmt.Errorf("open trending store: %w", err)
	}
	defer closeStore()
	logger.Info("reel starting", "trending_backend", cfg.Trending.Backend, "catalog", cfg.Catalog.BaseURL)

	aggregator := trending.NewAggregator(store, trending.WithImageBase(cfg.Catalog.ImageBase))
	service := search.NewService(catalog, aggregator, logger)
	// In-flight searches and their trend writes finish before the store closes.
	defer service.Wait()

	if opts.Headless {
		out := opts.Stdout
		if out == nil {
			out = os.Stdout
		}
		return runHeadless(ctx, service, opts.Query, out)
	}

	userPrefs := prefs.Load(opts.PrefsPath)
	err = ui.Run(ui.Options{
		Context:   ctx,
		Searcher:  service,
		Logger:    logger,
		Debounce:  cfg.Debounce,
		ImageBase: cfg.Catalog.ImageBase,
		LogPath:   cfg.LogPath,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	})
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// openLogger writes structured logs to path; the TUI owns the terminal.
func openLogger(path string, debug bool) (*slog.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = f.Close() }, nil
}

// openStore builds the configured trending backend. The returned func
// releases it.
func openStore(cfg config.Trending) (trending.Store, func(), error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return trending.NewMemoryStore(), func() {}, nil
	case config.BackendAppwrite:
		store, err := trending.NewAppwriteStore(trending.AppwriteConfig{
			Endpoint:     cfg.Appwrite.Endpoint,
			ProjectID:    cfg.Appwrite.ProjectID,
			DatabaseID:   cfg.Appwrite.DatabaseID,
			CollectionID: cfg.Appwrite.CollectionID,
			APIKey:       cfg.Appwrite.APIKey,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	case config.BackendSQLite:
		store, err := trending.OpenSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
