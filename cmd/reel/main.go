package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/reel/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config path (default ~/.config/reel/config.toml)")
	prefsPath := flag.String("prefs", "", "preferences path (default ~/.config/reel/prefs.toml)")
	logPath := flag.String("log", "", "log file path (overrides log_path)")
	query := flag.String("query", "", "search once, print results, and exit without the TUI")
	debug := flag.Bool("debug", false, "log at debug level")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		LogPath:    *logPath,
		Debug:      *debug,
		Query:      *query,
	}
	// -query "" is a valid headless run listing popular movies.
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "query" {
			opts.Headless = true
		}
	})

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "reel: %v\n", err)
		return 1
	}
	return 0
}
