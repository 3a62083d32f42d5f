package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/javiermolinar/aula/internal/api"
	"github.com/javiermolinar/aula/internal/config"
	"github.com/javiermolinar/aula/internal/db"
	"github.com/javiermolinar/aula/internal/logging"
	"github.com/javiermolinar/aula/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A local .env can supply AULA_* overrides during development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logging.New(cfg.Storage.LogPath, os.Getenv("AULA_DEBUG") != "")
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}

	client, err := api.NewHTTPClient(api.Options{
		BaseURL: cfg.API.BaseURL,
		Token:   cfg.API.Token,
		Timeout: cfg.Timeout(),
		Logger:  log,
	})
	if err != nil {
		return fmt.Errorf("creating API client: %w", err)
	}

	// The TUI still works without a local draft cache.
	cache, err := db.Open(cfg.Storage.CachePath)
	if err != nil {
		log.Warn("draft cache unavailable", zap.Error(err))
		cache = nil
	}

	app := ui.NewApp(client, cache, cfg, log)
	defer func() { _ = app.Close() }()
	return app.Execute()
}
