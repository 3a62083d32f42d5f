package ui

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/aula/internal/api"
	"github.com/javiermolinar/aula/internal/config"
	"github.com/javiermolinar/aula/internal/db"
	"github.com/javiermolinar/aula/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	client api.Client
	cache  *db.DraftCache
	config *config.Config
	log    *zap.Logger
	root   *cobra.Command
}

// NewApp creates a new CLI application backed by the given API client.
func NewApp(client api.Client, cache *db.DraftCache, cfg *config.Config, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{client: client, cache: cache, config: cfg, log: log}

	a.root = &cobra.Command{
		Use:   "aula <timetable-id>",
		Short: "A terminal console for school timetable editing",
		Long: `Aula is a terminal console for building school timetables.

It loads a timetable from the school backend, lets you place, edit and
delete periods on a weekly grid, checks teacher conflicts as you go,
and saves the result back as a draft or final timetable.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("a timetable id is required, e.g.: aula 42")
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return tui.Run(a.client, a.cache, a.config, a.log, id)
		},
	}

	var noColor bool
	a.root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable color output")
	a.root.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if noColor {
			DisableColor()
		}
	}

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.validateCmd())
	a.root.AddCommand(a.teachersCmd())
	a.root.AddCommand(a.subjectsCmd())
	a.root.AddCommand(a.terminalCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("aula %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the draft cache and flushes logs.
func (a *App) Close() error {
	_ = a.log.Sync()
	if a.cache != nil {
		return a.cache.Close()
	}
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid timetable id %q", s)
	}
	return id, nil
}
