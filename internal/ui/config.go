package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/aula/internal/config"
	"github.com/javiermolinar/aula/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  aula config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(cfg)

	// Ask if user wants to edit
	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	// Interactive editing
	reader := bufio.NewReader(os.Stdin)

	cfg.API.BaseURL = promptValue(reader, "Backend base URL", cfg.API.BaseURL)
	cfg.API.Token = promptValue(reader, "API token (empty for none)", cfg.API.Token)
	cfg.API.TimeoutSeconds = promptInt(reader, "Request timeout (seconds)", cfg.API.TimeoutSeconds)
	cfg.Storage.CachePath = promptValue(reader, "Draft cache path", cfg.Storage.CachePath)
	cfg.Storage.LogPath = promptValue(reader, "Log file path", cfg.Storage.LogPath)
	cfg.UI.Theme = promptTheme(reader, cfg.UI.Theme)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Save
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved!")
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Println("──────────────────────")
	fmt.Println("[api]")
	fmt.Printf("  base_url        = %s\n", cfg.API.BaseURL)
	if cfg.API.Token != "" {
		fmt.Printf("  token           = %s\n", maskToken(cfg.API.Token))
	}
	fmt.Printf("  timeout_seconds = %d\n", cfg.API.TimeoutSeconds)
	fmt.Println("\n[storage]")
	fmt.Printf("  cache_path      = %s\n", cfg.Storage.CachePath)
	fmt.Printf("  log_path        = %s\n", cfg.Storage.LogPath)
	fmt.Println("\n[ui]")
	fmt.Printf("  theme           = %s\n", cfg.UI.Theme)
}

func maskToken(token string) string {
	if len(token) <= 4 {
		return "****"
	}
	return token[:4] + strings.Repeat("*", len(token)-4)
}

func promptYesNo(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Printf("%s []: ", label)
	} else {
		fmt.Printf("%s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, label string, current int) int {
	input := promptValue(reader, label, strconv.Itoa(current))
	n, err := strconv.Atoi(input)
	if err != nil || n <= 0 {
		fmt.Printf("  keeping %d (%q is not a positive number)\n", current, input)
		return current
	}
	return n
}

func promptTheme(reader *bufio.Reader, current string) string {
	available := theme.Available()
	fmt.Printf("Theme (%s) [%s]: ", strings.Join(available, ", "), current)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return current
	}
	for _, name := range available {
		if input == name {
			return input
		}
	}
	fmt.Printf("  keeping %s (%q is not a known theme)\n", current, input)
	return current
}
