package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pstuifzand/tui-contacts/internal/app"
	"github.com/pstuifzand/tui-contacts/internal/config"
	"github.com/pstuifzand/tui-contacts/internal/history"
	"github.com/pstuifzand/tui-contacts/internal/logger"
	"github.com/pstuifzand/tui-contacts/internal/provider"
	"github.com/pstuifzand/tui-contacts/internal/theme"
	"github.com/pstuifzand/tui-contacts/internal/ui"
)

var (
	configPath string
	dbPath     string
)

var rootCmd = &cobra.Command{
	Use:          "tui-contacts",
	Short:        "Browse and search contacts across directories",
	Long:         "tui-contacts lists the local address book and searches remote contact directories as you type",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		closeLog, err := setupLogging(cfg)
		if err != nil {
			return err
		}
		defer closeLog()

		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		screen, err := ui.NewScreenWithTheme(theme.LoadThemeOrDefault(cfg.Theme))
		if err != nil {
			return fmt.Errorf("failed to initialize screen: %w", err)
		}
		defer screen.Close()
		screen.EnableMouse()

		application, err := app.NewApp(cfg, store, screen)
		if err != nil {
			return err
		}
		if dataDir, err := config.GetDataDir(); err == nil {
			if m, err := history.NewManager(filepath.Join(dataDir, "history")); err == nil {
				if err := application.SetCommandHistory(m); err != nil {
					logger.Warn("loading command history: %v", err)
				}
			}
		}
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			application.SetDebugMode(true)
		}
		return application.Run()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/tui-contacts/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Contact database (overrides the config)")
	rootCmd.Flags().Bool("debug", false, "Enable debug mode (shows key events in status)")
}

func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	return cfg, nil
}

// setupLogging sends the standard logger to the configured log file. The
// terminal belongs to the screen, so without a file logs are dropped.
func setupLogging(cfg *config.Config) (func(), error) {
	logger.SetLevel(cfg.Log.Level)
	if cfg.Log.File == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(logFile)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	return func() { _ = logFile.Close() }, nil
}

func openStore(cfg *config.Config) (*provider.Store, error) {
	path, err := cfg.DatabasePath()
	if err != nil {
		return nil, err
	}
	return provider.Open(path)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
