package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Joseda-hg/notebook/internal/auth"
	"github.com/Joseda-hg/notebook/internal/config"
	"github.com/Joseda-hg/notebook/internal/db"
	"github.com/Joseda-hg/notebook/internal/notebook"
	"github.com/Joseda-hg/notebook/internal/tui"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	dbPath     string
)

var rootCmd = &cobra.Command{
	Use:   "notebook",
	Short: "Keep notes and tasks per user in a local SQLite file",
	Long: `Notebook stores notes and prioritized tasks for registered users and
exports every note to an .xlsx report. Without a subcommand it opens the
terminal UI.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		// The TUI owns the terminal, so keep log lines off it.
		if !verbose {
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
		}
		return tui.Run(app.svc, tui.Options{ReportPath: app.cfg.ReportPath, OpenReport: app.cfg.OpenReport})
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "sqlite db path")
}

type app struct {
	cfg   config.Config
	store *db.Store
	svc   *notebook.Service
}

func (a *app) Close() error {
	return a.store.DB.Close()
}

// openApp loads the config and opens the store behind a service whose
// exports use their own connection to the same file.
func openApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	slog.Debug("opened database", "path", cfg.DBPath, "password_hash", cfg.PasswordHash)

	svc := notebook.NewService(store, notebook.WithDatabasePath(cfg.DBPath))
	return &app{cfg: cfg, store: store, svc: svc}, nil
}

// loadConfig returns the file plus environment plus flags for this run. Only
// the file plus flags is written back, so NOTEBOOK_* variables stay one-off.
func loadConfig() (config.Config, error) {
	cfgPath, err := resolveConfigPath(configPath)
	if err != nil {
		return config.Config{}, err
	}

	saved, err := config.ReadFile(cfgPath)
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, err
	}

	applyFlags(&saved, cfgPath)
	applyFlags(&cfg, cfgPath)

	if err := config.Save(cfgPath, saved); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func applyFlags(cfg *config.Config, cfgPath string) {
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(filepath.Dir(cfgPath), "notebook.db")
	}
}

func resolveConfigPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	return config.DefaultConfigPath()
}

func openStore(cfg config.Config) (*db.Store, error) {
	hasher, err := auth.NewHasher(cfg.PasswordHash)
	if err != nil {
		return nil, err
	}

	if err := config.EnsureDir(cfg.DBPath); err != nil {
		return nil, err
	}

	sqlDB, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	return db.NewStore(sqlDB, hasher), nil
}
