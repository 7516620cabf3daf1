package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"foodies/internal/config"
	"foodies/internal/db"
	"foodies/internal/log"
	"foodies/internal/media"
	"foodies/internal/settings"
	"foodies/internal/store"
	"foodies/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// app carries everything a command needs once the root pre-run has
// resolved configuration and opened the database.
type app struct {
	dbPath   string
	logLevel string

	cfg      *config.Config
	db       *sql.DB
	logger   *log.Logger
	logFile  io.Closer
	store    *store.Store
	settings *settings.Store
	now      func() time.Time
}

// Execute adds all child commands to the root command and runs it.
func Execute(version string) {
	if err := newRootCmd(version).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(version string) *cobra.Command {
	a := &app{now: time.Now}

	rootCmd := &cobra.Command{
		Use:   "foodies",
		Short: "A food blogger's notebook for places, shops, foods and trips",
		Long: `Foodies keeps track of the places you explore, the shops in them, the
dishes you tried and the trips you wrote about.

Run without a subcommand to open the terminal interface. The subcommands
print statistics, export and import data, and manage display settings.

Configuration is read from FOODIES_* environment variables and from .env
or .env.local in the working directory. Flags win over both.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.dbPath, "db", "d", "", "database file path (default ~/.foodies/foodies.db)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug|info|warn|error")

	rootCmd.AddCommand(
		newSeedCmd(a),
		newStatsCmd(a),
		newReportCmd(a),
		newGalleryCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newSettingsCmd(a),
	)
	return rootCmd
}

// setup resolves configuration and opens the stores. Flags override the
// environment.
func (a *app) setup(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg := config.Load()
	if cmd.Flags().Changed("db") {
		cfg.DBPath = a.dbPath
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger, closer, err := log.OpenFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	log.SetDefault(logger)
	a.logger = logger
	a.logFile = closer

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	a.db = database

	a.store = store.New(database,
		store.WithLocker(db.NewFileLock(db.LockPath(cfg.DBPath), cfg.LockTimeout)),
		store.WithLogger(logger.WithComponent(log.ComponentStore)),
	)
	a.settings = settings.New(database, logger.WithComponent(log.ComponentSettings))

	logger.WithComponent(log.ComponentCLI).Debug("command started",
		"command", cmd.CommandPath(),
		"db", cfg.DBPath,
	)
	return nil
}

func (a *app) close() error {
	var errs []error
	if a.db != nil {
		errs = append(errs, a.db.Close())
		a.db = nil
	}
	if a.logFile != nil {
		errs = append(errs, a.logFile.Close())
		a.logFile = nil
	}
	return errors.Join(errs...)
}

// runTUI runs first-run onboarding when needed, seeds an empty store and
// starts the terminal interface.
func (a *app) runTUI() error {
	state, err := loadOnboardingState(a.cfg.ConfigDir())
	if err != nil {
		a.logger.Warn("failed to read onboarding state", log.FieldError, err)
	}
	if !a.cfg.SkipOnboarding && shouldRunOnboarding(state) {
		if err := runOnboarding(a.cfg.ConfigDir(), a.settings); err != nil {
			return err
		}
	}

	if _, err := a.store.SeedIfEmpty(); err != nil {
		return fmt.Errorf("failed to seed data: %w", err)
	}

	model := ui.New(ui.Deps{
		Store:     a.store,
		Settings:  a.settings,
		Media:     media.NewClient(a.cfg.HTTPTimeout, a.cfg.ImagePreview, a.logger.WithComponent(log.ComponentMedia)),
		Logger:    a.logger.WithComponent(log.ComponentUI),
		PrefsPath: ui.PrefsPath(a.cfg.ConfigDir()),
		Now:       a.now,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}

// output opens path for writing, or returns w when path is "-".
func output(w io.Writer, path string) (io.Writer, func() error, error) {
	if path == "-" {
		return w, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, f.Close, nil
}
