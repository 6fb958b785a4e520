// Package cli implements the command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aidanlsb/ironlog/internal/config"
	"github.com/aidanlsb/ironlog/internal/store"
	"github.com/aidanlsb/ironlog/internal/ui"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	DataDir    string
	JSON       bool
	Verbose    bool
}

// app carries what the root command resolves before a subcommand runs.
type app struct {
	opts       *RootOptions
	cfg        *config.Config
	configPath string
	logger     *slog.Logger
	now        func() time.Time
}

// NewRootCommand creates the root command for the ironlog CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(time.Now)
}

func newRootCommand(now func() time.Time) *cobra.Command {
	a := &app{
		opts:   &RootOptions{},
		cfg:    &config.Config{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    now,
	}

	cmd := &cobra.Command{
		Use:   "ironlog",
		Short: "ironlog - a markdown workout log",
		Long: `ironlog keeps dated workout notes in plain markdown.

Every save updates three documents in the data directory:
  workout_db.md        all entries, newest date first
  logs/YYYY-MM.md      the entries of one month
  recent_workouts.md   the 7 most recent dates`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	addGlobalFlags(cmd.PersistentFlags(), a.opts)

	cmd.AddCommand(newSaveCommand(a))
	cmd.AddCommand(newOverwriteCommand(a))
	cmd.AddCommand(newExistsCommand(a))
	cmd.AddCommand(newParseCommand(a))
	cmd.AddCommand(newCaptureCommand(a))
	cmd.AddCommand(newRecentCommand(a))
	cmd.AddCommand(newCheckCommand(a))
	cmd.AddCommand(newInitCommand(a))
	cmd.AddCommand(newVersionCommand(a))

	return cmd
}

func addGlobalFlags(fs *pflag.FlagSet, opts *RootOptions) {
	fs.StringVar(&opts.ConfigPath, "config", "", "Path to config file")
	fs.StringVarP(&opts.DataDir, "data-dir", "d", "", "Data directory (overrides data_dir in config)")
	fs.BoolVar(&opts.JSON, "json", false, "Output in JSON format (for agent/script use)")
	fs.BoolVarP(&opts.Verbose, "verbose", "v", false, "Verbose logging to stderr")
}

// setup configures logging and loads the config. Commands that never touch
// the data directory skip config loading.
func (a *app) setup(cmd *cobra.Command) error {
	level := slog.LevelWarn
	if a.opts.Verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	a.configPath = config.ResolveConfigPath(a.opts.ConfigPath)

	switch cmd.Name() {
	case "init", "version", "help", "completion":
		return nil
	}

	cfg, err := config.LoadOrDefault(a.configPath)
	if err != nil {
		return a.fail(cmd, ErrConfigInvalid, err, "Fix the config file or recreate it with 'ironlog init --force'")
	}
	if a.opts.DataDir != "" {
		cfg.DataDir = a.opts.DataDir
	}
	a.cfg = cfg
	a.logger.Debug("config loaded", "path", a.configPath, "data_dir", cfg.DataDir)

	ui.ConfigureTheme(cfg.UI.Accent)
	ui.ConfigureMarkdownCodeTheme(cfg.UI.CodeTheme)
	return nil
}

// openStore builds the log store for the resolved data directory.
func (a *app) openStore() (*store.Store, error) {
	sc, err := a.cfg.StoreConfig()
	if err != nil {
		return nil, err
	}
	return store.New(sc, store.WithLogger(a.logger))
}

// Execute runs the CLI.
func Execute() error {
	err := NewRootCommand().Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
	}
	return err
}
