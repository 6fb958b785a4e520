package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/ironlog/internal/config"
	"github.com/aidanlsb/ironlog/internal/ui"
)

func newInitCommand(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a config file",
		Long: `Writes a commented config file to the default location (or --config).
With --data-dir the directory is recorded in the config and created.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath
			_, statErr := os.Stat(path)
			exists := statErr == nil
			if exists && !force {
				if a.opts.JSON {
					outputSuccess(cmd.OutOrStdout(), map[string]interface{}{"config_path": path, "created": false}, nil)
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.Infof("Config already exists: %s", ui.FilePath(path)))
				fmt.Fprintln(cmd.OutOrStdout(), ui.Hint("Use --force to replace it"))
				return nil
			}
			if exists {
				if err := os.Remove(path); err != nil {
					return a.fail(cmd, ErrFileWriteError, err, "")
				}
			}

			dataDir := ""
			if a.opts.DataDir != "" {
				abs, err := filepath.Abs(a.opts.DataDir)
				if err != nil {
					return a.fail(cmd, ErrInvalidInput, err, "")
				}
				dataDir = abs
				if err := os.MkdirAll(dataDir, 0o755); err != nil {
					return a.fail(cmd, ErrFileWriteError, err, "")
				}
				if err := config.SaveTo(path, &config.Config{DataDir: dataDir}); err != nil {
					return a.fail(cmd, ErrFileWriteError, err, "")
				}
			} else if _, err := config.CreateDefault(path); err != nil {
				return a.fail(cmd, ErrFileWriteError, err, "")
			}

			a.logger.Debug("config written", "path", path, "data_dir", dataDir)
			if a.opts.JSON {
				outputSuccess(cmd.OutOrStdout(), map[string]interface{}{
					"config_path": path,
					"data_dir":    dataDir,
					"created":     true,
				}, nil)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Successf("Created %s", ui.FilePath(path)))
			if dataDir != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "  data_dir = %s\n", ui.FilePath(dataDir))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing config file")
	return cmd
}
