package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/netbwmon/internal/config"
	"github.com/rileyhilliard/netbwmon/internal/errors"
	"github.com/rileyhilliard/netbwmon/internal/ui"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create, edit and locate the config file",
	}
	cmd.AddCommand(newConfigInitCmd(), newConfigSetCmd(), newConfigPathCmd())
	return cmd
}

// confirmOverwrite is replaced in tests.
var confirmOverwrite = func(path string) (bool, error) {
	var overwrite bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", path)).
				Value(&overwrite),
		),
	)
	if err := form.Run(); err != nil {
		return false, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Try running with --force to overwrite")
	}
	return overwrite, nil
}

func newConfigInitCmd() *cobra.Command {
	var force, global bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Long: `Write the default settings to ./.netbwmon.yaml, or with --global to
~/.config/netbwmon/config.yaml.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ConfigFileName
			if global {
				path = config.GlobalConfigPath()
				if path == "" {
					return errors.New(errors.ErrConfig,
						"Can't locate your home directory",
						"Write a local config with 'netbwmon config init' instead.")
				}
			}
			out := cmd.OutOrStdout()

			if _, err := os.Stat(path); err == nil && !force {
				overwrite, err := confirmOverwrite(path)
				if err != nil {
					return err
				}
				if !overwrite {
					fmt.Fprintln(out, "Cancelled.")
					return nil
				}
			}

			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return errors.WrapWithCode(err, errors.ErrConfig,
					"Failed to write "+path,
					"Check that the directory is writable.")
			}
			ui.PrintSuccess(out, "Wrote "+path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file without asking")
	cmd.Flags().BoolVar(&global, "global", false, "write the global config instead of ./.netbwmon.yaml")
	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set one value in the config file",
		Long: `Set a dotted key such as "delay" or "stats.every" in the active config
file. Comments and layout are kept; the file is left untouched if the new
value doesn't validate.`,
		Example:       "  netbwmon config set interface eth0\n  netbwmon config set stats.every 5",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			explicit, _ := cmd.Flags().GetString("config")
			path, err := config.Find(explicit)
			if err != nil {
				return err
			}
			if path == "" {
				return errors.New(errors.ErrConfig,
					"No config file found",
					"Create one with 'netbwmon config init'.")
			}
			if err := setConfigValue(path, args[0], args[1]); err != nil {
				return err
			}
			ui.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Set %s = %s in %s", args[0], args[1], path))
			return nil
		},
	}
}

// setConfigValue edits path and restores the original bytes when the result
// no longer loads or validates.
func setConfigValue(path, key, value string) error {
	original, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to read "+path, "")
	}
	if err := config.SetValue(path, key, value); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to set %s", key),
			"Keys are dotted paths such as stats.every or source.host.")
	}

	cfg, err := config.Load(path)
	if err == nil {
		err = config.Validate(cfg)
	}
	if err != nil {
		if restoreErr := os.WriteFile(path, original, 0o644); restoreErr != nil {
			return errors.WrapWithCode(restoreErr, errors.ErrConfig,
				"Failed to restore "+path+" after an invalid edit", "")
		}
		return err
	}
	return nil
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "path",
		Short:         "Print the config file netbwmon would load",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			explicit, _ := cmd.Flags().GetString("config")
			path, err := config.Find(explicit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if path == "" {
				fmt.Fprintf(out, "none (defaults; 'netbwmon config init' writes %s)\n", config.ConfigFileName)
				return nil
			}
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
			fmt.Fprintln(out, path)
			return nil
		},
	}
}
