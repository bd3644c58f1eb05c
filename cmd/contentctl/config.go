// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/internal/config"
)

func newConfigCommand(app *App) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage contentctl configuration",
		Long: `Manage contentctl configuration.

Configuration is stored in CUE format at:
  - Linux: ~/.config/contentctl/config.cue
  - macOS: ~/Library/Application Support/contentctl/config.cue
  - Windows: %APPDATA%\contentctl\config.cue

CONTENTCTL_* environment variables override file values, for example
CONTENTCTL_CONTENT_DIR or CONTENTCTL_LOADING_DEFAULT_ENABLED.`,
	}

	configCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the effective configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runConfigShow(app)
			},
		},
		&cobra.Command{
			Use:         "path",
			Short:       "Show the config file that would be read",
			Args:        cobra.NoArgs,
			Annotations: map[string]string{skipSetup: "true"},
			RunE: func(cmd *cobra.Command, args []string) error {
				return runConfigPath(app)
			},
		},
		&cobra.Command{
			Use:         "init",
			Short:       "Write a default config file",
			Args:        cobra.NoArgs,
			Annotations: map[string]string{skipSetup: "true"},
			RunE: func(cmd *cobra.Command, args []string) error {
				return runConfigInit(app)
			},
		},
	)
	return configCmd
}

func runConfigShow(app *App) error {
	out, err := config.GenerateCUE(app.cfg)
	if err != nil {
		return err
	}
	fmt.Fprint(app.stdout, out)
	return nil
}

func runConfigPath(app *App) error {
	path, err := config.ResolvePath(app.loadOptions())
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Fprintln(app.stdout, SubtitleStyle.Render("(no config file, using defaults)"))
		return nil
	}
	fmt.Fprintln(app.stdout, path)
	return nil
}

func runConfigInit(app *App) error {
	path, err := config.CreateDefaultConfig()
	if err != nil {
		return err
	}
	fmt.Fprintf(app.stdout, "%s %s\n", SuccessStyle.Render("Config file:"), path)
	return nil
}
