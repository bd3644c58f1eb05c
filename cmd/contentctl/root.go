// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/internal/issue"
)

// skipSetup marks commands that must work without valid settings.
const skipSetup = "skip-setup"

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree for app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "contentctl",
		Short: "Manage namespaced content packs",
		Long: TitleStyle.Render("contentctl") + SubtitleStyle.Render(" - Manage namespaced content packs") + `

contentctl maintains a content directory made of namespaces: one folder per
content pack, each with a namespace.cue descriptor and config fragments that
add or remove values of the game's enums. The loading order decides which
namespaces load and in what sequence.

` + SubtitleStyle.Render("Examples:") + `
  contentctl order show             Show the loading order
  contentctl deps check --suggest   Check dependencies and propose an order
  contentctl enum list materials    Aggregate and list one content domain
  contentctl export --format toml   Print every domain as TOML`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipSetup] == "true" {
				return nil
			}
			return app.setup(cmd.Context())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&app.flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/contentctl/config.cue)")
	flags.StringVar(&app.flags.contentDir, "content-dir", "", "content directory (overrides content_dir)")

	rootCmd.AddCommand(
		newOrderCommand(app),
		newDepsCommand(app),
		newNamespaceCommand(app),
		newResolveCommand(app),
		newEnumCommand(app),
		newExportCommand(app),
		newConfigCommand(app),
		newWatchCommand(app),
	)
	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI. It is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		if app.flags.verbose {
			var ae *issue.ActionableError
			if errors.As(err, &ae) {
				fmt.Fprintln(app.stderr, ae.Format(true))
			}
			renderIssue(app.stderr, err)
		}
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// renderIssue prints the catalog entry attached to err, if any.
func renderIssue(w io.Writer, err error) {
	iss := issue.IssueOf(err)
	if iss == nil {
		return
	}
	rendered, rerr := iss.Render("dark")
	if rerr != nil {
		return
	}
	fmt.Fprint(w, rendered)
}
