// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/internal/watch"
)

func newWatchCommand(app *App) *cobra.Command {
	var debounce time.Duration
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-aggregate content whenever a CUE file changes",
		Long: `Aggregate the content directory, then keep watching it and aggregate again
after every burst of changes to a namespace descriptor, the loading order or a
fragment. A summary of every domain is printed after each pass.

Press Ctrl+C to stop.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), app, debounce)
		},
	}
	watchCmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before re-aggregating")
	return watchCmd
}

func runWatch(ctx context.Context, app *App, debounce time.Duration) error {
	if err := summarize(app, app.stdout); err != nil {
		return err
	}

	w, err := watch.New(watch.Config{
		Root:     app.cfg.ContentDir,
		Debounce: debounce,
		Logger:   app.logger,
		OnChange: func(_ context.Context, changed []string) error {
			app.logger.Info("content changed", "files", changed)
			return summarize(app, app.stdout)
		},
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(app.stdout, SubtitleStyle.Render("Watching "+app.cfg.ContentDir))
	return w.Run(ctx)
}

// summarize aggregates every domain and prints one line per domain.
func summarize(app *App, w io.Writer) error {
	l, err := app.loadCatalog()
	if err != nil {
		return err
	}
	for _, entry := range l.catalog.Snapshot() {
		fmt.Fprintln(w, domainHeading(entry))
	}
	if len(l.skipped) > 0 {
		fmt.Fprintf(w, "%s %v\n", WarningStyle.Render("Skipped:"), l.skipped)
	}
	renderReports(w, l.reports)
	return nil
}
