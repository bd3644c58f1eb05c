// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/internal/content"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/pkg/cueutil"
)

const (
	formatCUE  = "cue"
	formatTOML = "toml"
)

func newExportCommand(app *App) *cobra.Command {
	var format string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Print every aggregated content domain",
		Long: `Aggregate every content domain and print the result as one document, one
field per domain holding its values in registry order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(app, format)
		},
	}
	exportCmd.Flags().StringVarP(&format, "format", "f", formatCUE, "output format (cue, toml)")
	return exportCmd
}

func runExport(app *App, format string) error {
	if format != formatCUE && format != formatTOML {
		return fmt.Errorf("unsupported format %q (valid: %s, %s)", format, formatCUE, formatTOML)
	}
	l, err := app.loadCatalog()
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case formatTOML:
		data, err = exportTOML(l.catalog.Snapshot())
	default:
		data, err = exportCUE(l.catalog.Snapshot())
	}
	if err != nil {
		return fmt.Errorf("failed to export content: %w", err)
	}
	_, err = app.stdout.Write(data)
	return err
}

func exportCUE(entries []content.Entry) ([]byte, error) {
	var doc cueutil.Document
	for _, entry := range entries {
		names := entry.Names
		if names == nil {
			names = []string{}
		}
		if err := doc.Add(entry.Domain.Name, names); err != nil {
			return nil, err
		}
	}
	return doc.Bytes()
}

func exportTOML(entries []content.Entry) ([]byte, error) {
	out := make(map[string][]string, len(entries))
	for _, entry := range entries {
		names := entry.Names
		if names == nil {
			names = []string{}
		}
		out[entry.Domain.Name] = names
	}
	return toml.Marshal(out)
}
