// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/internal/aggregate"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/internal/content"
)

func newEnumCommand(app *App) *cobra.Command {
	enumCmd := &cobra.Command{
		Use:   "enum",
		Short: "Inspect the aggregated content enums",
	}

	var showReport bool
	listCmd := &cobra.Command{
		Use:   "list [domain]",
		Short: "Aggregate the enabled namespaces and list enum values",
		Long: `Aggregate every content domain from the enabled namespaces in loading order
and list the resulting values. Tree domains are indented by depth.

Domains: ` + strings.Join(domainNames(), ", "),
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: domainNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			domain := ""
			if len(args) == 1 {
				domain = args[0]
			}
			return runEnumList(app, domain, showReport)
		},
	}
	listCmd.Flags().BoolVar(&showReport, "report", false, "print aggregation diagnostics")

	enumCmd.AddCommand(listCmd)
	return enumCmd
}

func domainNames() []string {
	domains := content.NewCatalog(0).Domains()
	names := make([]string, 0, len(domains))
	for _, d := range domains {
		names = append(names, d.Name)
	}
	return names
}

func runEnumList(app *App, domain string, showReport bool) error {
	l, err := app.loadCatalog()
	if err != nil {
		return err
	}
	if domain != "" {
		if _, ok := l.catalog.Domain(domain); !ok {
			return fmt.Errorf("unknown content domain %q (valid: %s)", domain, strings.Join(domainNames(), ", "))
		}
	}

	nsSep := app.cfg.Separators.NamespaceSeparator()
	layerSep := app.cfg.Separators.LayerSeparator()
	for _, entry := range l.catalog.Snapshot() {
		if domain != "" && entry.Domain.Name != domain {
			continue
		}
		fmt.Fprintln(app.stdout, domainHeading(entry))
		for _, name := range entry.Names {
			if entry.Domain.Tree {
				name = indentTree(name, nsSep, layerSep)
			}
			fmt.Fprintf(app.stdout, "  %s\n", name)
		}
	}

	if len(l.skipped) > 0 {
		fmt.Fprintf(app.stdout, "%s %v\n", WarningStyle.Render("Skipped:"), l.skipped)
	}
	if showReport {
		reports := l.reports
		if domain != "" {
			reports = slices.DeleteFunc(slices.Clone(reports), func(r aggregate.Report) bool { return r.ConfigName != domain })
		}
		renderReports(app.stdout, reports)
	}
	return nil
}
