// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/internal/aggregate"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/pkg/nsconfig"
)

// renderOrder prints the loading order with 1-based positions.
func renderOrder(w io.Writer, order []nsconfig.LoadingEntry) {
	fmt.Fprintln(w, TitleStyle.Render("Loading order"))
	for i, entry := range order {
		fmt.Fprintf(w, "  %2d. %s %s\n", i+1, CmdStyle.Render(entry.Namespace.String()), stateLabel(entry.Enabled))
	}
}

// renderReports prints every diagnostic of reports, grouped by config name.
// Reports without diagnostics are left out.
func renderReports(w io.Writer, reports []aggregate.Report) {
	for _, r := range reports {
		if len(r.Diagnostics) == 0 {
			continue
		}
		fmt.Fprintln(w, SubtitleStyle.Render(r.ConfigName+":"))
		for _, d := range r.Diagnostics {
			fmt.Fprintf(w, "  %s %s\n", severityLabel(d.Severity), formatDiagnostic(d))
		}
	}
}

func severityLabel(s aggregate.Severity) string {
	if s == aggregate.SeverityError {
		return ErrorStyle.Render("error")
	}
	return WarningStyle.Render("warning")
}

func formatDiagnostic(d aggregate.Diagnostic) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]", d.Code)
	if d.Namespace != "" {
		fmt.Fprintf(&b, " %s:", d.Namespace)
	}
	b.WriteString(" ")
	b.WriteString(d.Message)
	if d.Cause != nil {
		fmt.Fprintf(&b, ": %v", d.Cause)
	}
	return b.String()
}

// indentTree indents a full tree name by its depth, leaving the namespace
// prefix in place so nested values line up under their parents.
func indentTree(name string, nsSep, layerSep rune) string {
	rest := name
	if i := strings.IndexRune(name, nsSep); i >= 0 {
		rest = name[i+1:]
	}
	return strings.Repeat("  ", strings.Count(rest, string(layerSep))) + name
}
