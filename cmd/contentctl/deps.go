// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/internal/dag"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/internal/depcheck"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/internal/issue"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/pkg/namespace"
)

var errDependencyViolations = errors.New("dependency violations found")

func newDepsCommand(app *App) *cobra.Command {
	depsCmd := &cobra.Command{
		Use:   "deps",
		Short: "Check namespace dependencies",
	}

	var suggest, apply bool
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Check that every enabled namespace loads after its dependencies",
		Long: `Check the declared dependencies of every enabled namespace against the
loading order. A dependency can be missing, disabled or loaded too late.

With --suggest a loading order that satisfies every dependency is printed;
--apply also writes it. The command exits with status 1 while violations remain.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDepsCheck(app, suggest || apply, apply)
		},
	}
	checkCmd.Flags().BoolVar(&suggest, "suggest", false, "print a loading order that satisfies the dependencies")
	checkCmd.Flags().BoolVar(&apply, "apply", false, "write the suggested loading order")

	depsCmd.AddCommand(checkCmd)
	return depsCmd
}

func runDepsCheck(app *App, suggest, apply bool) error {
	rec, err := app.reconciledOrder()
	if err != nil {
		return orderError(err)
	}
	result, datas := app.checkDependencies(rec.Order)

	if !suggest {
		return reportViolations(app, result)
	}

	suggested, err := depcheck.SuggestOrder(rec.Order, datas)
	if err != nil {
		var cycle *dag.CycleError[namespace.Name]
		suggestion := "Remove one of the dependencies between the listed namespaces"
		if errors.As(err, &cycle) {
			suggestion = fmt.Sprintf("Break the cycle between: %v", cycle.Cycle)
		}
		return issue.NewErrorContext().
			WithOperation("suggest loading order").
			WithSuggestion(suggestion).
			WithIssue(issue.DependencyCycleId).
			Wrap(err).
			BuildError()
	}

	if !apply {
		fmt.Fprintln(app.stdout, SubtitleStyle.Render("Suggested order:"))
		renderOrder(app.stdout, suggested)
		return reportViolations(app, result)
	}

	if err := app.manager().Set(suggested); err != nil {
		return orderError(err)
	}
	fmt.Fprintln(app.stdout, SuccessStyle.Render("Loading order updated"))
	renderOrder(app.stdout, suggested)
	result, _ = app.checkDependencies(suggested)
	return reportViolations(app, result)
}

// reportViolations prints result and turns remaining violations into exit
// status 1.
func reportViolations(app *App, result depcheck.Result) error {
	if result.OK() {
		fmt.Fprintln(app.stdout, SuccessStyle.Render("All dependencies satisfied"))
		return nil
	}
	fmt.Fprintln(app.stdout, WarningStyle.Render("Dependency violations:"))
	fmt.Fprint(app.stdout, result.String())
	return &ExitError{
		Code: 1,
		Err: issue.NewErrorContext().
			WithOperation("check dependencies").
			WithSuggestion("Run 'contentctl deps check --apply' to reorder the namespaces").
			WithSuggestion("Enable disabled dependencies with 'contentctl order enable <namespace>'").
			WithIssue(issue.DependencyViolationsId).
			Wrap(fmt.Errorf("%w: %d namespace(s)", errDependencyViolations, len(result))).
			BuildError(),
	}
}
