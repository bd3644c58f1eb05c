// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/internal/aggregate"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/internal/issue"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/pkg/namespace"
)

var errUnresolvable = errors.New("value cannot be qualified")

func newResolveCommand(app *App) *cobra.Command {
	var loading string
	resolveCmd := &cobra.Command{
		Use:   "resolve <value>",
		Short: "Qualify a value name with its namespace",
		Long: `Qualify a value name the way fragments are read. An unqualified value gets
the namespace being loaded (--namespace, or the vanilla namespace), and a value
naming a namespace that is not enabled is moved to that default.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(app, args[0], namespace.Name(loading))
		},
	}
	resolveCmd.Flags().StringVarP(&loading, "namespace", "n", "", "namespace being loaded")
	return resolveCmd
}

func runResolve(app *App, value string, loading namespace.Name) error {
	rec, err := app.reconciledOrder()
	if err != nil {
		return orderError(err)
	}

	resolved, ok := aggregate.Default().Resolver.Resolve(value, activeScope(rec.Order, loading), true)
	if !ok {
		return issue.NewErrorContext().
			WithOperation("resolve value").
			WithNamespace(loading).
			WithResource(fmt.Sprintf("%q", value)).
			WithSuggestion("Values must be non-empty and must not end with the namespace separator").
			WithIssue(issue.NamespaceResolutionFailedId).
			Wrap(errUnresolvable).
			BuildError()
	}
	fmt.Fprintln(app.stdout, resolved)
	return nil
}
