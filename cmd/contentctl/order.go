// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/internal/issue"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/pkg/namespace"
)

func newOrderCommand(app *App) *cobra.Command {
	orderCmd := &cobra.Command{
		Use:   "order",
		Short: "Inspect and edit the loading order",
		Long: `Inspect and edit the loading order of the content directory.

Every command reconciles the order with the namespace folders first: folders
without an entry are appended, entries without a folder are dropped and the
vanilla namespace is restored when it is missing. Positions are 1-based.`,
	}

	orderCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the loading order",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runOrderShow(app)
			},
		},
		&cobra.Command{
			Use:   "reconcile",
			Short: "Repair the loading order and report what changed",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runOrderReconcile(app)
			},
		},
		&cobra.Command{
			Use:   "enable <namespace>",
			Short: "Enable a namespace",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runOrderSetEnabled(app, namespace.Name(args[0]), true)
			},
		},
		&cobra.Command{
			Use:   "disable <namespace>",
			Short: "Disable a namespace",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runOrderSetEnabled(app, namespace.Name(args[0]), false)
			},
		},
		&cobra.Command{
			Use:   "move <namespace> <position>",
			Short: "Move a namespace to a 1-based position",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				position, err := strconv.Atoi(args[1])
				if err != nil || position < 1 {
					return fmt.Errorf("invalid position %q: must be a positive integer", args[1])
				}
				return runOrderMove(app, namespace.Name(args[0]), position)
			},
		},
	)
	return orderCmd
}

func runOrderShow(app *App) error {
	rec, err := app.reconciledOrder()
	if err != nil {
		return orderError(err)
	}
	renderOrder(app.stdout, rec.Order)
	return nil
}

func runOrderReconcile(app *App) error {
	rec, err := app.reconciledOrder()
	if err != nil {
		return orderError(err)
	}
	if rec.VanillaInvalid {
		fmt.Fprintln(app.stdout, WarningStyle.Render("Recreated the "+app.cfg.Vanilla.Namespace.String()+" descriptor"))
	}
	if rec.Changed {
		fmt.Fprintln(app.stdout, SuccessStyle.Render("Loading order updated"))
	} else {
		fmt.Fprintln(app.stdout, SubtitleStyle.Render("Loading order already up to date"))
	}
	renderOrder(app.stdout, rec.Order)
	return nil
}

func runOrderSetEnabled(app *App, ns namespace.Name, enabled bool) error {
	if _, err := app.reconciledOrder(); err != nil {
		return orderError(err)
	}
	if err := app.manager().SetEnabled(ns, enabled); err != nil {
		return orderError(err)
	}
	fmt.Fprintf(app.stdout, "%s %s\n", CmdStyle.Render(ns.String()), stateLabel(enabled))
	return nil
}

func runOrderMove(app *App, ns namespace.Name, position int) error {
	if _, err := app.reconciledOrder(); err != nil {
		return orderError(err)
	}
	m := app.manager()
	if err := m.Move(ns, position-1); err != nil {
		return orderError(err)
	}
	order, _ := m.Get()
	renderOrder(app.stdout, order)
	return nil
}

// orderError attaches the loading order issue to unexpected failures. Errors
// that already carry an issue pass through unchanged.
func orderError(err error) error {
	if issue.IssueOf(err) != nil {
		return err
	}
	return issue.NewErrorContext().
		WithOperation("update loading order").
		WithSuggestion("Run 'contentctl order show' to list the known namespaces").
		WithIssue(issue.LoadOrderCorruptedId).
		Wrap(err).
		BuildError()
}
