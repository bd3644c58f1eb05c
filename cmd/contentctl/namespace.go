// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/internal/issue"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/pkg/namespace"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/pkg/nsconfig"
)

var errNamespaceExists = errors.New("namespace already exists")

func newNamespaceCommand(app *App) *cobra.Command {
	nsCmd := &cobra.Command{
		Use:     "namespace",
		Aliases: []string{"ns"},
		Short:   "Manage namespace folders",
	}

	var (
		version string
		depends []string
	)
	initCmd := &cobra.Command{
		Use:   "init <namespace>",
		Short: "Create a namespace folder with its descriptor",
		Long: `Create a namespace folder with a namespace.cue descriptor and add it to the
loading order. The content directory is created when it does not exist.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps := make([]namespace.Name, 0, len(depends))
			for _, d := range depends {
				deps = append(deps, namespace.Name(d))
			}
			return runNamespaceInit(app, nsconfig.ConfigData{
				Namespace:    namespace.Name(args[0]),
				Version:      version,
				Dependencies: deps,
			})
		},
	}
	initCmd.Flags().StringVar(&version, "version", "1.0.0", "namespace version")
	initCmd.Flags().StringSliceVar(&depends, "depends", nil, "namespaces this one depends on")

	nsCmd.AddCommand(initCmd)
	return nsCmd
}

func runNamespaceInit(app *App, cd nsconfig.ConfigData) error {
	if ok, errs := cd.IsValid(); !ok {
		return errors.Join(errs...)
	}
	store := app.store()
	if store.NamespaceExists(cd.Namespace) {
		return issue.NewErrorContext().
			WithOperation("create namespace").
			WithNamespace(cd.Namespace).
			WithResource(store.NamespaceDir(cd.Namespace)).
			WithSuggestion("Pick another name or edit the existing namespace.cue").
			Wrap(errNamespaceExists).
			BuildError()
	}
	if err := store.WriteDescriptor(cd); err != nil {
		return err
	}

	rec, err := app.reconciledOrder()
	if err != nil {
		return orderError(err)
	}
	fmt.Fprintf(app.stdout, "%s %s\n", SuccessStyle.Render("Created namespace"), CmdStyle.Render(cd.Namespace.String()))
	renderOrder(app.stdout, rec.Order)
	return nil
}
