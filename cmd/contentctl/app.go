// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/internal/aggregate"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/internal/config"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/internal/content"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/internal/depcheck"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/internal/fragment"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/internal/issue"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/internal/loadorder"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/pkg/namespace"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/pkg/nsconfig"
)

type (
	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// App wires CLI services and shared state. Every command handler receives
	// the App; settings and the logger are filled in before a command runs.
	App struct {
		Config ConfigProvider
		stdout io.Writer
		stderr io.Writer

		flags  rootFlags
		cfg    *config.Config
		logger *log.Logger
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		Stdout io.Writer
		Stderr io.Writer
	}

	rootFlags struct {
		configPath string
		contentDir string
		verbose    bool
	}

	// loaded is a filled catalog with everything that went into it.
	loaded struct {
		catalog *content.Catalog
		order   []nsconfig.LoadingEntry
		skipped []namespace.Name
		reports []aggregate.Report
	}
)

// NewApp creates an App with production defaults for unset dependencies.
func NewApp(deps Dependencies) *App {
	app := &App{Config: deps.Config, stdout: deps.Stdout, stderr: deps.Stderr}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	return app
}

// setup loads settings, applies flag overrides and builds the logger.
func (a *App) setup(ctx context.Context) error {
	cfg, err := a.Config.Load(ctx, a.loadOptions())
	if err != nil {
		return err
	}
	if a.flags.contentDir != "" {
		cfg.ContentDir = a.flags.contentDir
	}

	level := cfg.LogLevel.Level()
	if a.flags.verbose {
		level = log.DebugLevel
	}
	a.logger = log.NewWithOptions(a.stderr, log.Options{Prefix: config.AppName, Level: level})
	a.cfg = cfg
	aggregate.Configure(cfg, a.logger)
	return nil
}

func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: a.flags.configPath}
}

func (a *App) store() *fragment.Store {
	return fragment.NewStore(a.cfg.ContentDir)
}

func (a *App) vanilla() nsconfig.ConfigData {
	return nsconfig.ConfigData{Namespace: a.cfg.Vanilla.Namespace, Version: a.cfg.Vanilla.Version}
}

func (a *App) manager() *loadorder.Manager {
	return loadorder.NewManager(a.store(), a.vanilla(), a.logger)
}

// requireContentDir fails unless the content root exists.
func (a *App) requireContentDir() error {
	info, err := os.Stat(a.cfg.ContentDir)
	if err == nil && info.IsDir() {
		return nil
	}
	return issue.NewErrorContext().
		WithOperation("open content directory").
		WithResource(a.cfg.ContentDir).
		WithSuggestion("Pass --content-dir or set content_dir in the config file").
		WithSuggestion("Create a namespace with 'contentctl namespace init <name>'").
		WithIssue(issue.ContentDirMissingId).
		Wrap(os.ErrNotExist).
		BuildError()
}

// reconciledOrder repairs the content root and returns its loading order.
func (a *App) reconciledOrder() (loadorder.Reconciled, error) {
	if err := a.requireContentDir(); err != nil {
		return loadorder.Reconciled{}, err
	}
	return a.manager().GetAndReconcile(a.cfg.Loading.DefaultEnabled, a.cfg.Loading.VanillaInvertDefault)
}

// checkDependencies validates the order against the namespace descriptors.
// Unreadable descriptors are logged and count as missing.
func (a *App) checkDependencies(order []nsconfig.LoadingEntry) (depcheck.Result, map[namespace.Name]nsconfig.ConfigData) {
	names := make([]namespace.Name, 0, len(order))
	for _, entry := range order {
		names = append(names, entry.Namespace)
	}
	datas, errs := a.store().ReadDescriptors(names)
	for ns, err := range errs {
		a.logger.Warn("namespace descriptor unreadable", "namespace", ns, "err", err)
	}
	return depcheck.Validate(order, datas), datas
}

// loadCatalog reconciles the loading order and aggregates every content domain.
func (a *App) loadCatalog() (*loaded, error) {
	rec, err := a.reconciledOrder()
	if err != nil {
		return nil, err
	}

	var opts []aggregate.Option
	var skipped []namespace.Name
	if a.cfg.Loading.SkipInvalidDependencies {
		result, _ := a.checkDependencies(rec.Order)
		skipped = result.Skip(true)
		if len(skipped) > 0 {
			a.logger.Warn("namespaces skipped because of dependency problems", "namespaces", skipped)
			opts = append(opts, aggregate.SkipNamespaces(skipped...))
		}
	}

	catalog := content.NewCatalog(a.cfg.Separators.LayerSeparator())
	reports := catalog.Initialize(aggregate.Default(), rec.Order, opts...)
	return &loaded{catalog: catalog, order: rec.Order, skipped: skipped, reports: reports}, nil
}

// activeScope lists the enabled namespaces of order with loading as the
// namespace being read.
func activeScope(order []nsconfig.LoadingEntry, loading namespace.Name) namespace.Scope {
	scope := namespace.Scope{Loading: loading}
	for _, entry := range order {
		if entry.Enabled {
			scope.Active = append(scope.Active, entry.Namespace)
		}
	}
	return scope
}
