// SPDX-License-Identifier: MPL-2.0

// Package aggregate folds one named config fragment from every enabled
// namespace, in loading order, into a single collection.
//
// Each namespace contributes additions and removals; entries starting with the
// remove marker retract what earlier namespaces added. The vanilla namespace
// is always read and its fragment is rebuilt from a built-in default when it
// is missing or broken. Other namespaces contribute only when they ship the
// fragment.
package aggregate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/pkg/namespace"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/pkg/nsconfig"
)

// DefaultRemoveMarker prefixes entries that remove instead of add.
const DefaultRemoveMarker = "-"

// ErrUnresolvable is returned when a fragment entry cannot be namespaced.
var ErrUnresolvable = errors.New("entry cannot be namespaced")

type (
	// Source is where fragments are read from. *fragment.Store implements it.
	Source interface {
		FragmentExists(ns namespace.Name, configName string) bool
		ReadListFragment(ns namespace.Name, configName string) ([]string, error)
		ReadMapFragment(ns namespace.Name, configName string) ([]nsconfig.MapEntry, error)
		WriteFragment(ns namespace.Name, configName string, data []byte) error
	}

	// Aggregator holds what every aggregation pass shares.
	Aggregator struct {
		Store    Source
		Resolver *namespace.Resolver
		// RemoveMarker defaults to DefaultRemoveMarker.
		RemoveMarker string
		// Vanilla defaults to Resolver.Vanilla.
		Vanilla namespace.Name
		// Logger defaults to log.Default().
		Logger *log.Logger
	}

	// Contribution is what one namespace adds to and removes from the aggregate.
	Contribution[E any] struct {
		Namespace namespace.Name
		Adds      []E
		Removes   []string
		// Recreated is set when the fragment was rebuilt from its default.
		Recreated bool
	}

	// Loader reads the contribution of a namespace within a loading scope.
	Loader[E any] func(scope namespace.Scope) (Contribution[E], error)

	// Spec describes one aggregation. T is the aggregate and E one added entry.
	Spec[T, E any] struct {
		ConfigName string
		Start      func() T
		Apply      func(acc T, c Contribution[E]) (T, []Diagnostic)
		// LoadVanilla reads the vanilla namespace. It is called even when the
		// fragment file is missing.
		LoadVanilla Loader[E]
		// LoadOther reads any other namespace that has the fragment.
		LoadOther Loader[E]
	}

	// Option changes a single Run.
	Option func(*runOptions)

	runOptions struct {
		skip map[namespace.Name]bool
	}
)

// SkipNamespaces leaves the given namespaces out of the pass, typically the
// ones reported by depcheck.
func SkipNamespaces(names ...namespace.Name) Option {
	return func(o *runOptions) {
		if o.skip == nil {
			o.skip = make(map[namespace.Name]bool, len(names))
		}
		for _, ns := range names {
			o.skip[ns] = true
		}
	}
}

func (a *Aggregator) logger() *log.Logger {
	if a.Logger == nil {
		return log.Default()
	}
	return a.Logger
}

func (a *Aggregator) marker() string {
	if a.RemoveMarker == "" {
		return DefaultRemoveMarker
	}
	return a.RemoveMarker
}

func (a *Aggregator) vanilla() namespace.Name {
	if a.Vanilla != "" || a.Resolver == nil {
		return a.Vanilla
	}
	return a.Resolver.Vanilla
}

// Run walks order and folds the contribution of every enabled namespace into
// spec.Start(). Rejected fragments are skipped and reported.
func Run[T, E any](a *Aggregator, order []nsconfig.LoadingEntry, spec Spec[T, E], opts ...Option) (T, Report) {
	var o runOptions
	for _, opt := range opts {
		opt(&o)
	}

	report := Report{ConfigName: spec.ConfigName}
	var active []namespace.Name
	for _, entry := range order {
		if entry.Enabled && !o.skip[entry.Namespace] {
			active = append(active, entry.Namespace)
		}
	}

	logger := a.logger().With("config", spec.ConfigName)
	acc := spec.Start()
	for _, entry := range order {
		ns := entry.Namespace
		if !entry.Enabled {
			continue
		}
		if o.skip[ns] {
			report.add(Diagnostic{
				Severity:  SeverityWarning,
				Code:      CodeNamespaceSkipped,
				Namespace: ns,
				Message:   "skipped because of unmet dependencies",
			})
			continue
		}

		scope := namespace.Scope{Active: active, Loading: ns}
		var (
			c   Contribution[E]
			err error
		)
		if ns == a.vanilla() {
			c, err = spec.LoadVanilla(scope)
		} else {
			if !a.Store.FragmentExists(ns, spec.ConfigName) {
				continue
			}
			c, err = spec.LoadOther(scope)
		}
		if err != nil {
			logger.Error("fragment rejected", "namespace", ns, "err", err)
			report.add(Diagnostic{
				Severity:  SeverityError,
				Code:      CodeFragmentRejected,
				Namespace: ns,
				Message:   "fragment rejected",
				Cause:     err,
			})
			continue
		}
		if c.Recreated {
			report.add(Diagnostic{
				Severity:  SeverityWarning,
				Code:      CodeVanillaRecreated,
				Namespace: ns,
				Message:   "fragment recreated from the built-in default",
			})
		}

		c.Namespace = ns
		var diags []Diagnostic
		acc, diags = spec.Apply(acc, c)
		for _, d := range diags {
			d.Namespace = ns
			report.add(d)
		}
		report.Loaded = append(report.Loaded, ns)
		logger.Debug("fragment applied", "namespace", ns, "adds", len(c.Adds), "removes", len(c.Removes))
	}
	return acc, report
}

// withDefault wraps the vanilla loader: when reading fails and a default is
// known, the fragment is rewritten from the default and read once more.
func withDefault[E any](a *Aggregator, configName string, def []byte, load Loader[E]) Loader[E] {
	return func(scope namespace.Scope) (Contribution[E], error) {
		c, err := load(scope)
		if err == nil || len(def) == 0 {
			return c, err
		}

		a.logger().Warn("vanilla fragment invalid, recreating",
			"namespace", scope.Loading, "config", configName, "err", err)
		if werr := a.Store.WriteFragment(scope.Loading, configName, def); werr != nil {
			return c, errors.Join(err, werr)
		}
		c, err = load(scope)
		if err != nil {
			return c, fmt.Errorf("built-in default rejected: %w", err)
		}
		c.Recreated = true
		return c, nil
	}
}

// split separates removal entries from additions. With honor unset every entry
// is an addition.
func (a *Aggregator) split(entries []string, honor bool) (adds, removes []string) {
	marker := a.marker()
	for _, e := range entries {
		if name, ok := strings.CutPrefix(e, marker); honor && ok {
			removes = append(removes, name)
			continue
		}
		adds = append(adds, e)
	}
	return adds, removes
}

// resolveAll namespaces every entry. The first failure rejects the whole list.
func (a *Aggregator) resolveAll(entries []string, scope namespace.Scope) ([]string, error) {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		resolved, ok := a.Resolver.Resolve(e, scope, true)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnresolvable, e)
		}
		out = append(out, resolved)
	}
	return out, nil
}
