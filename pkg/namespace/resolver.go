// SPDX-License-Identifier: MPL-2.0

package namespace

import (
	"slices"
	"strings"

	"github.com/charmbracelet/log"
)

type (
	// Scope describes one loading step: the namespaces that are active in this
	// aggregation pass and the namespace whose content is being read.
	Scope struct {
		Active  []Name
		Loading Name
	}

	// Resolver turns possibly unqualified value names into "namespace:name".
	Resolver struct {
		// Separator between namespace and name; zero means DefaultSeparator.
		Separator rune
		// Vanilla is the built-in namespace.
		Vanilla Name
		// DefaultToVanilla makes unqualified or unknown values fall back to the
		// vanilla namespace instead of the namespace being loaded.
		DefaultToVanilla bool
		// Logger receives rewrite events; nil uses log.Default().
		Logger *log.Logger
	}
)

// Contains reports whether ns is active in the scope.
func (s Scope) Contains(ns Name) bool {
	return slices.Contains(s.Active, ns)
}

func (r *Resolver) sep() rune {
	if r.Separator == 0 {
		return DefaultSeparator
	}
	return r.Separator
}

func (r *Resolver) logger() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}

// Resolve qualifies str for the given scope. A value whose namespace is active is
// returned unchanged; an unknown or invalid namespace is replaced by the default
// namespace (warn); a missing one is prepended (debug). Blank input and input
// ending in the separator fail.
func (r *Resolver) Resolve(str string, scope Scope, logChange bool) (string, bool) {
	def := scope.Loading
	if r.DefaultToVanilla || def == "" {
		def = r.Vanilla
	}
	return r.resolve(str, scope.Contains, def, logChange)
}

// ResolveIn qualifies str against a single explicit namespace, which is both the
// only active namespace and the default.
func (r *Resolver) ResolveIn(str string, ns Name, logChange bool) (string, bool) {
	return r.resolve(str, func(n Name) bool { return n == ns }, ns, logChange)
}

func (r *Resolver) resolve(str string, active func(Name) bool, def Name, logChange bool) (string, bool) {
	sep := r.sep()
	if strings.TrimSpace(str) == "" || strings.HasSuffix(str, string(sep)) || def == "" {
		return "", false
	}

	ns, name, qualified := Split(str, sep)
	if strings.TrimSpace(name) == "" {
		return "", false
	}
	if !qualified {
		out := Join(def, name, sep)
		if logChange {
			r.logger().Debug("namespace added to value", "value", str, "resolved", out)
		}
		return out, true
	}

	if valid, _ := ns.IsValid(); valid && active(ns) {
		return str, true
	}
	out := Join(def, name, sep)
	if logChange {
		r.logger().Warn("unknown namespace in value, using default", "value", str, "namespace", ns, "resolved", out)
	}
	return out, true
}
