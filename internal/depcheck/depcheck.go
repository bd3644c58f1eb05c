// SPDX-License-Identifier: MPL-2.0

// Package depcheck checks the declared dependencies of every enabled namespace
// against the loading order. It reports problems and never changes the order;
// SuggestOrder proposes one that satisfies the dependencies.
package depcheck

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/internal/dag"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/pkg/namespace"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/pkg/nsconfig"
)

const (
	// Missing means the dependency is not in the loading order.
	Missing Kind = iota + 1
	// Disabled means the dependency is in the loading order but switched off.
	Disabled
	// OutOfOrder means the dependency is enabled but loads after its dependant.
	OutOfOrder
)

type (
	// Kind classifies a dependency violation.
	Kind int

	// Violation is one unmet dependency.
	Violation struct {
		Dependency namespace.Name
		Kind       Kind
	}

	// Result maps a namespace to its violations. Namespaces without problems
	// are absent. A present key with a nil slice means the namespace has no
	// descriptor at all.
	Result map[namespace.Name][]Violation
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Missing:
		return "missing"
	case Disabled:
		return "disabled"
	case OutOfOrder:
		return "out of order"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (v Violation) String() string {
	return fmt.Sprintf("%s (%s)", v.Dependency, v.Kind)
}

// Validate checks every enabled namespace of order against its descriptor in
// datas. Each dependency is checked for being missing, disabled and loaded too
// late, in that order, and reported once.
func Validate(order []nsconfig.LoadingEntry, datas map[namespace.Name]nsconfig.ConfigData) Result {
	position := make(map[namespace.Name]int, len(order))
	for i, entry := range order {
		if _, ok := position[entry.Namespace]; !ok {
			position[entry.Namespace] = i
		}
	}

	result := make(Result)
	for i, entry := range order {
		if !entry.Enabled {
			continue
		}
		cd, ok := datas[entry.Namespace]
		if !ok {
			result[entry.Namespace] = nil
			continue
		}

		var violations []Violation
		for _, dep := range cd.Dependencies {
			pos, listed := position[dep]
			switch {
			case !listed:
				violations = append(violations, Violation{Dependency: dep, Kind: Missing})
			case !order[pos].Enabled:
				violations = append(violations, Violation{Dependency: dep, Kind: Disabled})
			case pos > i:
				violations = append(violations, Violation{Dependency: dep, Kind: OutOfOrder})
			}
		}
		if len(violations) > 0 {
			result[entry.Namespace] = violations
		}
	}
	return result
}

// OK reports whether nothing was found.
func (r Result) OK() bool { return len(r) == 0 }

// MissingDescriptor reports whether ns was reported for lacking a descriptor.
func (r Result) MissingDescriptor(ns namespace.Name) bool {
	v, ok := r[ns]
	return ok && v == nil
}

// Namespaces returns the reported namespaces sorted by name.
func (r Result) Namespaces() []namespace.Name {
	names := make([]namespace.Name, 0, len(r))
	for ns := range r {
		names = append(names, ns)
	}
	slices.Sort(names)
	return names
}

// Skip returns the namespaces whose content should not be loaded: those with
// violations and, when withoutDescriptor is set, those without a descriptor.
func (r Result) Skip(withoutDescriptor bool) []namespace.Name {
	var skip []namespace.Name
	for _, ns := range r.Namespaces() {
		if r[ns] != nil || withoutDescriptor {
			skip = append(skip, ns)
		}
	}
	return skip
}

// String renders one line per namespace, sorted by name.
func (r Result) String() string {
	var b strings.Builder
	for _, ns := range r.Namespaces() {
		if r[ns] == nil {
			fmt.Fprintf(&b, "%s: no descriptor\n", ns)
			continue
		}
		parts := make([]string, 0, len(r[ns]))
		for _, v := range r[ns] {
			parts = append(parts, v.String())
		}
		fmt.Fprintf(&b, "%s: %s\n", ns, strings.Join(parts, ", "))
	}
	return b.String()
}

// SuggestOrder reorders order so that every namespace comes after the
// dependencies it declares, changing as little as possible otherwise. Enabled
// flags are kept. Dependencies that are not in the order are ignored, as is a
// namespace listing itself, which Validate does not report either. A
// dependency cycle returns a *dag.CycleError[namespace.Name].
func SuggestOrder(order []nsconfig.LoadingEntry, datas map[namespace.Name]nsconfig.ConfigData) ([]nsconfig.LoadingEntry, error) {
	g := dag.New[namespace.Name]()
	entries := make(map[namespace.Name]nsconfig.LoadingEntry, len(order))
	for _, entry := range order {
		if _, dup := entries[entry.Namespace]; dup {
			continue
		}
		entries[entry.Namespace] = entry
		g.AddNode(entry.Namespace)
	}
	for _, entry := range order {
		for _, dep := range datas[entry.Namespace].Dependencies {
			if _, listed := entries[dep]; listed && dep != entry.Namespace {
				g.AddEdge(dep, entry.Namespace)
			}
		}
	}

	sorted, err := g.TopologicalSort()
	if err != nil {
		return nil, err
	}
	out := make([]nsconfig.LoadingEntry, 0, len(sorted))
	for _, ns := range sorted {
		out = append(out, entries[ns])
	}
	return out, nil
}

