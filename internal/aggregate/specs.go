// SPDX-License-Identifier: MPL-2.0

package aggregate

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/pkg/enum"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/pkg/enumtree"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/pkg/namespace"
)

type (
	// Item is one key and value added by a map fragment.
	Item[K comparable, V any] struct {
		Key   K
		Value V
	}

	// TreeRegistry is the part of a tree registry aggregation needs.
	// *enumtree.Registry implements it.
	TreeRegistry[D any] interface {
		Name() string
		IsRemovable() bool
		TryAddValue(fullName string, recursive bool) (enumtree.Value[D], bool)
		TryRemoveValue(fullName string, recursive bool) bool
	}
)

var _ TreeRegistry[struct{}] = (*enumtree.Registry[struct{}])(nil)

// List aggregates a list fragment into the union of its entries, in first-seen
// order. Entries are kept as written. The remove marker is only honored when
// honorRemove is set; otherwise marked entries are added literally.
func List(a *Aggregator, configName string, honorRemove bool, def []byte) Spec[[]string, string] {
	load := func(scope namespace.Scope) (Contribution[string], error) {
		entries, err := a.Store.ReadListFragment(scope.Loading, configName)
		if err != nil {
			return Contribution[string]{}, err
		}
		adds, removes := a.split(entries, honorRemove)
		return Contribution[string]{Adds: adds, Removes: removes}, nil
	}

	return Spec[[]string, string]{
		ConfigName: configName,
		Start:      func() []string { return nil },
		Apply: func(acc []string, c Contribution[string]) ([]string, []Diagnostic) {
			for _, name := range c.Adds {
				if !slices.Contains(acc, name) {
					acc = append(acc, name)
				}
			}
			acc = slices.DeleteFunc(acc, func(name string) bool { return slices.Contains(c.Removes, name) })
			return acc, nil
		},
		LoadVanilla: withDefault(a, configName, def, load),
		LoadOther:   load,
	}
}

// Map aggregates a map fragment. Later namespaces overwrite earlier values for
// the same key and marked keys delete.
func Map[V any](a *Aggregator, configName string, def []byte) Spec[map[string]V, Item[string, V]] {
	return MapWithKey[string, V](a, configName, func(s string) (string, error) { return s, nil }, def)
}

// MapWithKey is Map with keys converted by parseKey. A key that does not
// parse rejects the fragment.
func MapWithKey[K comparable, V any](a *Aggregator, configName string, parseKey func(string) (K, error), def []byte) Spec[map[K]V, Item[K, V]] {
	// Removals travel as raw keys and are parsed again when applied.
	load := func(scope namespace.Scope) (Contribution[Item[K, V]], error) {
		entries, err := a.Store.ReadMapFragment(scope.Loading, configName)
		if err != nil {
			return Contribution[Item[K, V]]{}, err
		}
		var c Contribution[Item[K, V]]
		marker := a.marker()
		for _, e := range entries {
			if raw, ok := strings.CutPrefix(e.Key, marker); ok {
				if _, err := parseKey(raw); err != nil {
					return c, fmt.Errorf("key %q: %w", e.Key, err)
				}
				c.Removes = append(c.Removes, raw)
				continue
			}
			key, err := parseKey(e.Key)
			if err != nil {
				return c, fmt.Errorf("key %q: %w", e.Key, err)
			}
			var v V
			if err := e.Value.Decode(&v); err != nil {
				return c, fmt.Errorf("value of %q: %w", e.Key, err)
			}
			c.Adds = append(c.Adds, Item[K, V]{Key: key, Value: v})
		}
		return c, nil
	}

	return Spec[map[K]V, Item[K, V]]{
		ConfigName: configName,
		Start:      func() map[K]V { return make(map[K]V) },
		Apply: func(acc map[K]V, c Contribution[Item[K, V]]) (map[K]V, []Diagnostic) {
			for _, item := range c.Adds {
				acc[item.Key] = item.Value
			}
			for _, raw := range c.Removes {
				if key, err := parseKey(raw); err == nil {
					delete(acc, key)
				}
			}
			return acc, nil
		},
		LoadVanilla: withDefault(a, configName, def, load),
		LoadOther:   load,
	}
}

// FlatEnum aggregates a list fragment into reg. Entries are namespaced first
// and one entry that cannot be namespaced rejects the fragment. Removals on a
// registry that is not removable are reported and skipped.
func FlatEnum[D any](a *Aggregator, reg enum.Enum[D], configName string, def []byte) Spec[enum.Enum[D], string] {
	load := a.enumLoader(configName)
	return Spec[enum.Enum[D], string]{
		ConfigName: configName,
		Start:      func() enum.Enum[D] { return reg },
		Apply: func(acc enum.Enum[D], c Contribution[string]) (enum.Enum[D], []Diagnostic) {
			var diags []Diagnostic
			for _, name := range c.Adds {
				if _, added := acc.TryAdd(name); !added && !acc.Contains(name) {
					diags = append(diags, entryRejected(acc.Name(), name))
				}
			}
			for _, name := range c.Removes {
				if !acc.IsRemovable() {
					diags = append(diags, a.removeDenied(acc.Name(), c.Namespace, name))
					continue
				}
				acc.TryRemove(name)
			}
			return acc, diags
		},
		LoadVanilla: withDefault(a, configName, def, load),
		LoadOther:   load,
	}
}

// TreeEnum aggregates a list fragment of full names into reg. Missing parents
// are created. Removing a value removes its subtree.
func TreeEnum[D any](a *Aggregator, reg TreeRegistry[D], configName string, def []byte) Spec[TreeRegistry[D], string] {
	load := a.enumLoader(configName)
	return Spec[TreeRegistry[D], string]{
		ConfigName: configName,
		Start:      func() TreeRegistry[D] { return reg },
		Apply: func(acc TreeRegistry[D], c Contribution[string]) (TreeRegistry[D], []Diagnostic) {
			var diags []Diagnostic
			for _, name := range c.Adds {
				if v, _ := acc.TryAddValue(name, true); v.IsZero() {
					diags = append(diags, entryRejected(acc.Name(), name))
				}
			}
			for _, name := range c.Removes {
				if !acc.IsRemovable() {
					diags = append(diags, a.removeDenied(acc.Name(), c.Namespace, name))
					continue
				}
				acc.TryRemoveValue(name, true)
			}
			return acc, diags
		},
		LoadVanilla: withDefault(a, configName, def, load),
		LoadOther:   load,
	}
}

func (a *Aggregator) enumLoader(configName string) Loader[string] {
	return func(scope namespace.Scope) (Contribution[string], error) {
		entries, err := a.Store.ReadListFragment(scope.Loading, configName)
		if err != nil {
			return Contribution[string]{}, err
		}
		adds, removes := a.split(entries, true)
		if adds, err = a.resolveAll(adds, scope); err != nil {
			return Contribution[string]{}, err
		}
		if removes, err = a.resolveAll(removes, scope); err != nil {
			return Contribution[string]{}, err
		}
		return Contribution[string]{Adds: adds, Removes: removes}, nil
	}
}

func (a *Aggregator) removeDenied(domain string, ns namespace.Name, name string) Diagnostic {
	a.logger().Warn("domain does not allow removal, entry skipped", "domain", domain, "namespace", ns, "value", name)
	return Diagnostic{
		Severity: SeverityWarning,
		Code:     CodeRemoveDenied,
		Message:  fmt.Sprintf("%s does not allow removing %q", domain, name),
		Cause:    &enum.CapabilityError{Domain: domain, Capability: enum.CapabilityRemove},
	}
}

func entryRejected(domain, name string) Diagnostic {
	return Diagnostic{
		Severity: SeverityError,
		Code:     CodeEntryRejected,
		Message:  fmt.Sprintf("%q is not a valid %s name", name, domain),
		Cause:    enum.ErrInvalidName,
	}
}
