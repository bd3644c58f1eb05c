// SPDX-License-Identifier: MPL-2.0

package enumtree

import (
	"slices"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genPath produces dotted paths of one to four short layers.
func genPath() gopter.Gen {
	// An empty layer ends the path early, which varies the depth.
	return gen.SliceOfN(4, gen.OneConstOf("a", "b", "c", "d", "")).
		Map(func(layers []string) string {
			end := slices.Index(layers, "")
			if end == 0 {
				return "a"
			}
			if end > 0 {
				layers = layers[:end]
			}
			return strings.Join(layers, ".")
		})
}

func TestTreeProperties(t *testing.T) {
	t.Parallel()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("every value links to the parent at its index-path prefix", prop.ForAll(
		func(paths []string) bool {
			r := New[itemType]("prop")
			for _, p := range paths {
				r.TryAddValue(p, true)
			}
			for _, v := range r.AllValues() {
				path := v.IndexPath()
				if len(path) != strings.Count(v.FullName(), ".")+1 {
					return false
				}
				if len(path) == 1 {
					continue
				}
				parent, ok := r.TryGetValueByIndexPath(path[:len(path)-1])
				if !ok {
					return false
				}
				if v.FullName() != parent.FullName()+"."+v.Name() {
					return false
				}
				if linked, _ := r.Parent(v); !linked.Equal(parent) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genPath()),
	))

	properties.Property("recursive add is idempotent", prop.ForAll(
		func(paths []string) bool {
			r := New[itemType]("prop")
			for _, p := range paths {
				r.TryAddValue(p, true)
			}
			before := r.AllFullNames()
			for _, p := range paths {
				if _, added := r.TryAddValue(p, true); added {
					return false
				}
			}
			return slices.Equal(before, r.AllFullNames())
		},
		gen.SliceOf(genPath()),
	))

	properties.Property("full names are unique", prop.ForAll(
		func(paths []string) bool {
			r := New[itemType]("prop")
			for _, p := range paths {
				r.TryAddValue(p, true)
			}
			seen := make(map[string]bool)
			for _, name := range r.AllFullNames() {
				if seen[name] {
					return false
				}
				seen[name] = true
			}
			return len(seen) == r.AllCount()
		},
		gen.SliceOf(genPath()),
	))

	properties.TestingRun(t)
}
