// SPDX-License-Identifier: MPL-2.0

// Package enumtree provides runtime-extensible hierarchical enumerations.
//
// A [Registry] stores a forest of values addressed by a full name such as
// "vanilla:weapon.melee.sword", where each layer is separated by a configurable
// separator rune (default '.'). Every value also has an index path: the index of
// each ancestor among its siblings, root first.
//
// Callers only ever hold read-only [Value] handles. The child sets live in the
// registry's node arena, so a handle cannot be used to mutate the tree; all
// mutation goes through the registry:
//
//	types := enumtree.New[ItemType]("item_type", enumtree.WithRemovable())
//	sword, _ := types.TryAddValue("vanilla:weapon.melee.sword", true)
//	sword.IndexPath() // [0 0 0]
//
// Full-name lookups are served from an index kept in sync with the arena, so
// they cost one map access regardless of depth. Index-path lookups are linear
// in the number of siblings at each level.
package enumtree
