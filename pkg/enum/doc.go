// SPDX-License-Identifier: MPL-2.0

// Package enum provides runtime-extensible flat enumerations.
//
// A [Registry] holds the values of one enum domain. The domain is identified by a
// marker type parameter, so values of two domains can never be mixed up:
//
//	type Material struct{}
//
//	materials := enum.New[Material]("material", enum.WithRemovable())
//	wood, err := materials.Add("vanilla:wood")
//
// Values are identified by name. Indices are assigned from a per-registry counter
// and are never reused, so index lookups are linear and meant for diagnostics only.
//
// Registries are not safe for concurrent mutation. Populate them on one goroutine
// (typically during content loading) before readers start.
package enum
