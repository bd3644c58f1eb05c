// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers for tests that fail fast on setup errors.
//
// Environment helpers (MustSetenv, MustUnsetenv, SetHomeDir) return a cleanup
// function that restores the previous value. ContentDir builds a content
// directory on disk from namespaces, fragments and a loading order.
package testutil
