// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// suggestions for fixing it. The Issue catalog holds longer Markdown guidance
// for the failures users of a content directory run into most, rendered with
// glamour.
package issue
