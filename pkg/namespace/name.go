// SPDX-License-Identifier: MPL-2.0

// Package namespace names content namespaces and resolves values into their
// canonical "namespace:name" form.
//
// Values written by content packs may omit their namespace ("sword") or name a
// namespace that is not loaded ("oldmod:sword"). A [Resolver] rewrites both into
// a namespace that is active for the current loading [Scope], so that every name
// stored in an enum registry is fully qualified.
package namespace

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DefaultSeparator separates the namespace from the local name.
const DefaultSeparator = ':'

var (
	// ErrInvalidName is the sentinel error wrapped by InvalidNameError.
	ErrInvalidName = errors.New("invalid namespace name")

	namePattern = regexp.MustCompile(`^[a-z0-9_]*$`)
)

type (
	// Name is a namespace identifier. It doubles as the namespace folder name, so
	// it is restricted to lowercase ASCII letters, digits and underscores.
	Name string

	// InvalidNameError is returned when a Name is empty or contains other characters.
	// It wraps ErrInvalidName for errors.Is() compatibility.
	InvalidNameError struct {
		Value Name
	}
)

// String returns the string representation of the Name.
func (n Name) String() string { return string(n) }

// IsValid returns whether the Name is non-empty and matches ^[a-z0-9_]*$.
func (n Name) IsValid() (bool, []error) {
	if n == "" || !namePattern.MatchString(string(n)) {
		return false, []error{&InvalidNameError{Value: n}}
	}
	return true, nil
}

// Error implements the error interface for InvalidNameError.
func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid namespace %q: must be non-empty and contain only a-z, 0-9 and _", e.Value)
}

// Unwrap returns ErrInvalidName for errors.Is() compatibility.
func (e *InvalidNameError) Unwrap() error { return ErrInvalidName }

// Split cuts s at the first sep. found is false when s has no namespace part.
func Split(s string, sep rune) (ns Name, name string, found bool) {
	before, after, found := strings.Cut(s, string(sep))
	if !found {
		return "", s, false
	}
	return Name(before), after, true
}

// Join builds "ns<sep>name".
func Join(ns Name, name string, sep rune) string {
	return string(ns) + string(sep) + name
}
