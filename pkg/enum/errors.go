// SPDX-License-Identifier: MPL-2.0

package enum

import (
	"errors"
	"fmt"
)

const (
	// CapabilityRemove gates removing single values.
	CapabilityRemove Capability = "remove"
	// CapabilityClear gates removing every value at once.
	CapabilityClear Capability = "clear"
)

var (
	// ErrDuplicateName is returned when a value with the same name already exists.
	ErrDuplicateName = errors.New("duplicate enum value name")
	// ErrNotFound is returned when a lookup by name, path or index finds nothing.
	ErrNotFound = errors.New("enum value not found")
	// ErrCapabilityDenied is returned when a domain does not allow a mutation.
	ErrCapabilityDenied = errors.New("enum capability denied")
	// ErrInvalidName is returned for blank or whitespace-only names.
	ErrInvalidName = errors.New("invalid enum value name")
	// ErrInvalidIndex is returned for negative indices.
	ErrInvalidIndex = errors.New("invalid enum value index")
)

type (
	// Capability names a mutation a domain may opt into.
	Capability string

	// DuplicateNameError is returned when an add collides with an existing value.
	// It wraps ErrDuplicateName for errors.Is() compatibility.
	DuplicateNameError struct {
		Domain string
		Name   string
	}

	// NotFoundError is returned by strict lookups.
	// It wraps ErrNotFound for errors.Is() compatibility.
	NotFoundError struct {
		Domain string
		Key    string
	}

	// CapabilityError is returned when remove or clear is called on a domain that
	// did not enable it. It wraps ErrCapabilityDenied for errors.Is() compatibility.
	CapabilityError struct {
		Domain     string
		Capability Capability
	}
)

// Error implements the error interface for DuplicateNameError.
func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s: value %q already exists", e.Domain, e.Name)
}

// Unwrap returns ErrDuplicateName for errors.Is() compatibility.
func (e *DuplicateNameError) Unwrap() error { return ErrDuplicateName }

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: value %s not found", e.Domain, e.Key)
}

// Unwrap returns ErrNotFound for errors.Is() compatibility.
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Error implements the error interface for CapabilityError.
func (e *CapabilityError) Error() string {
	return fmt.Sprintf("%s: domain does not allow %s", e.Domain, e.Capability)
}

// Unwrap returns ErrCapabilityDenied for errors.Is() compatibility.
func (e *CapabilityError) Unwrap() error { return ErrCapabilityDenied }
