// SPDX-License-Identifier: MPL-2.0

package nsconfig

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"cuelang.org/go/cue"

	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/pkg/cueutil"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/pkg/namespace"
)

const (
	// DescriptorFile is the namespace descriptor inside every namespace folder.
	DescriptorFile = "namespace.cue"
	// LoadingOrderFile is the loading order at the content root.
	LoadingOrderFile = "loading_order.cue"
	// ConfigsDir holds the config fragments of a namespace.
	ConfigsDir = "configs"
	// FragmentExt is the extension of fragment files.
	FragmentExt = ".cue"
)

var (
	//go:embed schema.cue
	schema []byte

	// ErrInvalidDescriptor is the sentinel error wrapped by InvalidDescriptorError.
	ErrInvalidDescriptor = errors.New("invalid namespace descriptor")
	// ErrDuplicateNamespace is returned when a loading order names a namespace twice.
	ErrDuplicateNamespace = errors.New("duplicate namespace in loading order")
)

type (
	// ConfigData is the descriptor of one namespace folder.
	ConfigData struct {
		Namespace    namespace.Name   `json:"namespace"`
		Version      string           `json:"version"`
		Dependencies []namespace.Name `json:"dependencies,omitempty"`
	}

	// InvalidDescriptorError reports every problem found in a descriptor.
	// It wraps ErrInvalidDescriptor for errors.Is() compatibility.
	InvalidDescriptorError struct {
		Namespace namespace.Name
		Errs      []error
	}

	// LoadingEntry is one line of the loading order.
	LoadingEntry struct {
		Namespace namespace.Name `json:"-"`
		Enabled   bool           `json:"enabled"`
	}

	// MapEntry is one key of a map fragment, in declaration order.
	MapEntry struct {
		Key   string
		Value cue.Value
	}

	listFragment struct {
		Entries []string `json:"entries"`
	}
)

// IsValid checks the namespace name, the version and every dependency name. A
// namespace may not depend on itself.
func (c ConfigData) IsValid() (bool, []error) {
	var errs []error
	if ok, nameErrs := c.Namespace.IsValid(); !ok {
		errs = append(errs, nameErrs...)
	}
	if strings.TrimSpace(c.Version) == "" {
		errs = append(errs, errors.New("version must not be empty"))
	}
	for _, dep := range c.Dependencies {
		if ok, depErrs := dep.IsValid(); !ok {
			errs = append(errs, depErrs...)
		}
		if dep == c.Namespace && dep != "" {
			errs = append(errs, fmt.Errorf("namespace %q depends on itself", dep))
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidDescriptorError{Namespace: c.Namespace, Errs: errs}}
	}
	return true, nil
}

// DependsOn reports whether ns is a declared dependency.
func (c ConfigData) DependsOn(ns namespace.Name) bool {
	for _, dep := range c.Dependencies {
		if dep == ns {
			return true
		}
	}
	return false
}

// Error implements the error interface.
func (e *InvalidDescriptorError) Error() string {
	msgs := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid descriptor for namespace %q: %s", e.Namespace, strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidDescriptor for errors.Is() compatibility.
func (e *InvalidDescriptorError) Unwrap() error { return ErrInvalidDescriptor }

// ParseDescriptor decodes and validates a namespace.cue document.
func ParseDescriptor(data []byte, path string) (*ConfigData, error) {
	result, err := cueutil.ParseAndDecode[ConfigData](schema, data, "#Descriptor", cueutil.WithFilename(path))
	if err != nil {
		return nil, err
	}
	if ok, errs := result.Value.IsValid(); !ok {
		return nil, fmt.Errorf("%s: %w", path, errs[0])
	}
	return result.Value, nil
}

// FormatDescriptor encodes a descriptor as CUE.
func FormatDescriptor(c ConfigData) ([]byte, error) {
	if ok, errs := c.IsValid(); !ok {
		return nil, errs[0]
	}
	return cueutil.Marshal(c)
}

// ParseLoadingOrder decodes loading_order.cue, keeping the field order.
func ParseLoadingOrder(data []byte, path string) ([]LoadingEntry, error) {
	unified, err := cueutil.Unify(schema, data, "#LoadingOrder", cueutil.WithFilename(path))
	if err != nil {
		return nil, err
	}
	fields, err := cueutil.Fields(unified)
	if err != nil {
		return nil, cueutil.FormatError(err, path)
	}

	order := make([]LoadingEntry, 0, len(fields))
	for _, f := range fields {
		entry := LoadingEntry{Namespace: namespace.Name(f.Label)}
		if ok, errs := entry.Namespace.IsValid(); !ok {
			return nil, fmt.Errorf("%s: %w", path, errs[0])
		}
		if err := f.Value.Decode(&entry); err != nil {
			return nil, cueutil.FormatError(err, path)
		}
		order = append(order, entry)
	}
	return order, nil
}

// FormatLoadingOrder encodes a loading order. Duplicate or invalid namespaces
// are rejected since the result could not be read back.
func FormatLoadingOrder(order []LoadingEntry) ([]byte, error) {
	var doc cueutil.Document
	seen := make(map[namespace.Name]bool, len(order))
	for _, entry := range order {
		if ok, errs := entry.Namespace.IsValid(); !ok {
			return nil, errs[0]
		}
		if seen[entry.Namespace] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNamespace, entry.Namespace)
		}
		seen[entry.Namespace] = true
		if err := doc.Add(string(entry.Namespace), entry); err != nil {
			return nil, err
		}
	}
	return doc.Bytes()
}

// ParseListFragment decodes a fragment of the form entries: [...string].
func ParseListFragment(data []byte, path string) ([]string, error) {
	result, err := cueutil.ParseAndDecode[listFragment](schema, data, "#ListFragment", cueutil.WithFilename(path))
	if err != nil {
		return nil, err
	}
	return result.Value.Entries, nil
}

// ParseMapFragment decodes a fragment of the form entries: {[string]: _}. Keys
// come back in declaration order.
func ParseMapFragment(data []byte, path string) ([]MapEntry, error) {
	unified, err := cueutil.Unify(schema, data, "#MapFragment", cueutil.WithFilename(path))
	if err != nil {
		return nil, err
	}
	fields, err := cueutil.Fields(unified.LookupPath(cue.ParsePath("entries")))
	if err != nil {
		return nil, cueutil.FormatError(err, path)
	}
	entries := make([]MapEntry, 0, len(fields))
	for _, f := range fields {
		entries = append(entries, MapEntry{Key: f.Label, Value: f.Value})
	}
	return entries, nil
}

// FormatListFragment encodes entries as a list fragment.
func FormatListFragment(entries []string) ([]byte, error) {
	if entries == nil {
		entries = []string{}
	}
	return cueutil.Marshal(listFragment{Entries: entries})
}

