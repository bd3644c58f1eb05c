// SPDX-License-Identifier: MPL-2.0

// Package loadorder maintains the ordered list of namespaces that are loaded
// and keeps it consistent with the namespace folders on disk.
package loadorder

import (
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/internal/fragment"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/internal/issue"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/pkg/namespace"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/pkg/nsconfig"
)

var (
	// ErrLoadOrderUnavailable is returned when the loading order cannot be read
	// back even after it was rewritten.
	ErrLoadOrderUnavailable = errors.New("loading order unavailable")

	// ErrUnknownNamespace is returned when an edit names a namespace that is not
	// part of the loading order.
	ErrUnknownNamespace = errors.New("namespace not in loading order")
)

type (
	// Store is the part of the content directory the manager works on.
	// *fragment.Store implements it.
	Store interface {
		ListNamespaces() ([]namespace.Name, error)
		ReadDescriptor(ns namespace.Name) (*nsconfig.ConfigData, error)
		WriteDescriptor(cd nsconfig.ConfigData) error
		ReadLoadingOrder() ([]nsconfig.LoadingEntry, error)
		WriteLoadingOrder(order []nsconfig.LoadingEntry) error
	}

	// Manager reads, writes and repairs the loading order.
	Manager struct {
		store   Store
		vanilla nsconfig.ConfigData
		logger  *log.Logger
	}

	// Reconciled is the outcome of GetAndReconcile.
	Reconciled struct {
		Order []nsconfig.LoadingEntry
		// VanillaInvalid is set when the vanilla descriptor had to be recreated.
		VanillaInvalid bool
		// Changed is set when the loading order file was rewritten.
		Changed bool
	}
)

// NewManager returns a manager for store. vanilla is the descriptor the
// built-in namespace must have on disk. A nil logger uses log.Default().
func NewManager(store Store, vanilla nsconfig.ConfigData, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{store: store, vanilla: vanilla, logger: logger}
}

// Vanilla returns the built-in namespace.
func (m *Manager) Vanilla() namespace.Name { return m.vanilla.Namespace }

// Get reads the persisted order. It returns false when the file is missing,
// empty or cannot be parsed; the reason is logged.
func (m *Manager) Get() ([]nsconfig.LoadingEntry, bool) {
	order, err := m.store.ReadLoadingOrder()
	switch {
	case errors.Is(err, fragment.ErrNotFound):
		m.logger.Debug("no loading order yet")
		return nil, false
	case err != nil:
		m.logger.Warn("loading order unreadable", "err", err)
		return nil, false
	case len(order) == 0:
		m.logger.Debug("loading order is empty")
		return nil, false
	}
	return order, true
}

// Set persists order as given.
func (m *Manager) Set(order []nsconfig.LoadingEntry) error {
	if err := m.store.WriteLoadingOrder(order); err != nil {
		return fmt.Errorf("failed to save loading order: %w", err)
	}
	return nil
}

// GetOrCreate returns the persisted order, or builds one from the namespace
// folders on disk (vanilla first, everything enabled) and saves it.
func (m *Manager) GetOrCreate() ([]nsconfig.LoadingEntry, error) {
	if order, ok := m.Get(); ok {
		return order, nil
	}

	folders, err := m.store.ListNamespaces()
	if err != nil {
		return nil, err
	}
	order := []nsconfig.LoadingEntry{{Namespace: m.vanilla.Namespace, Enabled: true}}
	for _, ns := range folders {
		if ns != m.vanilla.Namespace {
			order = append(order, nsconfig.LoadingEntry{Namespace: ns, Enabled: true})
		}
	}
	if err := m.Set(order); err != nil {
		return nil, err
	}
	m.logger.Info("loading order created", "namespaces", len(order))
	return order, nil
}

// GetAndReconcile repairs the content directory and returns the loading order:
//
//   - the vanilla descriptor is recreated when missing or outdated
//   - entries without a folder and repeated entries are dropped (first wins)
//   - vanilla is put first when it is missing from the order
//   - folders not yet in the order are appended in directory order
//
// New entries are enabled when defaultEnabled is set; for vanilla the default
// is inverted by vanillaInvert. The file is written only when it changed.
func (m *Manager) GetAndReconcile(defaultEnabled, vanillaInvert bool) (Reconciled, error) {
	var result Reconciled

	recreated, err := m.ensureVanilla()
	if err != nil {
		return result, err
	}
	result.VanillaInvalid = recreated

	folders, err := m.store.ListNamespaces()
	if err != nil {
		return result, err
	}

	persisted, ok := m.Get()
	order := reconcile(persisted, folders, m.vanilla.Namespace, defaultEnabled, vanillaInvert)
	result.Order = order
	result.Changed = !ok || !slices.Equal(persisted, order)
	if !result.Changed {
		return result, nil
	}

	if err := m.Set(order); err != nil {
		return result, m.unavailable(err)
	}
	if !ok {
		// The file was missing or broken: make sure the rewrite is readable.
		if _, ok := m.Get(); !ok {
			return result, m.unavailable(nil)
		}
	}
	m.logger.Info("loading order updated", "namespaces", len(order))
	return result, nil
}

// SetEnabled switches ns on or off.
func (m *Manager) SetEnabled(ns namespace.Name, enabled bool) error {
	order, err := m.GetOrCreate()
	if err != nil {
		return err
	}
	i := indexOf(order, ns)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownNamespace, ns)
	}
	if order[i].Enabled == enabled {
		return nil
	}
	order[i].Enabled = enabled
	return m.Set(order)
}

// Move places ns at position, clamped to the bounds of the order.
func (m *Manager) Move(ns namespace.Name, position int) error {
	order, err := m.GetOrCreate()
	if err != nil {
		return err
	}
	i := indexOf(order, ns)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownNamespace, ns)
	}
	position = max(0, min(position, len(order)-1))
	if position == i {
		return nil
	}
	entry := order[i]
	order = slices.Delete(order, i, i+1)
	order = slices.Insert(order, position, entry)
	return m.Set(order)
}

// ensureVanilla rewrites the vanilla descriptor unless it exists with the
// expected namespace and version. It reports whether it did.
func (m *Manager) ensureVanilla() (bool, error) {
	cd, err := m.store.ReadDescriptor(m.vanilla.Namespace)
	if err == nil && cd.Version == m.vanilla.Version {
		return false, nil
	}

	if err != nil {
		m.logger.Warn("vanilla descriptor invalid, recreating", "namespace", m.vanilla.Namespace, "err", err)
	} else {
		m.logger.Warn("vanilla descriptor outdated, recreating", "namespace", m.vanilla.Namespace,
			"version", cd.Version, "expected", m.vanilla.Version)
	}
	if err := m.store.WriteDescriptor(m.vanilla); err != nil {
		return true, issue.NewErrorContext().
			WithOperation("recreate vanilla descriptor").
			WithNamespace(m.vanilla.Namespace).
			WithSuggestion("Check that the content directory is writable").
			Wrap(err).
			BuildError()
	}
	return true, nil
}

func (m *Manager) unavailable(cause error) error {
	err := ErrLoadOrderUnavailable
	if cause != nil {
		err = fmt.Errorf("%w: %w", ErrLoadOrderUnavailable, cause)
	}
	return issue.NewErrorContext().
		WithOperation("obtain loading order").
		WithSuggestions(
			"Check that the content directory is writable",
			"Delete loading_order.cue and run 'contentctl order reconcile'",
		).
		WithIssue(issue.LoadOrderCorruptedId).
		Wrap(err).
		BuildError()
}

func reconcile(persisted []nsconfig.LoadingEntry, folders []namespace.Name, vanilla namespace.Name, defaultEnabled, vanillaInvert bool) []nsconfig.LoadingEntry {
	exists := make(map[namespace.Name]bool, len(folders))
	for _, ns := range folders {
		exists[ns] = true
	}
	exists[vanilla] = true

	order := make([]nsconfig.LoadingEntry, 0, len(folders)+1)
	seen := make(map[namespace.Name]bool, len(folders)+1)
	for _, entry := range persisted {
		if !exists[entry.Namespace] || seen[entry.Namespace] {
			continue
		}
		seen[entry.Namespace] = true
		order = append(order, entry)
	}

	if !seen[vanilla] {
		seen[vanilla] = true
		order = slices.Insert(order, 0, nsconfig.LoadingEntry{Namespace: vanilla, Enabled: defaultEnabled != vanillaInvert})
	}
	for _, ns := range folders {
		if !seen[ns] {
			seen[ns] = true
			order = append(order, nsconfig.LoadingEntry{Namespace: ns, Enabled: defaultEnabled})
		}
	}
	return order
}

func indexOf(order []nsconfig.LoadingEntry, ns namespace.Name) int {
	return slices.IndexFunc(order, func(e nsconfig.LoadingEntry) bool { return e.Namespace == ns })
}
