// SPDX-License-Identifier: MPL-2.0

// Package fragment reads and writes the files of a content directory: one
// folder per namespace, each with a descriptor and a configs/ folder of
// fragments, plus the loading order at the root.
//
// The store knows where documents live and how they are encoded. It knows
// nothing about loading order semantics or aggregation.
package fragment

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/pkg/namespace"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/pkg/nsconfig"
)

var (
	// ErrNotFound is returned when a requested document does not exist.
	// Callers can check for this error using errors.Is(err, ErrNotFound).
	ErrNotFound = errors.New("document not found")

	// ErrInvalidConfigName is returned for config names that are not plain file names.
	ErrInvalidConfigName = errors.New("invalid config name")
)

// Store is a content directory on disk.
type Store struct {
	root string
}

// NewStore returns a store rooted at dir. The directory is created lazily on
// the first write.
func NewStore(dir string) *Store {
	return &Store{root: filepath.Clean(dir)}
}

// Root returns the content directory.
func (s *Store) Root() string { return s.root }

// NamespaceDir returns the folder of ns.
func (s *Store) NamespaceDir(ns namespace.Name) string {
	return filepath.Join(s.root, string(ns))
}

// DescriptorPath returns the path of the descriptor of ns.
func (s *Store) DescriptorPath(ns namespace.Name) string {
	return filepath.Join(s.NamespaceDir(ns), nsconfig.DescriptorFile)
}

// LoadingOrderPath returns the path of the loading order file.
func (s *Store) LoadingOrderPath() string {
	return filepath.Join(s.root, nsconfig.LoadingOrderFile)
}

// FragmentPath returns the path of the fragment configName in ns.
func (s *Store) FragmentPath(ns namespace.Name, configName string) string {
	return filepath.Join(s.NamespaceDir(ns), nsconfig.ConfigsDir, configName+nsconfig.FragmentExt)
}

// ListNamespaces returns the namespace folders in directory order. Hidden
// folders and folders whose name is not a valid namespace are skipped. A
// missing content directory has no namespaces.
func (s *Store) ListNamespaces() ([]namespace.Name, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list namespaces in %s: %w", s.root, err)
	}

	var names []namespace.Name
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		name := namespace.Name(entry.Name())
		if ok, _ := name.IsValid(); !ok {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// NamespaceExists reports whether the folder of ns exists.
func (s *Store) NamespaceExists(ns namespace.Name) bool {
	info, err := os.Stat(s.NamespaceDir(ns))
	return err == nil && info.IsDir()
}

// ReadDescriptor parses the descriptor of ns. It returns ErrNotFound when the
// file is missing. A descriptor whose namespace differs from its folder is
// rejected.
func (s *Store) ReadDescriptor(ns namespace.Name) (*nsconfig.ConfigData, error) {
	path := s.DescriptorPath(ns)
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	cd, err := nsconfig.ParseDescriptor(data, path)
	if err != nil {
		return nil, err
	}
	if cd.Namespace != ns {
		return nil, fmt.Errorf("%s: %w: declares namespace %q in folder %q", path, nsconfig.ErrInvalidDescriptor, cd.Namespace, ns)
	}
	return cd, nil
}

// WriteDescriptor writes cd into the folder of its namespace, creating it.
func (s *Store) WriteDescriptor(cd nsconfig.ConfigData) error {
	data, err := nsconfig.FormatDescriptor(cd)
	if err != nil {
		return err
	}
	return writeFile(s.DescriptorPath(cd.Namespace), data)
}

// ReadDescriptors parses the descriptors of every listed namespace. Namespaces
// whose descriptor is missing or invalid are left out and their errors are
// returned per namespace.
func (s *Store) ReadDescriptors(names []namespace.Name) (map[namespace.Name]nsconfig.ConfigData, map[namespace.Name]error) {
	datas := make(map[namespace.Name]nsconfig.ConfigData, len(names))
	var errs map[namespace.Name]error
	for _, ns := range names {
		cd, err := s.ReadDescriptor(ns)
		if err != nil {
			if errs == nil {
				errs = make(map[namespace.Name]error)
			}
			errs[ns] = err
			continue
		}
		datas[ns] = *cd
	}
	return datas, errs
}

// ReadLoadingOrder parses the loading order. It returns ErrNotFound when the
// file is missing.
func (s *Store) ReadLoadingOrder() ([]nsconfig.LoadingEntry, error) {
	path := s.LoadingOrderPath()
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return nsconfig.ParseLoadingOrder(data, path)
}

// WriteLoadingOrder replaces the loading order file.
func (s *Store) WriteLoadingOrder(order []nsconfig.LoadingEntry) error {
	data, err := nsconfig.FormatLoadingOrder(order)
	if err != nil {
		return err
	}
	return writeFile(s.LoadingOrderPath(), data)
}

// FragmentExists reports whether ns has a fragment named configName.
func (s *Store) FragmentExists(ns namespace.Name, configName string) bool {
	if validConfigName(configName) != nil {
		return false
	}
	info, err := os.Stat(s.FragmentPath(ns, configName))
	return err == nil && !info.IsDir()
}

// ReadFragment returns the raw fragment. It returns ErrNotFound when the file
// is missing.
func (s *Store) ReadFragment(ns namespace.Name, configName string) ([]byte, error) {
	if err := validConfigName(configName); err != nil {
		return nil, err
	}
	return readFile(s.FragmentPath(ns, configName))
}

// ReadListFragment reads and decodes a list fragment.
func (s *Store) ReadListFragment(ns namespace.Name, configName string) ([]string, error) {
	data, err := s.ReadFragment(ns, configName)
	if err != nil {
		return nil, err
	}
	return nsconfig.ParseListFragment(data, s.FragmentPath(ns, configName))
}

// ReadMapFragment reads and decodes a map fragment.
func (s *Store) ReadMapFragment(ns namespace.Name, configName string) ([]nsconfig.MapEntry, error) {
	data, err := s.ReadFragment(ns, configName)
	if err != nil {
		return nil, err
	}
	return nsconfig.ParseMapFragment(data, s.FragmentPath(ns, configName))
}

// WriteFragment replaces the fragment configName of ns with data.
func (s *Store) WriteFragment(ns namespace.Name, configName string, data []byte) error {
	if err := validConfigName(configName); err != nil {
		return err
	}
	return writeFile(s.FragmentPath(ns, configName), data)
}

func validConfigName(name string) error {
	if strings.TrimSpace(name) == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidConfigName, name)
	}
	return nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
