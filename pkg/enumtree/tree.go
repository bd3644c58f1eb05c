// SPDX-License-Identifier: MPL-2.0

package enumtree

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/pkg/enum"
)

// DefaultSeparator separates layers of a full name.
const DefaultSeparator = '.'

// forest is the arena slot of the synthetic node whose children are the roots.
const forest nodeID = 0

type (
	nodeID int

	// Value is a read-only handle to a tree value of domain D.
	// Two values are the same value when their full names are equal.
	Value[D any] struct {
		id        nodeID
		owner     *Registry[D]
		indexPath []int
		fullName  string
		name      string
	}

	// Option configures a Registry at construction time.
	Option func(*options)

	options struct {
		separator rune
		removable bool
		clearable bool
	}

	node struct {
		parent    nodeID
		name      string
		fullName  string
		indexPath []int
		children  map[string]nodeID
		// order lists live children by ascending index.
		order     []nodeID
		nextIndex int
		alive     bool
	}

	// Registry is the mutable forest of one hierarchical enum domain.
	Registry[D any] struct {
		domain    string
		separator rune
		removable bool
		clearable bool
		nodes     []node
		byName    map[string]nodeID
		// free lists dead arena slots for AddValue to reuse.
		free []nodeID
	}
)

// WithSeparator sets the layer separator (default '.').
func WithSeparator(sep rune) Option {
	return func(o *options) { o.separator = sep }
}

// WithRemovable lets callers remove single values (and their subtrees).
func WithRemovable() Option {
	return func(o *options) { o.removable = true }
}

// WithClearable lets callers remove every value at once.
func WithClearable() Option {
	return func(o *options) { o.clearable = true }
}

// New creates an empty tree registry for domain D.
func New[D any](domain string, opts ...Option) *Registry[D] {
	o := options{separator: DefaultSeparator}
	for _, opt := range opts {
		opt(&o)
	}
	r := &Registry[D]{
		domain:    domain,
		separator: o.separator,
		removable: o.removable,
		clearable: o.clearable,
	}
	r.Reset()
	return r
}

// IndexPath returns a copy of the value's index path, root first.
func (v Value[D]) IndexPath() []int { return slices.Clone(v.indexPath) }

// FullName returns the separator-joined names of the value and its ancestors.
func (v Value[D]) FullName() string { return v.fullName }

// Name returns the last layer of the full name.
func (v Value[D]) Name() string { return v.name }

// Depth returns the number of layers; roots have depth 1.
func (v Value[D]) Depth() int { return len(v.indexPath) }

// String returns the full name.
func (v Value[D]) String() string { return v.fullName }

// IsZero reports whether v is the zero Value (returned by failed lookups).
func (v Value[D]) IsZero() bool { return v.fullName == "" }

// Equal reports whether v and other name the same value.
func (v Value[D]) Equal(other Value[D]) bool { return v.fullName == other.fullName }

// Name returns the domain name.
func (r *Registry[D]) Name() string { return r.domain }

// Separator returns the layer separator.
func (r *Registry[D]) Separator() rune { return r.separator }

// IsRemovable reports whether single values can be removed.
func (r *Registry[D]) IsRemovable() bool { return r.removable }

// IsClearable reports whether the registry can be cleared.
func (r *Registry[D]) IsClearable() bool { return r.clearable }

func (r *Registry[D]) handle(id nodeID) Value[D] {
	n := &r.nodes[id]
	return Value[D]{
		id:        id,
		owner:     r,
		indexPath: n.indexPath,
		fullName:  n.fullName,
		name:      n.name,
	}
}

// resolve maps a handle back to its live arena node. A nil parent is the forest.
func (r *Registry[D]) resolve(v *Value[D]) (nodeID, bool) {
	if v == nil {
		return forest, true
	}
	if v.owner == r && int(v.id) > 0 && int(v.id) < len(r.nodes) {
		if n := &r.nodes[v.id]; n.alive && n.fullName == v.fullName {
			return v.id, true
		}
	}
	// Stale or foreign handle: identity is the full name.
	id, ok := r.byName[v.fullName]
	return id, ok
}

func (r *Registry[D]) validName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%s: %w: %q", r.domain, enum.ErrInvalidName, name)
	}
	if strings.ContainsRune(name, r.separator) {
		return fmt.Errorf("%s: %w: %q contains layer separator %q", r.domain, enum.ErrInvalidName, name, r.separator)
	}
	return nil
}

// AddValue adds name as a child of parent, or as a root when parent is nil.
// It fails when a sibling with the same name exists or the parent is unknown.
func (r *Registry[D]) AddValue(parent *Value[D], name string) (Value[D], error) {
	if err := r.validName(name); err != nil {
		return Value[D]{}, err
	}
	pid, ok := r.resolve(parent)
	if !ok {
		return Value[D]{}, &enum.NotFoundError{Domain: r.domain, Key: strconv.Quote(parent.fullName)}
	}
	p := &r.nodes[pid]
	if _, exists := p.children[name]; exists {
		return Value[D]{}, &enum.DuplicateNameError{Domain: r.domain, Name: r.join(p.fullName, name)}
	}

	indexPath := make([]int, len(p.indexPath)+1)
	copy(indexPath, p.indexPath)
	indexPath[len(p.indexPath)] = p.nextIndex
	p.nextIndex++

	fullName := r.join(p.fullName, name)
	n := node{
		parent:    pid,
		name:      name,
		fullName:  fullName,
		indexPath: indexPath,
		children:  make(map[string]nodeID),
		alive:     true,
	}
	// p may dangle after append grows the arena; write through the index.
	var id nodeID
	if last := len(r.free) - 1; last >= 0 {
		id = r.free[last]
		r.free = r.free[:last]
		r.nodes[id] = n
	} else {
		id = nodeID(len(r.nodes))
		r.nodes = append(r.nodes, n)
	}
	r.nodes[pid].children[name] = id
	r.nodes[pid].order = append(r.nodes[pid].order, id)
	r.byName[fullName] = id
	return r.handle(id), nil
}

// TryAddValue adds the value at fullName. If it already exists the existing value
// is returned with false. With recursive set, missing ancestors are created first,
// root to leaf. Malformed paths create nothing and return the zero Value.
func (r *Registry[D]) TryAddValue(fullName string, recursive bool) (Value[D], bool) {
	if id, ok := r.byName[fullName]; ok {
		return r.handle(id), false
	}
	if !r.wellFormed(fullName) {
		return Value[D]{}, false
	}

	parentPath, leaf, hasParent := r.splitLast(fullName)
	if !hasParent {
		v, err := r.AddValue(nil, leaf)
		return v, err == nil
	}

	parent, ok := r.TryGetValue(parentPath)
	if !ok {
		if !recursive {
			return Value[D]{}, false
		}
		parent, _ = r.TryAddValue(parentPath, true)
		if parent.IsZero() {
			return Value[D]{}, false
		}
	}
	v, err := r.AddValue(&parent, leaf)
	return v, err == nil
}

// RemoveValue removes the child called name (and everything below it) from
// parent, or a root when parent is nil. The domain must be removable.
func (r *Registry[D]) RemoveValue(parent *Value[D], name string) error {
	if !r.removable {
		return &enum.CapabilityError{Domain: r.domain, Capability: enum.CapabilityRemove}
	}
	pid, ok := r.resolve(parent)
	if !ok {
		return &enum.NotFoundError{Domain: r.domain, Key: strconv.Quote(parent.fullName)}
	}
	id, ok := r.nodes[pid].children[name]
	if !ok {
		return &enum.NotFoundError{Domain: r.domain, Key: strconv.Quote(r.join(r.nodes[pid].fullName, name))}
	}

	p := &r.nodes[pid]
	delete(p.children, name)
	p.order = slices.DeleteFunc(p.order, func(c nodeID) bool { return c == id })
	r.kill(id)
	return nil
}

// kill retires id and its subtree. Retired slots go to the free list; a stale
// handle to a reused slot fails the fullName check in resolve.
func (r *Registry[D]) kill(id nodeID) {
	n := &r.nodes[id]
	n.alive = false
	delete(r.byName, n.fullName)
	for _, c := range n.order {
		r.kill(c)
	}
	r.nodes[id] = node{parent: forest}
	r.free = append(r.free, id)
}

// TryRemoveValue removes the value at fullName and its subtree. With recursive
// unset only a root-level name is looked up. It reports false when the domain is
// not removable or nothing was found.
func (r *Registry[D]) TryRemoveValue(fullName string, recursive bool) bool {
	if !r.removable {
		return false
	}
	var (
		v  Value[D]
		ok bool
	)
	if recursive {
		v, ok = r.TryGetValue(fullName)
	} else {
		v, ok = r.TryGetChildValue(nil, fullName)
	}
	if !ok {
		return false
	}
	var parent *Value[D]
	if pid := r.nodes[v.id].parent; pid != forest {
		p := r.handle(pid)
		parent = &p
	}
	return r.RemoveValue(parent, v.name) == nil
}

// Clear removes every value. The domain must be clearable. Root indices keep
// counting from where they were.
func (r *Registry[D]) Clear() error {
	if !r.clearable {
		return &enum.CapabilityError{Domain: r.domain, Capability: enum.CapabilityClear}
	}
	next := r.nodes[forest].nextIndex
	r.Reset()
	r.nodes[forest].nextIndex = next
	return nil
}

// Reset drops every value and restarts index assignment regardless of capabilities.
func (r *Registry[D]) Reset() {
	r.nodes = []node{{parent: forest, children: make(map[string]nodeID), alive: true}}
	r.byName = make(map[string]nodeID)
	r.free = nil
}

func (r *Registry[D]) join(parentFullName, name string) string {
	if parentFullName == "" {
		return name
	}
	return parentFullName + string(r.separator) + name
}

func (r *Registry[D]) splitLast(fullName string) (parentPath, leaf string, hasParent bool) {
	i := strings.LastIndex(fullName, string(r.separator))
	if i < 0 {
		return "", fullName, false
	}
	return fullName[:i], fullName[i+len(string(r.separator)):], true
}

// wellFormed reports whether every layer of fullName is a valid name.
func (r *Registry[D]) wellFormed(fullName string) bool {
	for _, segment := range strings.Split(fullName, string(r.separator)) {
		if strings.TrimSpace(segment) == "" {
			return false
		}
	}
	return true
}
