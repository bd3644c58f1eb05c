// SPDX-License-Identifier: MPL-2.0

package enumtree

import (
	"fmt"
	"strconv"

	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/pkg/enum"
)

// TryGetValue returns the value at fullName.
func (r *Registry[D]) TryGetValue(fullName string) (Value[D], bool) {
	id, ok := r.byName[fullName]
	if !ok {
		return Value[D]{}, false
	}
	return r.handle(id), true
}

// GetValue returns the value at fullName or a NotFoundError.
func (r *Registry[D]) GetValue(fullName string) (Value[D], error) {
	v, ok := r.TryGetValue(fullName)
	if !ok {
		return Value[D]{}, &enum.NotFoundError{Domain: r.domain, Key: strconv.Quote(fullName)}
	}
	return v, nil
}

// Contains reports whether a value exists at fullName.
func (r *Registry[D]) Contains(fullName string) bool {
	_, ok := r.byName[fullName]
	return ok
}

// TryGetChildValue returns the direct child of parent called name. A nil parent
// looks among the roots.
func (r *Registry[D]) TryGetChildValue(parent *Value[D], name string) (Value[D], bool) {
	pid, ok := r.resolve(parent)
	if !ok {
		return Value[D]{}, false
	}
	id, ok := r.nodes[pid].children[name]
	if !ok {
		return Value[D]{}, false
	}
	return r.handle(id), true
}

// Parent returns the parent of v. Roots and unknown values report false.
func (r *Registry[D]) Parent(v Value[D]) (Value[D], bool) {
	id, ok := r.resolve(&v)
	if !ok {
		return Value[D]{}, false
	}
	pid := r.nodes[id].parent
	if pid == forest {
		return Value[D]{}, false
	}
	return r.handle(pid), true
}

// TryGetValueByIndexPath walks the tree one layer per index. Each layer is a
// linear scan over the siblings, so keep this off hot paths.
func (r *Registry[D]) TryGetValueByIndexPath(indexPath []int) (Value[D], bool) {
	if len(indexPath) == 0 {
		return Value[D]{}, false
	}
	current := forest
	for depth, index := range indexPath {
		if index < 0 {
			return Value[D]{}, false
		}
		next, found := forest, false
		for _, c := range r.nodes[current].order {
			if r.nodes[c].indexPath[depth] == index {
				next, found = c, true
				break
			}
		}
		if !found {
			return Value[D]{}, false
		}
		current = next
	}
	return r.handle(current), true
}

// GetValueByIndexPath is the strict form of TryGetValueByIndexPath.
func (r *Registry[D]) GetValueByIndexPath(indexPath []int) (Value[D], error) {
	if len(indexPath) == 0 {
		return Value[D]{}, fmt.Errorf("%s: %w: empty index path", r.domain, enum.ErrInvalidIndex)
	}
	for _, index := range indexPath {
		if index < 0 {
			return Value[D]{}, fmt.Errorf("%s: %w: %v", r.domain, enum.ErrInvalidIndex, indexPath)
		}
	}
	v, ok := r.TryGetValueByIndexPath(indexPath)
	if !ok {
		return Value[D]{}, &enum.NotFoundError{Domain: r.domain, Key: fmt.Sprint(indexPath)}
	}
	return v, nil
}

// Names returns the names of parent's direct children (roots when parent is nil),
// in index order.
func (r *Registry[D]) Names(parent *Value[D]) []string {
	pid, ok := r.resolve(parent)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(r.nodes[pid].order))
	for _, c := range r.nodes[pid].order {
		out = append(out, r.nodes[c].name)
	}
	return out
}

// Values returns parent's direct children (roots when parent is nil), in index order.
func (r *Registry[D]) Values(parent *Value[D]) []Value[D] {
	pid, ok := r.resolve(parent)
	if !ok {
		return nil
	}
	out := make([]Value[D], 0, len(r.nodes[pid].order))
	for _, c := range r.nodes[pid].order {
		out = append(out, r.handle(c))
	}
	return out
}

// Count returns the number of direct children of parent (roots when parent is nil).
func (r *Registry[D]) Count(parent *Value[D]) int {
	pid, ok := r.resolve(parent)
	if !ok {
		return 0
	}
	return len(r.nodes[pid].order)
}

// AllCount returns the number of values in the whole forest.
func (r *Registry[D]) AllCount() int { return len(r.byName) }

// AllValues returns every value in pre-order depth-first order.
func (r *Registry[D]) AllValues() []Value[D] {
	out := make([]Value[D], 0, len(r.byName))
	r.walk(forest, func(id nodeID) { out = append(out, r.handle(id)) })
	return out
}

// AllFullNames returns every full name in pre-order depth-first order.
func (r *Registry[D]) AllFullNames() []string {
	out := make([]string, 0, len(r.byName))
	r.walk(forest, func(id nodeID) { out = append(out, r.nodes[id].fullName) })
	return out
}

func (r *Registry[D]) walk(id nodeID, visit func(nodeID)) {
	for _, c := range r.nodes[id].order {
		visit(c)
		r.walk(c, visit)
	}
}
