// SPDX-License-Identifier: MPL-2.0

package enum

import (
	"fmt"
	"strconv"
	"strings"
)

type (
	// Value is a single member of the enum domain D.
	// Two values are the same value when their names are equal.
	Value[D any] struct {
		index int
		name  string
	}

	// Enum is the operation set shared by every flat domain registry.
	Enum[D any] interface {
		Name() string
		IsRemovable() bool
		IsClearable() bool
		Add(name string) (Value[D], error)
		TryAdd(name string) (Value[D], bool)
		Remove(name string) error
		TryRemove(name string) bool
		Clear() error
		GetValue(name string) (Value[D], error)
		TryGetValue(name string) (Value[D], bool)
		GetValueByIndex(index int) (Value[D], error)
		TryGetValueByIndex(index int) (Value[D], bool)
		Names() []string
		Values() []Value[D]
		Count() int
		Contains(name string) bool
	}

	// Option configures a Registry at construction time.
	Option func(*options)

	options struct {
		removable bool
		clearable bool
	}

	// Registry is the mutable value set of one flat enum domain.
	Registry[D any] struct {
		domain    string
		removable bool
		clearable bool
		values    map[string]Value[D]
		// order keeps insertion order for Names and Values.
		order     []string
		nextIndex int
	}
)

var _ Enum[struct{}] = (*Registry[struct{}])(nil)

// WithRemovable lets callers remove single values.
func WithRemovable() Option {
	return func(o *options) { o.removable = true }
}

// WithClearable lets callers remove every value at once.
func WithClearable() Option {
	return func(o *options) { o.clearable = true }
}

// New creates an empty registry for domain D. The domain name is only used in
// errors and logs. Capabilities are fixed for the lifetime of the registry.
func New[D any](domain string, opts ...Option) *Registry[D] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Registry[D]{
		domain:    domain,
		removable: o.removable,
		clearable: o.clearable,
		values:    make(map[string]Value[D]),
	}
}

func newValue[D any](index int, name string) Value[D] {
	if index < 0 {
		panic(fmt.Sprintf("enum: negative index %d for %q", index, name))
	}
	if strings.TrimSpace(name) == "" {
		panic("enum: blank value name")
	}
	return Value[D]{index: index, name: name}
}

// Index returns the index assigned when the value was added.
func (v Value[D]) Index() int { return v.index }

// Name returns the value name.
func (v Value[D]) Name() string { return v.name }

// String returns the value name.
func (v Value[D]) String() string { return v.name }

// IsZero reports whether v is the zero Value (returned by failed lookups).
func (v Value[D]) IsZero() bool { return v.name == "" }

// Equal reports whether v and other name the same value.
func (v Value[D]) Equal(other Value[D]) bool { return v.name == other.name }

// Name returns the domain name.
func (r *Registry[D]) Name() string { return r.domain }

// IsRemovable reports whether single values can be removed.
func (r *Registry[D]) IsRemovable() bool { return r.removable }

// IsClearable reports whether the registry can be cleared.
func (r *Registry[D]) IsClearable() bool { return r.clearable }

// Add creates a new value. The name must be non-blank and unique (case-sensitive).
func (r *Registry[D]) Add(name string) (Value[D], error) {
	if strings.TrimSpace(name) == "" {
		return Value[D]{}, fmt.Errorf("%s: %w: %q", r.domain, ErrInvalidName, name)
	}
	if _, exists := r.values[name]; exists {
		return Value[D]{}, &DuplicateNameError{Domain: r.domain, Name: name}
	}
	v := newValue[D](r.nextIndex, name)
	r.nextIndex++
	r.values[name] = v
	r.order = append(r.order, name)
	return v, nil
}

// TryAdd adds a value unless the name is blank or already taken. On a duplicate it
// returns the existing value and false.
func (r *Registry[D]) TryAdd(name string) (Value[D], bool) {
	if existing, ok := r.values[name]; ok {
		return existing, false
	}
	v, err := r.Add(name)
	if err != nil {
		return Value[D]{}, false
	}
	return v, true
}

// Remove deletes a value by name. It fails unless the domain is removable.
func (r *Registry[D]) Remove(name string) error {
	if !r.removable {
		return &CapabilityError{Domain: r.domain, Capability: CapabilityRemove}
	}
	if _, ok := r.values[name]; !ok {
		return &NotFoundError{Domain: r.domain, Key: strconv.Quote(name)}
	}
	r.remove(name)
	return nil
}

// TryRemove deletes a value by name, reporting false when the domain is not
// removable or the value does not exist.
func (r *Registry[D]) TryRemove(name string) bool {
	return r.Remove(name) == nil
}

func (r *Registry[D]) remove(name string) {
	delete(r.values, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Clear removes every value. It fails unless the domain is clearable.
// Indices keep counting from where they were.
func (r *Registry[D]) Clear() error {
	if !r.clearable {
		return &CapabilityError{Domain: r.domain, Capability: CapabilityClear}
	}
	r.values = make(map[string]Value[D])
	r.order = nil
	return nil
}

// Reset drops every value and restarts index assignment regardless of capabilities.
// It exists for test isolation and domain re-initialization, not for content code.
func (r *Registry[D]) Reset() {
	r.values = make(map[string]Value[D])
	r.order = nil
	r.nextIndex = 0
}

// GetValue returns the value with the given name.
func (r *Registry[D]) GetValue(name string) (Value[D], error) {
	v, ok := r.values[name]
	if !ok {
		return Value[D]{}, &NotFoundError{Domain: r.domain, Key: strconv.Quote(name)}
	}
	return v, nil
}

// TryGetValue returns the value with the given name, if any.
func (r *Registry[D]) TryGetValue(name string) (Value[D], bool) {
	v, ok := r.values[name]
	return v, ok
}

// Contains reports whether a value with the given name exists.
func (r *Registry[D]) Contains(name string) bool {
	_, ok := r.values[name]
	return ok
}

// GetValueByIndex scans for the value with the given index. It is O(n); indices
// can have gaps after removals, so never use it as a dense array lookup.
func (r *Registry[D]) GetValueByIndex(index int) (Value[D], error) {
	if index < 0 {
		return Value[D]{}, fmt.Errorf("%s: %w: %d", r.domain, ErrInvalidIndex, index)
	}
	v, ok := r.TryGetValueByIndex(index)
	if !ok {
		return Value[D]{}, &NotFoundError{Domain: r.domain, Key: "#" + strconv.Itoa(index)}
	}
	return v, nil
}

// TryGetValueByIndex is the non-failing form of GetValueByIndex.
func (r *Registry[D]) TryGetValueByIndex(index int) (Value[D], bool) {
	if index < 0 {
		return Value[D]{}, false
	}
	for _, name := range r.order {
		if v := r.values[name]; v.index == index {
			return v, true
		}
	}
	return Value[D]{}, false
}

// Names returns all value names in insertion order.
func (r *Registry[D]) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Values returns all values in insertion order.
func (r *Registry[D]) Values() []Value[D] {
	out := make([]Value[D], 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.values[name])
	}
	return out
}

// Count returns the number of values.
func (r *Registry[D]) Count() int { return len(r.values) }
