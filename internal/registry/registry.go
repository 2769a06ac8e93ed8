// Package registry provides a small generic name-indexed lookup table,
// grounded on the teacher's index.SymbolIndex (functional-options
// construction, a bounded entry cap, sorted iteration).
package registry

import "sort"

// Options configures a Registry. The zero value is usable.
type Options struct {
	// MaxEntries bounds how many entries Put will accept; 0 means
	// unbounded. Mirrors the teacher's SymbolIndexOptions.MaxSymbols.
	MaxEntries int
}

// Option mutates Options.
type Option func(*Options)

// WithMaxEntries bounds the registry's size.
func WithMaxEntries(n int) Option {
	return func(o *Options) { o.MaxEntries = n }
}

// Registry is a name -> value index with deterministic (sorted) key
// iteration, used by the pipeline to resolve component class names to
// their component ids.
type Registry[T any] struct {
	opts    Options
	entries map[string]T
}

// New constructs an empty Registry.
func New[T any](opts ...Option) *Registry[T] {
	o := Options{}
	for _, fn := range opts {
		fn(&o)
	}
	return &Registry[T]{opts: o, entries: map[string]T{}}
}

// Put registers value under name, overwriting any prior entry. Returns
// false without mutating the registry if MaxEntries is already reached
// and name is new.
func (r *Registry[T]) Put(name string, value T) bool {
	if _, exists := r.entries[name]; !exists && r.opts.MaxEntries > 0 && len(r.entries) >= r.opts.MaxEntries {
		return false
	}
	r.entries[name] = value
	return true
}

// Get looks up name.
func (r *Registry[T]) Get(name string) (T, bool) {
	v, ok := r.entries[name]
	return v, ok
}

// Len reports how many entries the registry holds.
func (r *Registry[T]) Len() int { return len(r.entries) }

// Names returns every registered name, sorted.
func (r *Registry[T]) Names() []string {
	out := make([]string, 0, len(r.entries))
	for k := range r.entries {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
