// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package option

import "golang.org/x/exp/slices"

// Builder accumulates option values and produces an immutable Map via
// Build. It is copy-on-write: Build shares its internal map with the
// returned Map at zero cost, and only the next Set after a Build pays for a
// copy — so building N maps from a common prefix of options (e.g. a
// connector's base options, specialized per-destination) is cheap.
type Builder struct {
	values map[any]any
	shared bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{values: make(map[any]any)}
}

// FromMap returns a Builder seeded with m's current values, for
// specializing an existing immutable Map.
func FromMap(m *Map) *Builder {
	b := NewBuilder()
	if m != nil {
		for k, v := range m.values {
			b.values[k] = v
		}
	}
	return b
}

func (b *Builder) copyIfShared() {
	if !b.shared {
		return
	}
	cp := make(map[any]any, len(b.values)+1)
	for k, v := range b.values {
		cp[k] = v
	}
	b.values = cp
	b.shared = false
}

// Set binds opt to val in b, replacing any previous binding, and returns b
// for chaining.
func Set[T any](b *Builder, opt *Option[T], val T) *Builder {
	b.copyIfShared()
	b.values[opt] = val
	return b
}

// SetSequence binds a sequence option to a cloned copy of vals, so later
// mutation of the caller's slice cannot reach back into the Map.
func SetSequence[E any](b *Builder, opt *Option[[]E], vals []E) *Builder {
	return Set(b, opt, slices.Clone(vals))
}

// Unset removes opt's binding from b, so Get will fall back to its default.
func Unset[T any](b *Builder, opt *Option[T]) *Builder {
	b.copyIfShared()
	delete(b.values, opt)
	return b
}

// Build returns an immutable snapshot of b's current bindings. b remains
// usable afterward; further Set/Unset calls copy-on-write rather than
// mutating the snapshot just returned.
func (b *Builder) Build() *Map {
	b.shared = true
	return &Map{values: b.values}
}
