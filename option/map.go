// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package option

// Map is an immutable mapping from Options to typed values. The zero value
// (and a nil *Map) behave as an empty map: Get always returns the supplied
// default. Maps are only ever produced by Builder.Build, never mutated
// in place, so sharing one across channels/goroutines needs no
// synchronization — an option map is immutable after build, and sharing it
// is free.
type Map struct {
	values map[any]any
}

// Get returns the value bound to opt in m, or def if opt is not set. The
// type parameter must match the Option's declared type; since opt is an
// *Option[T] and def a T, a mismatched T simply fails to compile at any
// realistic call site.
func Get[T any](m *Map, opt *Option[T], def T) T {
	if m == nil {
		return def
	}
	if v, ok := m.values[opt]; ok {
		return v.(T)
	}
	return def
}

// Has reports whether opt has an explicit value in m (as opposed to a
// caller-supplied default).
func Has[T any](m *Map, opt *Option[T]) bool {
	if m == nil {
		return false
	}
	_, ok := m.values[opt]
	return ok
}

// Empty is the zero-value immutable Map, useful as an explicit "no options"
// argument.
var Empty = &Map{}
