// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package option implements a typed option system: a typed key (Option[T]),
// an immutable map from options to typed values (Map), and a copy-on-write
// Builder. code.hybscloud.com/framer configures itself with a flat list of
// functional-option closures (options.go's `type Option func(*Options)`),
// but the underlying idiom — a small set of named `With*`-style
// configuration points, including per-transport default bundles, see
// net.go — is carried over directly, just re-expressed as a
// map-of-typed-keys rather than a closure list.
package option

import "sort"

// Option is a typed configuration key. Two Options are the same key if and
// only if they are the same *Option[T] pointer; Options are normally created
// once, as package-level variables (see known.go), and compared by identity.
type Option[T any] struct {
	name    string
	parseFn func(string) (T, error)
	fmtFn   func(T) string
	seq     bool
}

// Name returns the option's textual name, used by Parse/Unparse and in
// ErrUnsupportedOption diagnostics.
func (o *Option[T]) Name() string { return o.name }

// IsSequence reports whether the option holds an ordered sequence of values
// (true for e.g. SSLEnabledCipherSuites) rather than a single scalar value.
func (o *Option[T]) IsSequence() bool { return o.seq }

// get returns the option's raw value (if present) from m, without applying
// the default — used by Unparse, which only emits options actually set.
func (o *Option[T]) get(m *Map) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[o]
	return v, ok
}

func (o *Option[T]) parseString(raw string) (any, error) { return o.parseFn(raw) }

func (o *Option[T]) formatValue(v any) string { return o.fmtFn(v.(T)) }

// anyOption erases T so the name/parse registry (parse.go) can hold options
// of differing value types in one map.
type anyOption interface {
	Name() string
	IsSequence() bool
	parseString(string) (any, error)
	formatValue(any) string
	get(*Map) (any, bool)
}

var registry = map[string]anyOption{}

// New declares a scalar option and registers it under name for Parse/Unparse.
// It panics if name is already registered — option names are meant to be
// declared once, at package init, not computed per call.
func New[T any](name string, parse func(string) (T, error), format func(T) string) *Option[T] {
	opt := &Option[T]{name: name, parseFn: parse, fmtFn: format}
	register(opt)
	return opt
}

// NewSequence declares an ordered-sequence-valued option. The element
// parser/formatter handle one comma-separated token; NewSequence wires the
// comma-splitting.
func NewSequence[E any](name string, parseElem func(string) (E, error), formatElem func(E) string) *Option[[]E] {
	opt := &Option[[]E]{
		name: name,
		seq:  true,
		parseFn: func(raw string) ([]E, error) {
			return parseSequence(raw, parseElem)
		},
		fmtFn: func(vs []E) string {
			return formatSequence(vs, formatElem)
		},
	}
	register(opt)
	return opt
}

func register(opt anyOption) {
	if _, exists := registry[opt.Name()]; exists {
		panic("option: duplicate option name " + opt.Name())
	}
	registry[opt.Name()] = opt
}

// Names returns every registered option name in sorted order, used by
// Unparse for deterministic output.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
