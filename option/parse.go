// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package option

import (
	"strings"

	"code.hybscloud.com/nio/ioerr"
)

// parseSequence splits raw on commas and parses each element with parseElem.
// An empty string parses to an empty (non-nil) slice rather than a slice
// holding one empty element, so "" round-trips through formatSequence.
func parseSequence[E any](raw string, parseElem func(string) (E, error)) ([]E, error) {
	if raw == "" {
		return []E{}, nil
	}
	parts := strings.Split(raw, ",")
	vs := make([]E, len(parts))
	for i, p := range parts {
		v, err := parseElem(p)
		if err != nil {
			return nil, err
		}
		vs[i] = v
	}
	return vs, nil
}

// formatSequence is parseSequence's inverse.
func formatSequence[E any](vs []E, formatElem func(E) string) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = formatElem(v)
	}
	return strings.Join(parts, ",")
}

// Parse looks up name in the option registry and, on success, parses raw and
// sets the resulting value into b. It returns ioerr.ErrUnsupportedOption for
// an unrecognized name, wrapping the name for diagnostics.
func Parse(b *Builder, name, raw string) error {
	opt, ok := registry[name]
	if !ok {
		return ioerr.Unsupported(name)
	}
	v, err := opt.parseString(raw)
	if err != nil {
		return err
	}
	b.copyIfShared()
	b.values[opt] = v
	return nil
}

// Unparse renders every option actually set in m as "name=value" pairs,
// one per line, in the Names() registry order, so output is deterministic
// regardless of map iteration order.
func Unparse(m *Map) string {
	var sb strings.Builder
	for _, name := range Names() {
		opt := registry[name]
		raw, present := opt.get(m)
		if !present {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(opt.formatValue(raw))
	}
	return sb.String()
}
