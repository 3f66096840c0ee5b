// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package buf

import "unicode/utf16"

// EncodeModifiedUTF8 appends the modified-UTF-8 encoding of s to dst and
// returns the result. Surrogate pairs (from unpaired or already-decoded
// UTF-16 style input) are encoded as two independent 3-byte sequences, one
// per surrogate half; this function does not attempt to recombine them into
// a single 4-byte form, and no 4-byte form is ever produced.
func EncodeModifiedUTF8(dst []byte, s string) []byte {
	for _, r := range s {
		dst = appendModifiedUTF8Rune(dst, r)
	}
	return dst
}

func appendModifiedUTF8Rune(dst []byte, r rune) []byte {
	switch {
	case r >= 1 && r <= 0x7F:
		return append(dst, byte(r))
	case r == 0 || (r >= 0x80 && r <= 0x7FF):
		return append(dst, 0xC0|byte(r>>6), 0x80|byte(r&0x3F))
	case r > 0xFFFF && r <= 0x10FFFF:
		// Supplementary characters: split into a surrogate pair and encode
		// each half as its own 3-byte sequence.
		hi, lo := utf16.EncodeRune(r)
		dst = appendModifiedUTF8Rune(dst, hi)
		return appendModifiedUTF8Rune(dst, lo)
	default:
		// U+0800..U+FFFF, and surrogate halves treated the same way.
		return append(dst, 0xE0|byte(r>>12), 0x80|byte((r>>6)&0x3F), 0x80|byte(r&0x3F))
	}
}

// WriteModifiedUTF8Z encodes s as modified UTF-8 into dst and appends the
// NUL terminator. U+0000 within s is encoded as the two-byte form 0xC0 0x80,
// so the appended 0x00 is unambiguously the terminator.
func WriteModifiedUTF8Z(dst []byte, s string) []byte {
	dst = EncodeModifiedUTF8(dst, s)
	return append(dst, 0)
}

// DecodeModifiedUTF8 decodes a complete modified-UTF-8 byte slice (no
// terminator) back to a string, substituting ReplacementChar for any
// malformed byte it encounters. It is the round-trip counterpart to
// EncodeModifiedUTF8, used by this package's round-trip tests.
func DecodeModifiedUTF8(b []byte) string {
	buf := New(b)
	var out []rune
	for buf.HasRemaining() {
		r, ok := ModifiedUTF8(buf, ReplacementChar)
		if !ok {
			// Only possible if b itself is truncated mid-sequence; emit a
			// single replacement for the dangling byte(s) and stop.
			out = append(out, ReplacementChar)
			break
		}
		out = append(out, r)
	}
	return string(out)
}
