// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package buf

import "strings"

// ReplacementChar is the default substitute for malformed lead/continuation
// bytes, used by the ASCII/*Z/*Line convenience wrappers below. Callers that
// need a different substitute should call ReadZ/ReadLine directly.
const ReplacementChar = '�'

// Decoder decodes a single code point from the front of buf. It must leave
// buf's position unchanged when it returns ok == false (not enough bytes
// are available yet): this is what lets ReadZ/ReadLine resume cleanly once
// more data has been appended past the buffer's limit.
type Decoder func(buf *Buffer, replacement rune) (r rune, ok bool)

// ASCII decodes one 7-bit byte per call; bytes with the high bit set decode
// to replacement.
func ASCII(buf *Buffer, replacement rune) (rune, bool) {
	if !buf.HasRemaining() {
		return 0, false
	}
	b := buf.Data[buf.position]
	buf.position++
	if b >= 0x80 {
		return replacement, true
	}
	return rune(b), true
}

// Latin1 decodes one byte per call; every byte value 0-255 maps directly to
// the identical Unicode code point (ISO-8859-1 is a subset of Unicode's
// Basic Latin + Latin-1 Supplement), so this decoder never substitutes.
func Latin1(buf *Buffer, _ rune) (rune, bool) {
	if !buf.HasRemaining() {
		return 0, false
	}
	b := buf.Data[buf.position]
	buf.position++
	return rune(b), true
}

// ModifiedUTF8 decodes one code point using the classical 1/2/3-byte
// modified-UTF-8 form (see EncodeModifiedUTF8 in encode.go). Invalid
// lead or continuation bytes are replaced with replacement and consume
// exactly the invalid lead byte, so scanning can resynchronize on the next
// byte.
func ModifiedUTF8(buf *Buffer, replacement rune) (rune, bool) {
	if !buf.HasRemaining() {
		return 0, false
	}
	start := buf.position
	b0 := buf.Data[buf.position]

	switch {
	case b0&0x80 == 0:
		buf.position++
		return rune(b0), true

	case b0&0xE0 == 0xC0:
		if buf.Remaining() < 2 {
			return 0, false
		}
		b1 := buf.Data[buf.position+1]
		if b1&0xC0 != 0x80 {
			buf.position = start + 1
			return replacement, true
		}
		buf.position = start + 2
		return rune(b0&0x1F)<<6 | rune(b1&0x3F), true

	case b0&0xF0 == 0xE0:
		if buf.Remaining() < 3 {
			return 0, false
		}
		b1, b2 := buf.Data[buf.position+1], buf.Data[buf.position+2]
		if b1&0xC0 != 0x80 || b2&0xC0 != 0x80 {
			buf.position = start + 1
			return replacement, true
		}
		buf.position = start + 3
		return rune(b0&0x0F)<<12 | rune(b1&0x3F)<<6 | rune(b2&0x3F), true

	default:
		// Stray continuation byte or a 4-byte lead (not produced by Encode,
		// but may appear in untrusted input): consume one byte, substitute.
		buf.position++
		return replacement, true
	}
}

// ReadZ decodes code points with decode until a raw NUL byte (the
// terminator) or the buffer is exhausted. It returns ok == false, with buf's
// position restored to where it was on entry, if the terminator was not
// reached before the buffer ran out — the caller should retry once more
// bytes are available at/after the limit.
//
// NUL is safe to use as a raw-byte terminator for all three supported
// encodings: ASCII and Latin-1 never encode anything but U+0000 as 0x00, and
// modified UTF-8 (see ModifiedUTF8) encodes U+0000 as the two-byte sequence
// 0xC0 0x80, so a lone 0x00 byte in the stream can only be the terminator.
func ReadZ(buf *Buffer, decode Decoder, replacement rune) (string, bool) {
	start := buf.position
	var sb strings.Builder
	for {
		if !buf.HasRemaining() {
			buf.position = start
			return "", false
		}
		if buf.Data[buf.position] == 0 {
			buf.position++
			return sb.String(), true
		}
		r, ok := decode(buf, replacement)
		if !ok {
			buf.position = start
			return "", false
		}
		sb.WriteRune(r)
	}
}

// ReadLine is the generic line decoder: it decodes code points with decode
// until a raw LF (0x0A) byte or buffer exhaustion. The LF
// is consumed but not included in the returned string. Like ReadZ, it
// reports ok == false and rewinds to the call's starting position when the
// buffer runs out before a line terminator is found.
func ReadLine(buf *Buffer, decode Decoder, replacement rune) (string, bool) {
	start := buf.position
	var sb strings.Builder
	for {
		if !buf.HasRemaining() {
			buf.position = start
			return "", false
		}
		if buf.Data[buf.position] == '\n' {
			buf.position++
			return sb.String(), true
		}
		r, ok := decode(buf, replacement)
		if !ok {
			buf.position = start
			return "", false
		}
		sb.WriteRune(r)
	}
}

// ReadASCIIZ reads a NUL-terminated ASCII string using ReplacementChar for
// malformed bytes.
func ReadASCIIZ(buf *Buffer) (string, bool) { return ReadZ(buf, ASCII, ReplacementChar) }

// ReadASCIILine reads an LF-terminated ASCII string.
func ReadASCIILine(buf *Buffer) (string, bool) { return ReadLine(buf, ASCII, ReplacementChar) }

// ReadLatin1Z reads a NUL-terminated Latin-1 string.
func ReadLatin1Z(buf *Buffer) (string, bool) { return ReadZ(buf, Latin1, ReplacementChar) }

// ReadLatin1Line reads an LF-terminated Latin-1 string.
func ReadLatin1Line(buf *Buffer) (string, bool) { return ReadLine(buf, Latin1, ReplacementChar) }

// ReadModifiedUTF8Z reads a NUL-terminated modified-UTF-8 string.
func ReadModifiedUTF8Z(buf *Buffer) (string, bool) {
	return ReadZ(buf, ModifiedUTF8, ReplacementChar)
}

// ReadModifiedUTF8Line reads an LF-terminated modified-UTF-8 string.
func ReadModifiedUTF8Line(buf *Buffer) (string, bool) {
	return ReadLine(buf, ModifiedUTF8, ReplacementChar)
}
