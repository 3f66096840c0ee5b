// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package buf

import (
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadASCIIZCompleteAndIncomplete(t *testing.T) {
	b := New([]byte("hello\x00tail"))
	s, ok := ReadASCIIZ(b)
	require.True(t, ok)
	assert.Equal(t, "hello", s)
	assert.Equal(t, 6, b.Position())

	incomplete := New([]byte("no terminator"))
	_, ok = ReadASCIIZ(incomplete)
	assert.False(t, ok)
	assert.Equal(t, 0, incomplete.Position())
}

func TestReadLatin1Line(t *testing.T) {
	b := New([]byte("caf\xe9\nnext"))
	s, ok := ReadLatin1Line(b)
	require.True(t, ok)
	assert.Equal(t, "café", s)
}

func TestReadModifiedUTF8ZRoundTrip(t *testing.T) {
	want := "héllo wörld"
	var wire []byte
	wire = WriteModifiedUTF8Z(wire, want)

	b := New(wire)
	got, ok := ReadModifiedUTF8Z(b)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestModifiedUTF8RoundTripAllCodePoints(t *testing.T) {
	// Round-trip for every string of U+0001..U+FFFF with no surrogates.
	for r := rune(1); r <= 0xFFFF; r++ {
		if utf16.IsSurrogate(r) {
			continue
		}
		s := string(r)
		var wire []byte
		wire = EncodeModifiedUTF8(wire, s)
		assert.Equal(t, s, DecodeModifiedUTF8(wire), "code point U+%04X", r)
	}
}

func TestModifiedUTF8EncodesNULAsTwoBytes(t *testing.T) {
	var wire []byte
	wire = EncodeModifiedUTF8(wire, string(rune(0)))
	assert.Equal(t, []byte{0xC0, 0x80}, wire)
}

func TestModifiedUTF8ZeroByteTerminatesEvenInsideEncodedString(t *testing.T) {
	// A lone 0x00 can never occur mid-string because U+0000 is encoded as
	// 0xC0 0x80; verify the z-reader sees only the appended terminator.
	var wire []byte
	wire = EncodeModifiedUTF8(wire, "a\x00b")
	wire = append(wire, 0)
	wire = append(wire, "tail"...)

	b := New(wire)
	s, ok := ReadModifiedUTF8Z(b)
	require.True(t, ok)
	assert.Equal(t, "a\x00b", s)
}

func TestModifiedUTF8InvalidContinuationSubstitutesReplacement(t *testing.T) {
	// 0xC2 requires one continuation byte; supply a non-continuation byte.
	b := New([]byte{0xC2, 0x20})
	r, ok := ModifiedUTF8(b, ReplacementChar)
	require.True(t, ok)
	assert.Equal(t, ReplacementChar, r)
	assert.Equal(t, 1, b.Position())
}

func TestModifiedUTF8IncompleteSequenceRewinds(t *testing.T) {
	b := New([]byte{0xE0, 0x80})
	_, ok := ModifiedUTF8(b, ReplacementChar)
	assert.False(t, ok)
	assert.Equal(t, 0, b.Position())
}

func TestReadLineGenericDecoderResumesAfterMoreData(t *testing.T) {
	first := New([]byte("partial"))
	_, ok := ReadLine(first, ASCII, ReplacementChar)
	assert.False(t, ok)
	assert.Equal(t, 0, first.Position())

	second := New([]byte("partial line\n"))
	s, ok := ReadLine(second, ASCII, ReplacementChar)
	require.True(t, ok)
	assert.Equal(t, "partial line", s)
}

func TestHexDump(t *testing.T) {
	out := HexDump([]byte("hello, world!\n"))
	assert.Contains(t, out, "00000000")
	assert.Contains(t, out, "|hello, world!.|")
}
