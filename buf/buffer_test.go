// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package buf

import (
	"testing"

	"code.hybscloud.com/nio/ioerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlicePositiveAdvancesPastView(t *testing.T) {
	b := New([]byte("0123456789"))
	b.SetPosition(2)

	view, err := Slice(b, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte("234"), view.Bytes())
	assert.Equal(t, 5, b.Position())
	assert.Equal(t, 10, b.Limit())
}

func TestSliceNegativeCountsFromEnd(t *testing.T) {
	// Negative count slices from the end of the remaining bytes rather than
	// the start: position 2, limit 10, slice(buf,-3).
	b := New([]byte("0123456789"))
	b.SetPosition(2)

	view, err := Slice(b, -3)
	require.NoError(t, err)
	assert.Equal(t, []byte("789"), view.Bytes())
	assert.Equal(t, 7, b.Position())
	assert.Equal(t, 10, b.Limit())
}

func TestSliceUnderflowLeavesPositionUnchanged(t *testing.T) {
	b := New([]byte("0123456789"))
	b.SetPosition(8)

	_, err := Slice(b, 5)
	assert.ErrorIs(t, err, ioerr.ErrBufferUnderflow)
	assert.Equal(t, 8, b.Position())

	_, err = Slice(b, -5)
	assert.ErrorIs(t, err, ioerr.ErrBufferUnderflow)
	assert.Equal(t, 8, b.Position())
}

func TestFillAdvancesAndRespectsLimit(t *testing.T) {
	b := New(make([]byte, 4))
	require.NoError(t, Fill(b, 0xAB, 3))
	assert.Equal(t, []byte{0xAB, 0xAB, 0xAB, 0}, b.Data)
	assert.Equal(t, 3, b.Position())

	err := Fill(b, 0xCD, 2)
	assert.ErrorIs(t, err, ioerr.ErrBufferOverflow)
	assert.Equal(t, 3, b.Position())
}

func TestSkipAndUnget(t *testing.T) {
	b := New([]byte("abcdef"))
	require.NoError(t, Skip(b, 4))
	assert.Equal(t, 4, b.Position())

	assert.ErrorIs(t, Skip(b, 10), ioerr.ErrBufferUnderflow)

	require.NoError(t, Unget(b, 2))
	assert.Equal(t, 2, b.Position())

	assert.ErrorIs(t, Unget(b, 10), ioerr.ErrBufferUnderflow)
}

func TestFlipClearMarkReset(t *testing.T) {
	b := New(make([]byte, 8))
	b.SetPosition(5)
	b.Flip()
	assert.Equal(t, 0, b.Position())
	assert.Equal(t, 5, b.Limit())

	b.Mark()
	b.SetPosition(3)
	b.Reset()
	assert.Equal(t, 0, b.Position())

	b.Clear()
	assert.Equal(t, 0, b.Position())
	assert.Equal(t, 8, b.Limit())
}

func TestScatterIntoSplitsAcrossDestinations(t *testing.T) {
	src := New([]byte("hello world"))
	d0 := New(make([]byte, 4))
	d1 := New(make([]byte, 4))
	d2 := New(make([]byte, 10))
	dsts := []*Buffer{d0, d1, d2}

	n := ScatterInto(dsts, 0, len(dsts), src)
	assert.Equal(t, 11, n)
	assert.Equal(t, "hell", string(d0.Data[:d0.Position()]))
	assert.Equal(t, "o wo", string(d1.Data[:d1.Position()]))
	assert.Equal(t, "rld", string(d2.Data[:d2.Position()]))
	assert.Equal(t, 0, src.Remaining())
}

func TestScatterIntoStopsWhenSourceExhausted(t *testing.T) {
	src := New([]byte("ab"))
	d0 := New(make([]byte, 4))
	d1 := New(make([]byte, 4))

	n := ScatterInto([]*Buffer{d0, d1}, 0, 2, src)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, d0.Position())
	assert.Equal(t, 0, d1.Position())
}
