// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package buf provides the position/limit/capacity buffer view and the
// scatter/gather and text-decoding helpers consumed by every other package
// in this module. Every helper here is a non-destructive metadata
// manipulation or a safe slice-with-advance operation; the position/offset
// bookkeeping is modeled on code.hybscloud.com/framer's internal framer
// state machine. Slice allocates a new Buffer header for the view it
// returns (the bytes themselves are shared, never copied).
package buf

import (
	"code.hybscloud.com/nio/ioerr"
)

// Buffer is a position/limit/capacity view over a contiguous byte slice,
// following the conventional NIO model: remaining = limit - position. It
// does not copy Data; callers own the backing array for as long as the
// Buffer is alive.
type Buffer struct {
	Data     []byte
	position int
	limit    int
	mark     int
}

// New wraps data as a Buffer positioned at 0 with limit == len(data).
func New(data []byte) *Buffer {
	return &Buffer{Data: data, position: 0, limit: len(data), mark: -1}
}

// Position returns the current position.
func (b *Buffer) Position() int { return b.position }

// Limit returns the current limit.
func (b *Buffer) Limit() int { return b.limit }

// Capacity returns len(Data).
func (b *Buffer) Capacity() int { return len(b.Data) }

// Remaining returns limit - position.
func (b *Buffer) Remaining() int { return b.limit - b.position }

// HasRemaining reports whether Remaining() > 0.
func (b *Buffer) HasRemaining() bool { return b.position < b.limit }

// SetPosition sets the position. It panics if pos is negative or exceeds the
// limit; callers that cannot guarantee that should use Skip/Unget instead,
// which clamp-check and return an error.
func (b *Buffer) SetPosition(pos int) {
	if pos < 0 || pos > b.limit {
		panic("buf: position out of range")
	}
	if b.mark > pos {
		b.mark = -1
	}
	b.position = pos
}

// SetLimit sets the limit. It panics if limit is negative or exceeds
// capacity. If the position or mark is beyond the new limit, both are
// clamped to it.
func (b *Buffer) SetLimit(limit int) {
	if limit < 0 || limit > len(b.Data) {
		panic("buf: limit out of range")
	}
	b.limit = limit
	if b.position > limit {
		b.position = limit
	}
	if b.mark > limit {
		b.mark = -1
	}
}

// Flip sets the limit to the current position and the position to zero.
// Typical use: after filling a buffer, flip it before draining.
func (b *Buffer) Flip() {
	b.limit = b.position
	b.position = 0
	b.mark = -1
}

// Clear resets position to zero and limit to capacity, discarding the mark.
// The data itself is untouched; "clear" describes the view, not the memory.
func (b *Buffer) Clear() {
	b.position = 0
	b.limit = len(b.Data)
	b.mark = -1
}

// Rewind sets the position to zero without touching the limit.
func (b *Buffer) Rewind() {
	b.position = 0
	b.mark = -1
}

// Mark saves the current position, recallable via Reset.
func (b *Buffer) Mark() { b.mark = b.position }

// Reset restores the position to the previously marked value. It panics if
// no mark has been set, matching the conventional NIO contract.
func (b *Buffer) Reset() {
	if b.mark < 0 {
		panic("buf: mark not set")
	}
	b.position = b.mark
}

// Bytes returns the remaining bytes as a slice sharing the backing array
// (Data[position:limit]), without advancing position.
func (b *Buffer) Bytes() []byte {
	return b.Data[b.position:b.limit]
}

// Slice returns a view over n bytes and advances the source position.
//
// If n >= 0, the view is Data[position:position+n] and position becomes
// position+n.
//
// If n < 0, n counts from the end of the remaining window: the view is the
// last |n| bytes of [position, limit), i.e. Data[limit-|n|:limit], and
// position is set to limit-|n| (the start of the view) — the bytes skipped
// between the old position and the new one are consumed, but the view
// itself remains readable as the buffer's new remaining region.
//
// Slice fails with ioerr.ErrBufferUnderflow, leaving position unchanged, if
// |n| exceeds Remaining().
func Slice(b *Buffer, n int) (*Buffer, error) {
	rem := b.Remaining()
	if n >= 0 {
		if n > rem {
			return nil, ioerr.ErrBufferUnderflow
		}
		start := b.position
		b.position += n
		return &Buffer{Data: b.Data, position: start, limit: start + n, mark: -1}, nil
	}
	m := -n
	if m > rem {
		return nil, ioerr.ErrBufferUnderflow
	}
	start := b.limit - m
	b.position = start
	return &Buffer{Data: b.Data, position: start, limit: b.limit, mark: -1}, nil
}

// Fill writes n copies of v starting at position and advances position by
// n. It fails with ioerr.ErrBufferOverflow, leaving position unchanged, if n
// exceeds the space between position and limit.
func Fill(b *Buffer, v byte, n int) error {
	if n < 0 || n > b.Remaining() {
		return ioerr.ErrBufferOverflow
	}
	for i := 0; i < n; i++ {
		b.Data[b.position+i] = v
	}
	b.position += n
	return nil
}

// Skip advances position by n. It fails with ioerr.ErrBufferUnderflow,
// leaving position unchanged, if n exceeds Remaining().
func Skip(b *Buffer, n int) error {
	if n < 0 || n > b.Remaining() {
		return ioerr.ErrBufferUnderflow
	}
	b.position += n
	return nil
}

// Unget moves position backwards by n. It fails with
// ioerr.ErrBufferUnderflow, leaving position unchanged, if n exceeds the
// current position.
func Unget(b *Buffer, n int) error {
	if n < 0 || n > b.position {
		return ioerr.ErrBufferUnderflow
	}
	b.position -= n
	return nil
}

// ScatterInto writes as much of src's remaining bytes as fits across
// dsts[off:off+length], filling each destination buffer up to its own
// remaining capacity before moving to the next, and returns the total
// number of bytes moved. It stops early once src is exhausted or every
// destination in range is full; it never blocks and never returns an error.
func ScatterInto(dsts []*Buffer, off, length int, src *Buffer) int {
	total := 0
	for i := off; i < off+length && i < len(dsts); i++ {
		dst := dsts[i]
		if !src.HasRemaining() {
			break
		}
		n := dst.Remaining()
		if n > src.Remaining() {
			n = src.Remaining()
		}
		if n == 0 {
			continue
		}
		copy(dst.Data[dst.position:dst.position+n], src.Data[src.position:src.position+n])
		dst.position += n
		src.position += n
		total += n
	}
	return total
}
