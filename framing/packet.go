// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framing

import (
	"code.hybscloud.com/nio/channel"
	"code.hybscloud.com/nio/ioerr"
)

// byteChannel is the capability subset PacketChannel adapts: one non-
// blocking Read/Write call already corresponds to exactly one message on a
// boundary-preserving transport (UDP, SCTP, a pipe in datagram mode).
type byteChannel interface {
	channel.ReadableByte
	channel.WritableByte
}

// PacketChannel adapts a boundary-preserving byte channel to the
// MessageReader/MessageWriter capability contract without length-prefixing,
// mirroring the option.PacketMode pass-through a Protocol.preserveBoundary
// switch covers directly. Unlike Reader/Writer, there is no framing state
// machine: each call maps 1:1 onto the underlying channel's own Read/Write.
type PacketChannel[T byteChannel] struct {
	ch          T
	maxInbound  int
	maxOutbound int
}

// NewPacketChannel wraps ch. maxInbound/maxOutbound <= 0 mean no limit.
func NewPacketChannel[T byteChannel](ch T, maxInbound, maxOutbound int) *PacketChannel[T] {
	return &PacketChannel[T]{ch: ch, maxInbound: maxInbound, maxOutbound: maxOutbound}
}

// Receive delivers at most one message per call: 0 bytes written with a nil
// error means none is currently pending; -1 means the peer has closed.
func (p *PacketChannel[T]) Receive(buf []byte) (int, error) {
	n, err := p.ch.Read(buf)
	if err != nil {
		return n, err
	}
	if n > 0 && p.maxInbound > 0 && n > p.maxInbound {
		return n, ioerr.ErrFramingError
	}
	return n, nil
}

// ReceiveV performs one underlying Read into dsts[0] only and returns what
// Receive returns; the remaining destinations are not touched. A caller
// that wants the message scattered across several buffers must do so
// itself, e.g. via buf.ScatterInto on the single filled buffer.
func (p *PacketChannel[T]) ReceiveV(dsts [][]byte) (int, error) {
	if len(dsts) == 0 {
		return 0, nil
	}
	return p.Receive(dsts[0])
}

// Send writes buf as one atomic message. A return of ErrWouldBlock means
// the underlying channel isn't currently writable and nothing was sent;
// an oversized buf is rejected with ioerr.ErrOversizedMessage before any
// bytes reach the wire.
func (p *PacketChannel[T]) Send(buf []byte) error {
	if p.maxOutbound > 0 && len(buf) > p.maxOutbound {
		return ioerr.ErrOversizedMessage
	}
	n, err := p.ch.Write(buf)
	if err != nil {
		return err
	}
	if n < len(buf) {
		// A boundary-preserving transport either accepts the whole
		// datagram or none of it; a short write here means the
		// underlying channel isn't currently writable.
		return ErrWouldBlock
	}
	return nil
}

// SendV concatenates bufs into one message and sends it atomically.
func (p *PacketChannel[T]) SendV(bufs [][]byte) error {
	total := 0
	for _, b := range bufs {
		total += len(b)
	}
	joined := make([]byte, 0, total)
	for _, b := range bufs {
		joined = append(joined, b...)
	}
	return p.Send(joined)
}
