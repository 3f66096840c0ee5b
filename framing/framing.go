// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package framing implements the length-framed message overlay: a
// stream→message reader/writer pair using a fixed 4-byte big-endian
// length prefix and option-bounded message sizes, plus a pass-through
// PacketChannel for transports that already preserve message boundaries,
// mirroring a Protocol pass-through mode.
//
// The three-phase read state machine (reading-length/reading-body/dispatch)
// and the reusable scratch buffers are grounded directly on
// code.hybscloud.com/framer's framer/internal.go (header/length/offset
// fields, rbuf/wbuf scratch reuse), adapted from that package's compact
// variable-length header to this spec's fixed 4-byte prefix, and from its
// synchronous io.Reader/io.Writer pull model to this spec's listener-driven
// push model: Reader is installed as a channel's read-ready listener rather
// than pulled via Read.
package framing

import "code.hybscloud.com/iox"

// ErrWouldBlock and ErrMore are the same control-flow sentinels exposed
// from code.hybscloud.com/iox, reused here as the internal signal
// between one non-blocking Read/Write attempt and the reader/writer state
// machine's driving loop: ErrWouldBlock means "no bytes available/acceptable
// right now, wait for the next readiness event", distinct from a fatal
// error or end-of-input. Reader/Writer keep ErrWouldBlock internal, but
// PacketChannel.Send returns it to the caller when the underlying channel
// accepts less than the whole datagram. ErrMore is re-exported only; this
// package never returns it.
var (
	ErrWouldBlock = iox.ErrWouldBlock
	ErrMore       = iox.ErrMore
)

// MessageHandler receives complete inbound messages and framing/transport
// failures from a Reader, which invokes it exactly once per message before
// re-entering reading-length.
type MessageHandler interface {
	// HandleMessage is called exactly once per complete message, with a
	// read-only view over the accumulated payload. The view is only valid
	// for the duration of the call; the Reader reuses its backing array for
	// the next message.
	HandleMessage(payload []byte)

	// HandleError is called when framing fails: an oversized length prefix
	// (ioerr.ErrFramingError), a transport failure, or a clean peer
	// shutdown (io.EOF). The Reader does not resume after calling this.
	HandleError(err error)
}

// Handler adapts two plain functions to MessageHandler, mirroring the
// future package's HandlingNotifier (a nil field is simply not called).
type Handler struct {
	OnMessage func(payload []byte)
	OnError   func(err error)
}

func (h Handler) HandleMessage(payload []byte) {
	if h.OnMessage != nil {
		h.OnMessage(payload)
	}
}

func (h Handler) HandleError(err error) {
	if h.OnError != nil {
		h.OnError(err)
	}
}
