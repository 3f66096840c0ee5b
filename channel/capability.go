// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package channel implements the channel capability contracts: a concrete
// channel advertises any combination of small interfaces rather
// than switching on a single enum, the way a framer might switch on a
// Protocol (preserveBoundary) field to pick stream vs. packet behavior. Non-
// blocking transfer methods return (0, nil) for "not ready" and (-1, nil)
// for end-of-input on the read side; note this differs from iox-style
// channels, which signal "not ready" via iox.ErrWouldBlock rather than a
// bare 0. This package does not use the iox sentinels at all; the framing
// package's readStep translates 0/-1 into ErrWouldBlock/io.EOF for its own
// state machine.
package channel

import (
	"context"
	"net"
	"time"
)

// ReadableByte is a channel that can attempt a non-blocking byte read.
type ReadableByte interface {
	// Read attempts to fill p. It returns (0, nil) if no data is currently
	// available, (-1, nil) at end-of-input, or (n, nil) with n > 0 for
	// partial or full progress. Errors other than these are failures.
	Read(p []byte) (n int, err error)
}

// WritableByte is a channel that can attempt a non-blocking byte write.
type WritableByte interface {
	// Write attempts to send p. It returns (0, nil) if the channel is not
	// currently writable; a call that returns 0 must not consume any bytes.
	Write(p []byte) (n int, err error)
}

// Scattering channels can distribute one read's bytes across multiple
// buffers in a single non-blocking call.
type Scattering interface {
	ReadV(bufs [][]byte) (n int, err error)
}

// Gathering channels can source one write's bytes from multiple buffers in
// a single non-blocking call.
type Gathering interface {
	WriteV(bufs [][]byte) (n int, err error)
}

// SuspendableRead lets a caller arm/disarm read readiness notifications and
// block (with or without a deadline) until the channel becomes readable.
type SuspendableRead interface {
	ResumeReads()
	SuspendReads()

	// AwaitReadable blocks until readable or ctx is done, in which case it
	// returns ctx.Err().
	AwaitReadable(ctx context.Context) error

	// AwaitReadableTimeout is the fixed-duration convenience form.
	AwaitReadableTimeout(timeout time.Duration) error
}

// SuspendableWrite is the write-side counterpart of SuspendableRead, plus
// flush and half-close.
type SuspendableWrite interface {
	ResumeWrites()
	SuspendWrites()
	AwaitWritable(ctx context.Context) error
	AwaitWritableTimeout(timeout time.Duration) error

	// Flush attempts to push any internally staged bytes to the underlying
	// transport without blocking. It reports whether all staged data has
	// been flushed.
	Flush() (done bool, err error)

	// ShutdownWrites half-closes the write direction without blocking,
	// reporting whether the shutdown has fully completed (some transports
	// need to drain staged data first, in which case false is returned and
	// the caller should retry after the next write-readiness event).
	ShutdownWrites() (done bool, err error)
}

// Bound channels expose the local address they are bound to.
type Bound interface {
	LocalAddr() net.Addr
}

// Connected channels expose the address of their peer.
type Connected interface {
	RemoteAddr() net.Addr
}

// MessageReader delivers at most one complete message per call, returning
// 0 when none is pending.
type MessageReader interface {
	Receive(buf []byte) (n int, err error)
	ReceiveV(bufs [][]byte) (n int, err error)
}

// MessageWriter sends a complete message whose success is all-or-nothing:
// either the full message is accepted, or none of it is.
type MessageWriter interface {
	Send(buf []byte) error
	SendV(bufs [][]byte) error
}
