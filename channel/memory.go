// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package channel

import (
	"net"
	"sync"

	"code.hybscloud.com/nio/ioerr"
)

// memAddr is a trivial net.Addr for in-process channel endpoints.
type memAddr string

func (a memAddr) Network() string { return "memory" }
func (a memAddr) String() string  { return string(a) }

// MemoryChannel is an in-process, unbounded-buffer byte-stream channel
// implementing ReadableByte/WritableByte/SuspendableRead/SuspendableWrite/
// Bound/Connected. It is the concrete channel this module's own tests (and
// framing/blocking/connect, by extension) drive against in place of a real
// socket — bench_test.go-style fakes (replayReader/benchWBWriter) do
// something similar but only as throwaway test doubles; MemoryChannel
// generalizes the idea into a reusable, conformant type so it can also
// serve as a lightweight in-process transport for callers that don't need a
// real socket (e.g. local pipelines, tests of higher layers).
type MemoryChannel struct {
	*Base
	*Listeners[*MemoryChannel]

	mu     sync.Mutex
	inbuf  []byte
	halfRd bool // peer shut down writes: Read drains remaining inbuf then returns -1

	peer  *MemoryChannel
	local net.Addr
}

// NewMemoryChannelPair returns two MemoryChannels, each other's peer: bytes
// written to one arrive as bytes readable from the other.
func NewMemoryChannelPair() (a, b *MemoryChannel) {
	a = &MemoryChannel{Base: NewBase(), local: memAddr("mem-0")}
	b = &MemoryChannel{Base: NewBase(), local: memAddr("mem-1")}
	a.Listeners = NewListeners[*MemoryChannel](a.Base)
	b.Listeners = NewListeners[*MemoryChannel](b.Base)
	a.peer, b.peer = b, a
	return a, b
}

func (m *MemoryChannel) LocalAddr() net.Addr  { return m.local }
func (m *MemoryChannel) RemoteAddr() net.Addr { return m.peer.local }

// Read implements ReadableByte.
func (m *MemoryChannel) Read(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.inbuf) == 0 {
		if m.halfRd {
			return -1, nil
		}
		return 0, nil
	}
	n := copy(p, m.inbuf)
	m.inbuf = m.inbuf[n:]
	return n, nil
}

// Write implements WritableByte: it always accepts the full write (the
// buffer is unbounded), unless writes have been shut down or the channel
// closed, matching the "0 must not consume bytes" invariant by either
// consuming everything or nothing.
func (m *MemoryChannel) Write(p []byte) (int, error) {
	if m.IsClosed() {
		return 0, ioerr.ErrClosed
	}
	if m.WritesShutdown() {
		return 0, ioerr.ErrClosed
	}
	if len(p) == 0 {
		return 0, nil
	}
	m.peer.mu.Lock()
	m.peer.inbuf = append(m.peer.inbuf, p...)
	m.peer.mu.Unlock()
	m.peer.SignalReadable()
	return len(p), nil
}

// Flush reports done immediately: MemoryChannel has no internal staging
// buffer to drain.
func (m *MemoryChannel) Flush() (bool, error) { return true, nil }

// ShutdownWrites half-closes the write direction; the peer observes end-of-
// input (Read returning -1) once its buffered bytes are drained.
func (m *MemoryChannel) ShutdownWrites() (bool, error) {
	m.MarkWritesShutdown()
	m.peer.mu.Lock()
	m.peer.halfRd = true
	m.peer.mu.Unlock()
	m.peer.SignalReadable()
	return true, nil
}

// Close closes this end. It does not by itself signal the peer; callers
// that want symmetric teardown should Close both ends or call
// ShutdownWrites first.
func (m *MemoryChannel) Close() error { return m.Base.Close() }
