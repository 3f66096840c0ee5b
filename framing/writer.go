// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framing

import (
	"encoding/binary"
	"sync"

	"code.hybscloud.com/nio/channel"
	"code.hybscloud.com/nio/ioerr"
	"code.hybscloud.com/nio/listener"
)

// Sink is the channel capability set a Writer[T] needs: non-blocking byte
// writes, suspend/resume/flush, and a write-listener setter keyed to the
// channel's own concrete type (used to redrive staged bytes on the next
// write-ready event).
type Sink[T any] interface {
	channel.WritableByte
	channel.SuspendableWrite
	SetWriteListener(listener.Listener[T]) bool
}

// Writer exposes a message-write channel over a byte-stream Sink: each Send
// prepends a 4-byte big-endian length prefix and writes prefix+payload
// through the sink. Bytes that don't fit in one non-blocking
// Write are held in an internal staging queue and retried on the next
// write-ready event; suspension/resumption of writes is forwarded to the
// underlying sink.
type Writer[T Sink[T]] struct {
	sink        T
	maxOutbound int

	mu      sync.Mutex
	pending [][]byte
	off     int // bytes of pending[0] already written
}

// NewWriter installs a Writer on sink's write-listener slot so staged bytes
// are retried whenever the sink becomes writable. maxOutbound <= 0 means no
// limit is enforced on outgoing messages.
func NewWriter[T Sink[T]](sink T, maxOutbound int) *Writer[T] {
	w := &Writer[T]{sink: sink, maxOutbound: maxOutbound}
	sink.SetWriteListener(listener.ListenerFunc[T](func(T) { w.drain() }))
	return w
}

// Send frames buf and queues it for write, all-or-nothing: either the
// entire framed message is accepted into the staging queue (and eventually
// reaches the wire byte-for-byte), or nothing is queued and
// ioerr.ErrOversizedMessage is returned. An error from the sink's Write
// while draining is returned as is; the frame stays queued in that case.
func (w *Writer[T]) Send(buf []byte) error {
	return w.SendV([][]byte{buf})
}

// SendV is the gathering counterpart of Send: bufs are concatenated behind
// one length prefix sized to their combined length.
func (w *Writer[T]) SendV(bufs [][]byte) error {
	total := 0
	for _, b := range bufs {
		total += len(b)
	}
	if w.maxOutbound > 0 && total > w.maxOutbound {
		return ioerr.ErrOversizedMessage
	}
	frame := make([]byte, 4+total)
	binary.BigEndian.PutUint32(frame, uint32(total))
	off := 4
	for _, b := range bufs {
		off += copy(frame[off:], b)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = append(w.pending, frame)
	return w.drainLocked()
}

// drain is the write-ready listener's entry point.
func (w *Writer[T]) drain() {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.drainLocked()
}

// drainLocked writes as much of the staged queue as the sink currently
// accepts, stopping at the first not-ready or error result.
func (w *Writer[T]) drainLocked() error {
	for len(w.pending) > 0 {
		cur := w.pending[0]
		n, err := w.sink.Write(cur[w.off:])
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		w.off += n
		if w.off == len(cur) {
			w.pending = w.pending[1:]
			w.off = 0
		}
	}
	return nil
}

// Flush forwards to the underlying sink, reporting done only once both the
// sink's own staging (if any) and this Writer's frame queue are drained.
func (w *Writer[T]) Flush() (bool, error) {
	w.mu.Lock()
	pendingEmpty := len(w.pending) == 0
	w.mu.Unlock()
	done, err := w.sink.Flush()
	return done && pendingEmpty, err
}

func (w *Writer[T]) ResumeWrites()  { w.sink.ResumeWrites() }
func (w *Writer[T]) SuspendWrites() { w.sink.SuspendWrites() }
