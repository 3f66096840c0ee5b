// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framing

import (
	"encoding/binary"
	"io"
	"sync"

	"code.hybscloud.com/nio/channel"
	"code.hybscloud.com/nio/ioerr"
	"code.hybscloud.com/nio/iolog"
	"code.hybscloud.com/nio/listener"
)

// Source is the channel capability set a Reader[T] needs: non-blocking
// byte reads, a read-listener setter keyed to the channel's own concrete
// type, and a Close the Reader can safe-close on a framing violation.
type Source[T any] interface {
	channel.ReadableByte
	channel.Closer
	SetReadListener(listener.Listener[T]) bool
}

type readState int

const (
	readingLength readState = iota
	readingBody
)

// Reader is installed as the read-ready listener on a stream source
// channel and turns its byte stream into discrete messages. It owns a
// three-phase state machine: reading-length (0..3 of the 4
// length-prefix bytes seen so far), reading-body (0 <= accumulated < L),
// and dispatch (invoke the handler, then re-enter reading-length).
type Reader[T Source[T]] struct {
	src        T
	handler    MessageHandler
	maxInbound int
	log        iolog.Logger

	mu      sync.Mutex
	state   readState
	lenBuf  [4]byte
	lenN    int
	length  uint32
	body    []byte
	bodyN   int
	stopped bool
}

// NewReader installs a Reader on src's read-listener slot. maxInbound <= 0
// means no limit is enforced on the incoming length prefix. handler is
// invoked from whatever goroutine dispatches src's read-ready event (the
// selector thread, or an executor, per the caller's choice).
func NewReader[T Source[T]](src T, maxInbound int, handler MessageHandler, log iolog.Logger) *Reader[T] {
	if log == nil {
		log = iolog.Discard
	}
	r := &Reader[T]{src: src, handler: handler, maxInbound: maxInbound, log: log}
	src.SetReadListener(listener.ListenerFunc[T](func(T) { r.OnReadable() }))
	return r
}

// OnReadable drains as many complete messages as are currently available,
// dispatching each to the handler in turn, and returns as soon as the
// underlying channel reports not-ready.
func (r *Reader[T]) OnReadable() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}
	for {
		switch r.state {
		case readingLength:
			n, err := readStep(r.src, r.lenBuf[r.lenN:4])
			if err == ErrWouldBlock {
				return
			}
			if err != nil {
				r.failLocked(err)
				return
			}
			r.lenN += n
			if r.lenN < 4 {
				continue
			}
			r.length = binary.BigEndian.Uint32(r.lenBuf[:])
			r.lenN = 0
			if r.maxInbound > 0 && int(r.length) > r.maxInbound {
				r.failLocked(ioerr.ErrFramingError)
				return
			}
			if cap(r.body) < int(r.length) {
				r.body = make([]byte, r.length)
			} else {
				r.body = r.body[:r.length]
			}
			r.bodyN = 0
			r.state = readingBody
			if r.length == 0 {
				r.dispatchLocked()
			}
		case readingBody:
			n, err := readStep(r.src, r.body[r.bodyN:])
			if err == ErrWouldBlock {
				return
			}
			if err != nil {
				r.failLocked(err)
				return
			}
			r.bodyN += n
			if r.bodyN < len(r.body) {
				continue
			}
			r.dispatchLocked()
		}
	}
}

func (r *Reader[T]) dispatchLocked() {
	payload := r.body[:len(r.body):len(r.body)]
	r.state = readingLength
	r.handler.HandleMessage(payload)
}

func (r *Reader[T]) failLocked(err error) {
	r.stopped = true
	channel.SafeClose(r.log, "framing.Reader", r.src)
	r.handler.HandleError(err)
}

// readStep performs one non-blocking Read into dst, translating the
// channel capability contract's 0/-1 returns into the ErrWouldBlock/io.EOF
// control-flow values this package's state machines drive on internally,
// mirroring framer.framer.readOnce's retry-on-not-ready loop.
func readStep(src channel.ReadableByte, dst []byte) (int, error) {
	n, err := src.Read(dst)
	if err != nil {
		return n, err
	}
	if n == -1 {
		return 0, io.EOF
	}
	if n == 0 {
		return 0, ErrWouldBlock
	}
	return n, nil
}
