// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sslchannel

import (
	"sync"

	"golang.org/x/sync/semaphore"

	"code.hybscloud.com/nio/channel"
	"code.hybscloud.com/nio/future"
	"code.hybscloud.com/nio/iolog"
	"code.hybscloud.com/nio/listener"
)

// Stream is the channel capability set an Overlay needs from the
// underlying byte-stream channel it wraps: non-blocking reads/writes,
// suspend/resume, and a listener setter keyed to the underlying channel's
// own concrete type (so the overlay can install itself as that channel's
// read/write listener without the underlying type needing to know about
// sslchannel at all).
type Stream[T any] interface {
	channel.ReadableByte
	channel.WritableByte
	channel.SuspendableRead
	channel.SuspendableWrite
	channel.Closer
	SetReadListener(listener.Listener[T]) bool
	SetWriteListener(listener.Listener[T]) bool
}

const netBufferSize = 16 * 1024

// Overlay wraps a stream channel U and presents itself as a channel whose
// Read/Write operate on application plaintext, with all TLS framing,
// handshake orchestration, and task scheduling handled internally (spec
// §4.I). Readiness is derived, not polled: Overlay installs itself as the
// underlying stream's read and write listener and re-evaluates the engine's
// next-needed action on every underlying readiness event, only then firing
// its own listeners.
type Overlay[U Stream[U]] struct {
	*channel.Base
	*channel.Listeners[*Overlay[U]]

	underlying U
	engine     Engine
	exec       listener.Executor
	sem        *semaphore.Weighted
	log        iolog.Logger

	mu           sync.Mutex
	netIn        []byte // ciphertext read from underlying, not yet unwrapped
	netInLen     int
	netOut       []byte // ciphertext wrapped, not yet written to underlying
	netOutOff    int
	netOutLen    int
	appIn        []byte // plaintext produced by unwrap, not yet delivered to Read
	appInOff     int
	appInLen     int
	appOut       []byte // plaintext accepted by Write, not yet wrapped
	appOutLen    int
	taskRunning  bool
	peerEOF      bool
	fatal        error
	handshakeFut *future.Sink[struct{}]
	handshakeF   future.Future[struct{}]
}

// NewOverlay wraps underlying with engine, using exec (bounded to at most
// maxConcurrentTasks simultaneously in-flight task-runner goroutines, spec
// §4.I "a task runner is invoked on the configured executor") to run
// engine.Task() results off the calling goroutine. maxConcurrentTasks <= 0
// defaults to 1.
func NewOverlay[U Stream[U]](underlying U, engine Engine, exec listener.Executor, maxConcurrentTasks int64, log iolog.Logger) *Overlay[U] {
	if exec == nil {
		exec = listener.DirectExecutor{}
	}
	if maxConcurrentTasks <= 0 {
		maxConcurrentTasks = 1
	}
	if log == nil {
		log = iolog.Discard
	}
	o := &Overlay[U]{
		underlying: underlying,
		engine:     engine,
		exec:       exec,
		sem:        semaphore.NewWeighted(maxConcurrentTasks),
		log:        log,
		netIn:      make([]byte, netBufferSize),
		netOut:     make([]byte, netBufferSize),
		appIn:      make([]byte, netBufferSize),
	}
	o.Base = channel.NewBase()
	o.Listeners = channel.NewListeners[*Overlay[U]](o.Base)

	underlying.SetReadListener(listener.ListenerFunc[U](func(U) { o.onUnderlyingReady() }))
	underlying.SetWriteListener(listener.ListenerFunc[U](func(U) { o.onUnderlyingReady() }))
	return o
}

// BeginHandshake starts the handshake and returns a future that resolves
// Done once HandshakeStatus settles to Finished/NotHandshaking, or Failed
// on any engine error encountered along the way. Calling it more than once
// before the first handshake settles returns the same future.
func (o *Overlay[U]) BeginHandshake() future.Future[struct{}] {
	o.mu.Lock()
	if o.handshakeF != nil {
		fut := o.handshakeF
		o.mu.Unlock()
		return fut
	}
	sink, fut := future.NewSink[struct{}]()
	o.handshakeFut = sink
	o.handshakeF = fut
	err := o.engine.BeginHandshake()
	o.mu.Unlock()
	if err != nil {
		sink.SetException(err)
		return fut
	}
	o.pump()
	return fut
}

// Read delivers plaintext already produced by the engine. It returns
// (0, nil) if none is currently available, (-1, nil) once the peer has
// shut down and every produced byte has been delivered.
func (o *Overlay[U]) Read(p []byte) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.fatal != nil {
		return 0, o.fatal
	}
	if o.appInLen > o.appInOff {
		n := copy(p, o.appIn[o.appInOff:o.appInLen])
		o.appInOff += n
		if o.appInOff == o.appInLen {
			o.appInOff, o.appInLen = 0, 0
		}
		return n, nil
	}
	if o.peerEOF && o.engine.HandshakeStatus() != NeedUnwrap {
		return -1, nil
	}
	return 0, nil
}

// Write accepts p into the pending-plaintext stage, unless a previous
// Write's payload has not yet been fully wrapped onto the wire, in which
// case it returns (0, nil) — callers must wait for the next write-ready
// event (mirrored by the overlay's own write listener) before retrying.
func (o *Overlay[U]) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	o.mu.Lock()
	if o.fatal != nil {
		err := o.fatal
		o.mu.Unlock()
		return 0, err
	}
	if o.appOutLen > 0 {
		o.mu.Unlock()
		return 0, nil
	}
	if cap(o.appOut) < len(p) {
		o.appOut = make([]byte, len(p))
	} else {
		o.appOut = o.appOut[:len(p)]
	}
	copy(o.appOut, p)
	o.appOutLen = len(p)
	o.mu.Unlock()

	o.pump()
	return len(p), nil
}

// Flush reports done once both the engine's wrapped-but-unsent bytes and
// this overlay's pending plaintext have fully drained onto the underlying
// stream.
func (o *Overlay[U]) Flush() (bool, error) {
	o.pump()
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.appOutLen == 0 && o.netOutLen == o.netOutOff, nil
}

// ShutdownWrites forwards to the underlying stream once all pending
// plaintext has drained; a proper close_notify is the engine's concern via
// its own Wrap/Unwrap state machine, not modeled separately here since the
// engine interface has no explicit "close outbound" operation — the engine
// is treated strictly as the oracle whose operations Engine names.
func (o *Overlay[U]) ShutdownWrites() (bool, error) {
	done, err := o.Flush()
	if err != nil || !done {
		return false, err
	}
	return o.underlying.ShutdownWrites()
}

func (o *Overlay[U]) ResumeReads()  { o.underlying.ResumeReads() }
func (o *Overlay[U]) SuspendReads() { o.underlying.SuspendReads() }

func (o *Overlay[U]) ResumeWrites()  { o.underlying.ResumeWrites() }
func (o *Overlay[U]) SuspendWrites() { o.underlying.SuspendWrites() }

// Close closes the underlying stream. Idempotent via channel.Base/
// channel.SafeClose semantics at the call site.
func (o *Overlay[U]) Close() error {
	o.Base.Close()
	return o.underlying.Close()
}

func (o *Overlay[U]) onUnderlyingReady() { o.pump() }

// pump advances the engine as far as it can go without blocking, driving
// I/O against the underlying stream and firing this overlay's own
// listeners when application-level readiness changes. Listener dispatch
// mirrors the standard channel contract.
func (o *Overlay[U]) pump() {
	o.mu.Lock()
	producedApp, acceptedApp := o.pumpLocked()
	readLis := o.ReadListener()
	writeLis := o.WriteListener()
	o.mu.Unlock()

	if producedApp && readLis != nil {
		readLis.HandleEvent(o)
	}
	if acceptedApp && writeLis != nil {
		writeLis.HandleEvent(o)
	}
}

// pumpLocked runs one pass of the wrap/unwrap/task loop. It must be called
// with o.mu held, and returns whether application-readable bytes were
// produced and whether pending application-writable bytes were fully
// drained to the wire during this pass.
func (o *Overlay[U]) pumpLocked() (producedApp, acceptedApp bool) {
	if o.fatal != nil || o.taskRunning {
		return false, false
	}
	for i := 0; i < 64; i++ { // bounded: never spin forever within one event
		switch o.engine.HandshakeStatus() {
		case NeedTask:
			o.runTaskLocked()
			return producedApp, acceptedApp
		case NeedWrap:
			if !o.wrapStepLocked() {
				return producedApp, acceptedApp
			}
		case NeedUnwrap:
			progressed, produced := o.unwrapOnceLocked()
			producedApp = producedApp || produced
			if !progressed {
				return producedApp, acceptedApp
			}
		case NotHandshaking, Finished:
			if o.handshakeFut != nil {
				o.handshakeFut.SetResult(struct{}{})
				o.handshakeFut = nil
			}
			progressed := false
			if o.appOutLen > 0 && o.wrapStepLocked() {
				progressed = true
				if o.appOutLen == 0 {
					acceptedApp = true
				}
			}
			if o.drainNetOutLocked() {
				progressed = true
			}
			if unwrapProgressed, produced := o.unwrapOnceLocked(); unwrapProgressed {
				progressed = true
				if produced {
					producedApp = true
				}
			}
			if !progressed {
				return producedApp, acceptedApp
			}
		}
	}
	return producedApp, acceptedApp
}

// wrapStepLocked runs one Engine.Wrap call (consuming from appOut during
// steady-state, or zero bytes during a pure handshake step) and attempts to
// push the result onto the wire. It reports whether progress was made.
func (o *Overlay[U]) wrapStepLocked() bool {
	src := o.appOut[:o.appOutLen]
	res, err := o.engine.Wrap(src, o.netOut[o.netOutLen:])
	if err != nil {
		o.failLocked(err)
		return false
	}
	if res.Consumed == 0 && res.Produced == 0 {
		return false
	}
	if res.Consumed > 0 {
		copy(o.appOut, o.appOut[res.Consumed:o.appOutLen])
		o.appOutLen -= res.Consumed
	}
	o.netOutLen += res.Produced
	o.drainNetOutLocked()
	return true
}

// drainNetOutLocked writes as much of the staged ciphertext as the
// underlying stream currently accepts. It reports whether any bytes were
// written.
func (o *Overlay[U]) drainNetOutLocked() bool {
	wrote := false
	for o.netOutLen > o.netOutOff {
		n, err := o.underlying.Write(o.netOut[o.netOutOff:o.netOutLen])
		if err != nil {
			o.failLocked(err)
			return wrote
		}
		if n == 0 {
			return wrote
		}
		o.netOutOff += n
		wrote = true
	}
	if o.netOutOff == o.netOutLen {
		o.netOutOff, o.netOutLen = 0, 0
	}
	return wrote
}

// unwrapOnceLocked fills netIn if empty, then calls Engine.Unwrap once. It
// reports whether any progress was made (bytes consumed, produced, or a
// peer EOF observed) and whether plaintext was produced for Read.
func (o *Overlay[U]) unwrapOnceLocked() (progressed, producedApp bool) {
	if o.netInLen == 0 {
		if !o.fillNetInLocked() {
			return false, false
		}
		if o.netInLen == 0 {
			// fillNetInLocked only returns true with netInLen still 0 on
			// peer EOF; Read() consults peerEOF directly.
			return true, false
		}
	}
	res, err := o.engine.Unwrap(o.netIn[:o.netInLen], o.appIn[o.appInLen:])
	if err != nil {
		o.failLocked(err)
		return false, false
	}
	if res.Consumed > 0 {
		copy(o.netIn, o.netIn[res.Consumed:o.netInLen])
		o.netInLen -= res.Consumed
	}
	if res.Produced > 0 {
		o.appInLen += res.Produced
		producedApp = true
	}
	progressed = res.Consumed > 0 || res.Produced > 0
	return progressed, producedApp
}

// fillNetInLocked performs one non-blocking read from the underlying
// stream into netIn. It reports whether any bytes (or EOF) were observed.
func (o *Overlay[U]) fillNetInLocked() bool {
	n, err := o.underlying.Read(o.netIn[o.netInLen:])
	if err != nil {
		o.failLocked(err)
		return false
	}
	if n == -1 {
		o.peerEOF = true
		return true
	}
	if n == 0 {
		return false
	}
	o.netInLen += n
	return true
}

// runTaskLocked dispatches the engine's next pending task to exec, bounded
// by sem. It releases o.mu for the duration of dispatch — exec may be a
// DirectExecutor that runs (and whose follow-up pump re-enters this type's
// methods) synchronously on this same goroutine, which would deadlock
// against a held, non-reentrant mutex — and reacquires it before
// returning, preserving pumpLocked's "called with o.mu held, returns with
// o.mu held" contract.
func (o *Overlay[U]) runTaskLocked() {
	task, ok := o.engine.Task()
	if !ok {
		return
	}
	o.taskRunning = true
	o.mu.Unlock()
	o.dispatchTask(task)
	o.mu.Lock()
}

// dispatchTask submits task to exec, bounded by sem. If the semaphore is
// saturated, the task runs on its own goroutine instead of blocking the
// caller on acquisition — concurrency is a soft bound on overlapping
// long-running tasks, not a hard gate on forward progress. If exec rejects
// the submission, the overlay is safe-closed: rejected execution is a
// recoverable event handled by safe-closing the channel, not by
// propagating the rejection to the caller.
func (o *Overlay[U]) dispatchTask(task func()) {
	run := func() {
		task()
		o.mu.Lock()
		o.taskRunning = false
		o.mu.Unlock()
		o.pump()
	}

	if !o.sem.TryAcquire(1) {
		go run()
		return
	}
	err := o.exec.Execute(func() {
		defer o.sem.Release(1)
		run()
	})
	if err != nil {
		o.sem.Release(1)
		o.mu.Lock()
		o.taskRunning = false
		o.mu.Unlock()
		o.log.Warn("sslchannel.Overlay", err)
		channel.SafeClose(o.log, "sslchannel.Overlay", o)
	}
}

func (o *Overlay[U]) failLocked(err error) {
	o.fatal = err
	if o.handshakeFut != nil {
		o.handshakeFut.SetException(err)
		o.handshakeFut = nil
	}
	channel.SafeClose(o.log, "sslchannel.Overlay", o.underlying)
}
