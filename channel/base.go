// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package channel

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"code.hybscloud.com/nio/ioerr"
	"code.hybscloud.com/nio/listener"
)

// lifecycle is a channel's open/closed/half-closed state, grounded on
// framer.framer's single mutable-state-holder-with-reset shape (fr.reset()
// clears stream-parse progress on each message boundary; here the same
// "one struct holds all transition-relevant state" idea holds the channel's
// lifecycle instead).
type lifecycle int

const (
	open lifecycle = iota
	writesShutdown
	closed
)

// Base is embedded by concrete channel implementations to provide the
// shared open/closed/half-closed bookkeeping and suspend-flag state spec
// §4.E requires of every channel. The read/write listener setters that
// framing and sslchannel install themselves through live in the separate
// Listeners bundle below, tied to a Base via NewListeners.
type Base struct {
	mu    sync.Mutex
	state lifecycle

	readsSuspended  atomic.Bool
	writesSuspended atomic.Bool

	readReady  chan struct{}
	writeReady chan struct{}
}

// NewBase returns an initialized Base in the open state.
func NewBase() *Base {
	return &Base{
		readReady:  make(chan struct{}, 1),
		writeReady: make(chan struct{}, 1),
	}
}

// IsClosed reports whether Close has been called.
func (b *Base) IsClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state == closed
}

// WritesShutdown reports whether ShutdownWrites has completed or Close has
// been called. After that point, further writes fail with closed.
func (b *Base) WritesShutdown() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state != open
}

// MarkWritesShutdown transitions out of open into writesShutdown, unless
// already closed. Idempotent.
func (b *Base) MarkWritesShutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == open {
		b.state = writesShutdown
	}
}

// Close transitions to closed. Idempotent; returns ioerr.ErrClosed if
// already closed, matching the repeated-Close contract used throughout this
// module (see channel/safeclose.go).
func (b *Base) Close() error {
	b.mu.Lock()
	if b.state == closed {
		b.mu.Unlock()
		return ioerr.ErrClosed
	}
	b.state = closed
	b.mu.Unlock()
	return nil
}

// --- readiness plumbing ---

// SignalReadable marks the channel readable, waking at most one pending
// AwaitReadable and priming the next one to return immediately — the
// selector-facing half of suspend/resume. A send on a full (capacity 1)
// channel is dropped rather than blocking: buffered readiness signals are
// permitted to coalesce.
func (b *Base) SignalReadable() {
	select {
	case b.readReady <- struct{}{}:
	default:
	}
}

// SignalWritable is SignalReadable's write-side counterpart.
func (b *Base) SignalWritable() {
	select {
	case b.writeReady <- struct{}{}:
	default:
	}
}

func (b *Base) ResumeReads()  { b.readsSuspended.Store(false) }
func (b *Base) SuspendReads() { b.readsSuspended.Store(true) }

func (b *Base) ReadsSuspended() bool { return b.readsSuspended.Load() }

func (b *Base) ResumeWrites()  { b.writesSuspended.Store(false) }
func (b *Base) SuspendWrites() { b.writesSuspended.Store(true) }

func (b *Base) WritesSuspended() bool { return b.writesSuspended.Load() }

// AwaitReadable blocks until SignalReadable fires or ctx is done. Resuming
// must re-check readiness synchronously before arming the selector (spec
// §5); callers poll their own readable() predicate in a loop around this,
// so AwaitReadable itself only needs to wait for the next signal.
func (b *Base) AwaitReadable(ctx context.Context) error {
	select {
	case <-b.readReady:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Base) AwaitReadableTimeout(timeout time.Duration) error {
	if timeout <= 0 {
		return b.AwaitReadable(context.Background())
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return b.AwaitReadable(ctx)
}

func (b *Base) AwaitWritable(ctx context.Context) error {
	select {
	case <-b.writeReady:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Base) AwaitWritableTimeout(timeout time.Duration) error {
	if timeout <= 0 {
		return b.AwaitWritable(context.Background())
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return b.AwaitWritable(ctx)
}

// --- listener slots ---

// Listeners bundles the read/write listener setters a Base-embedding
// channel exposes. Registration on an already-closed channel is a no-op
// that reports false, resolved in favor of a safe no-op rather than a
// panic or error — see DESIGN.md.
type Listeners[T any] struct {
	base *Base
	read listener.Setter[T]
	write listener.Setter[T]
}

// NewListeners ties a Listeners bundle to base, so SetReadListener/
// SetWriteListener can consult its closed state.
func NewListeners[T any](base *Base) *Listeners[T] {
	return &Listeners[T]{base: base}
}

// SetReadListener installs l as the read-ready listener, unless the channel
// is already closed, in which case it is a silent no-op and false is
// returned.
func (l *Listeners[T]) SetReadListener(ls listener.Listener[T]) bool {
	if l.base.IsClosed() {
		return false
	}
	l.read.Set(ls)
	return true
}

func (l *Listeners[T]) ReadListener() listener.Listener[T] { return l.read.Get() }

// SetWriteListener installs l as the write-ready listener, unless the
// channel is already closed.
func (l *Listeners[T]) SetWriteListener(ls listener.Listener[T]) bool {
	if l.base.IsClosed() {
		return false
	}
	l.write.Set(ls)
	return true
}

func (l *Listeners[T]) WriteListener() listener.Listener[T] { return l.write.Get() }
