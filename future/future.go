// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package future implements an asynchronous-result contract: a
// generic Future[T] with four terminal states, interruptible/timed awaits,
// and a notifier fan-out on settlement. The state machine is grounded on
// joeycumines-go-utilpkg/eventloop's promise.go (mutex-guarded state plus a
// subscriber fan-out run on settle), extended with generics, a fourth
// terminal state, and split read (Future) / write (Sink) surfaces.
package future

import (
	"context"
	"sync"
	"time"

	"code.hybscloud.com/nio/ioerr"
)

// Status is one of the four future states.
type Status int

const (
	Waiting Status = iota
	Done
	Failed
	Cancelled
)

func (s Status) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case Done:
		return "done"
	case Failed:
		return "failed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Cancellable is an operation a future can forward cancellation to, so that
// cancelling the future races with and may terminate the in-flight work.
type Cancellable interface {
	Cancel()
}

// Notifier is fired exactly once when the future it was attached to reaches
// a terminal state, carrying the future and the attachment supplied to
// AddNotifier.
type Notifier[T any] interface {
	HandleNotify(f Future[T], attachment any)
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc[T any] func(f Future[T], attachment any)

func (fn NotifierFunc[T]) HandleNotify(f Future[T], attachment any) { fn(f, attachment) }

// HandlingNotifier dispatches on terminal state into the three Handle*
// methods, rather than requiring the notifier to call Get/GetException/
// Status itself.
type HandlingNotifier[T any] struct {
	HandleDone      func(value T, attachment any)
	HandleFailed    func(err error, attachment any)
	HandleCancelled func(attachment any)
}

func (h HandlingNotifier[T]) HandleNotify(f Future[T], attachment any) {
	switch f.Status() {
	case Done:
		if h.HandleDone != nil {
			v, _ := f.Get()
			h.HandleDone(v, attachment)
		}
	case Failed:
		if h.HandleFailed != nil {
			h.HandleFailed(f.GetException(), attachment)
		}
	case Cancelled:
		if h.HandleCancelled != nil {
			h.HandleCancelled(attachment)
		}
	}
}

// Future is the read-only view of an asynchronous result.
type Future[T any] interface {
	// Status returns the current state. Once non-Waiting, it never changes.
	Status() Status

	// Await blocks until the future is terminal, or ctx is done — in which
	// case it returns the current (possibly still Waiting) status. It
	// reports no error; AwaitInterruptible is the variant that surfaces
	// ctx becoming done as ioerr.ErrInterrupted.
	Await(ctx context.Context) Status

	// AwaitTimeout blocks up to timeout and returns the status observed,
	// which may still be Waiting if timeout elapses first.
	AwaitTimeout(timeout time.Duration) Status

	// AwaitInterruptible is the interruptible counterpart named in spec
	// §4.C: it behaves like Await, except that ctx becoming Done before the
	// future turns terminal is surfaced as ioerr.ErrInterrupted rather than
	// folded into a still-Waiting status.
	AwaitInterruptible(ctx context.Context) (Status, error)

	// Get returns the terminal value, or fails with ioerr.ErrCancelled or
	// the stored error. It blocks until terminal.
	Get() (T, error)

	// GetException returns the stored error, valid only once Status is
	// Failed; it returns nil otherwise.
	GetException() error

	// Cancel requests cancellation and returns the future for chaining. It
	// is idempotent: calling it on an already-terminal future is a no-op.
	Cancel() Future[T]

	// AddNotifier attaches n, to be invoked exactly once when the future
	// becomes terminal (immediately, on the calling goroutine, if already
	// terminal).
	AddNotifier(n Notifier[T], attachment any)
}

type notifierEntry[T any] struct {
	notifier   Notifier[T]
	attachment any
}

// impl is the shared concrete state machine behind Sink/Future.
type impl[T any] struct {
	mu          sync.Mutex
	status      Status
	value       T
	err         error
	waiters     []chan struct{}
	notifiers   []notifierEntry[T]
	cancellable Cancellable
}

func (f *impl[T]) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func (f *impl[T]) GetException() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status != Failed {
		return nil
	}
	return f.err
}

func (f *impl[T]) Get() (T, error) {
	f.Await(context.Background())
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.status {
	case Done:
		return f.value, nil
	case Cancelled:
		var zero T
		return zero, ioerr.ErrCancelled
	default:
		var zero T
		return zero, f.err
	}
}

func (f *impl[T]) Await(ctx context.Context) Status {
	f.mu.Lock()
	if f.status != Waiting {
		s := f.status
		f.mu.Unlock()
		return s
	}
	ch := make(chan struct{})
	f.waiters = append(f.waiters, ch)
	f.mu.Unlock()

	select {
	case <-ch:
	case <-ctx.Done():
	}
	return f.Status()
}

func (f *impl[T]) AwaitTimeout(timeout time.Duration) Status {
	if timeout <= 0 {
		return f.Await(context.Background())
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return f.Await(ctx)
}

func (f *impl[T]) AwaitInterruptible(ctx context.Context) (Status, error) {
	f.mu.Lock()
	if f.status != Waiting {
		s := f.status
		f.mu.Unlock()
		return s, nil
	}
	ch := make(chan struct{})
	f.waiters = append(f.waiters, ch)
	f.mu.Unlock()

	select {
	case <-ch:
		return f.Status(), nil
	case <-ctx.Done():
		return f.Status(), ioerr.ErrInterrupted
	}
}

func (f *impl[T]) Cancel() Future[T] {
	f.settle(Cancelled, *new(T), nil)
	return f
}

// settle transitions the future to a terminal state exactly once; later
// calls are no-ops, matching Cancel's idempotent semantics (which Sink's
// setters reuse for consistency). It reports whether this call was the one
// that performed the transition.
func (f *impl[T]) settle(status Status, value T, err error) bool {
	f.mu.Lock()
	if f.status != Waiting {
		f.mu.Unlock()
		return false
	}
	f.status = status
	f.value = value
	f.err = err
	waiters := f.waiters
	f.waiters = nil
	notifiers := f.notifiers
	f.notifiers = nil
	cancellable := f.cancellable
	f.mu.Unlock()

	for _, ch := range waiters {
		close(ch)
	}
	if status == Cancelled && cancellable != nil {
		cancellable.Cancel()
	}
	for _, n := range notifiers {
		n.notifier.HandleNotify(f, n.attachment)
	}
	return true
}

func (f *impl[T]) AddNotifier(n Notifier[T], attachment any) {
	f.mu.Lock()
	if f.status == Waiting {
		f.notifiers = append(f.notifiers, notifierEntry[T]{notifier: n, attachment: attachment})
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()
	n.HandleNotify(f, attachment)
}
