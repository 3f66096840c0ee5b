// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package listener

import "code.hybscloud.com/nio/ioerr"

// Executor runs a dispatch closure, returning ErrClosed if it cannot accept
// more work (queue full, shut down) — a rejection an ExecutorListener reports
// to its OnRejected hook, which is where the caller safe-closes the channel.
type Executor interface {
	Execute(task func()) error
}

// DirectExecutor runs the task synchronously, on the calling goroutine —
// the default when no executor is interposed; callbacks run on whichever
// goroutine completes the future unless an explicit executor is interposed.
type DirectExecutor struct{}

func (DirectExecutor) Execute(task func()) error {
	task()
	return nil
}

// NullExecutor always rejects, useful for testing an ExecutorListener's
// safe-close-on-rejection path without standing up a real pool.
type NullExecutor struct{}

func (NullExecutor) Execute(func()) error { return ioerr.ErrClosed }

// PooledExecutor is a bounded worker pool: a fixed number of goroutines
// drain a buffered task channel. Execute is non-blocking — it rejects with
// ErrClosed if the queue is full or the pool has been shut down, rather
// than blocking the caller (which would violate the "never blocks" contract
// event dispatch needs). Grounded on the bounded-concurrency shape visible
// in eventloop's microtask scheduling, reimplemented minimally here since
// that package's pool is tied to its own event-loop internals.
type PooledExecutor struct {
	tasks chan func()
	done  chan struct{}
}

// NewPooledExecutor starts workers goroutines draining a queue of depth
// queueDepth.
func NewPooledExecutor(workers, queueDepth int) *PooledExecutor {
	if workers < 1 {
		workers = 1
	}
	if queueDepth < 0 {
		queueDepth = 0
	}
	p := &PooledExecutor{
		tasks: make(chan func(), queueDepth),
		done:  make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *PooledExecutor) worker() {
	for {
		select {
		case <-p.done:
			// Run whatever is still queued before exiting.
			for {
				select {
				case task := <-p.tasks:
					task()
				default:
					return
				}
			}
		case task, ok := <-p.tasks:
			if !ok {
				return
			}
			task()
		}
	}
}

// Execute enqueues task, returning ErrClosed if the queue is full or the
// pool has been shut down.
func (p *PooledExecutor) Execute(task func()) error {
	select {
	case <-p.done:
		return ioerr.ErrClosed
	default:
	}
	select {
	case p.tasks <- task:
		return nil
	default:
		return ioerr.ErrClosed
	}
}

// Shutdown stops accepting new work; in-flight and already-queued tasks
// still run.
func (p *PooledExecutor) Shutdown() {
	select {
	case <-p.done:
	default:
		close(p.done)
	}
}

// ExecutorListener submits dispatch of an inner listener to exec; if exec
// rejects, onRejected is called so the caller can safe-close the enclosing
// channel.
type ExecutorListener[T any] struct {
	Inner      Listener[T]
	Exec       Executor
	OnRejected func(channel T, err error)
}

func (e ExecutorListener[T]) HandleEvent(channel T) {
	err := e.Exec.Execute(func() { e.Inner.HandleEvent(channel) })
	if err != nil && e.OnRejected != nil {
		e.OnRejected(channel, err)
	}
}
