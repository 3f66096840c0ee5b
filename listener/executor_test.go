// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package listener

import (
	"testing"
	"time"

	"code.hybscloud.com/nio/ioerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectExecutorRunsSynchronously(t *testing.T) {
	ran := false
	err := DirectExecutor{}.Execute(func() { ran = true })
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestNullExecutorAlwaysRejects(t *testing.T) {
	err := NullExecutor{}.Execute(func() {})
	assert.ErrorIs(t, err, ioerr.ErrClosed)
}

func TestPooledExecutorRunsQueuedTasks(t *testing.T) {
	p := NewPooledExecutor(2, 4)
	defer p.Shutdown()

	done := make(chan struct{}, 1)
	require.NoError(t, p.Execute(func() { done <- struct{}{} }))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task did not run")
	}
}

func TestPooledExecutorRejectsWhenQueueFull(t *testing.T) {
	p := NewPooledExecutor(1, 0)
	defer p.Shutdown()

	block := make(chan struct{})
	// With depth 0 a submission is accepted only once the worker goroutine
	// is parked on the queue, so retry until the freshly started worker
	// takes the blocking task.
	var first error
	for i := 0; i < 1000; i++ {
		if first = p.Execute(func() { <-block }); first == nil {
			break
		}
		time.Sleep(time.Millisecond)
	}
	require.NoError(t, first)

	// Worker is busy and the queue has depth 0: the next submission must
	// reject rather than block the caller.
	var err error
	for i := 0; i < 20 && err == nil; i++ {
		err = p.Execute(func() {})
	}
	close(block)
	assert.ErrorIs(t, err, ioerr.ErrClosed)
}

func TestPooledExecutorRejectsAfterShutdown(t *testing.T) {
	p := NewPooledExecutor(1, 1)
	p.Shutdown()
	err := p.Execute(func() {})
	assert.ErrorIs(t, err, ioerr.ErrClosed)
}

func TestExecutorListenerRejectionTriggersOnRejected(t *testing.T) {
	var rejectedWith error
	l := ExecutorListener[int]{
		Inner: ListenerFunc[int](func(int) {}),
		Exec:  NullExecutor{},
		OnRejected: func(_ int, err error) {
			rejectedWith = err
		},
	}
	l.HandleEvent(1)
	assert.ErrorIs(t, rejectedWith, ioerr.ErrClosed)
}

func TestExecutorListenerSuccessDoesNotCallOnRejected(t *testing.T) {
	called := false
	l := ExecutorListener[int]{
		Inner: ListenerFunc[int](func(int) {}),
		Exec:  DirectExecutor{},
		OnRejected: func(int, error) {
			called = true
		},
	}
	l.HandleEvent(1)
	assert.False(t, called)
}
