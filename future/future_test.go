// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package future

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/nio/ioerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSinkSetResultSettlesDone(t *testing.T) {
	sink, f := NewSink[int]()
	require.True(t, sink.SetResult(42))
	assert.Equal(t, Done, f.Status())

	v, err := f.Get()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestSinkSetExceptionSettlesFailed(t *testing.T) {
	sink, f := NewSink[int]()
	cause := errors.New("boom")
	require.True(t, sink.SetException(cause))
	assert.Equal(t, Failed, f.Status())
	assert.Equal(t, cause, f.GetException())

	_, err := f.Get()
	assert.Equal(t, cause, err)
}

func TestSettleIsIdempotent(t *testing.T) {
	sink, f := NewSink[int]()
	require.True(t, sink.SetResult(1))
	require.False(t, sink.SetResult(2))
	assert.Equal(t, Done, f.Status())
	v, _ := f.Get()
	assert.Equal(t, 1, v)
}

func TestCancelForwardsToCancellable(t *testing.T) {
	sink, f := NewSink[int]()
	var cancelled bool
	sink.SetCancellable(cancelFunc(func() { cancelled = true }))

	f.Cancel()
	assert.Equal(t, Cancelled, f.Status())
	assert.True(t, cancelled)

	_, err := f.Get()
	assert.ErrorIs(t, err, ioerr.ErrCancelled)
}

func TestCancelOnTerminalFutureIsNoOp(t *testing.T) {
	sink, f := NewSink[int]()
	sink.SetResult(7)
	f.Cancel()
	assert.Equal(t, Done, f.Status())
}

func TestAwaitTimeoutReturnsWaitingBeforeSettle(t *testing.T) {
	_, f := NewSink[int]()
	status := f.AwaitTimeout(20 * time.Millisecond)
	assert.Equal(t, Waiting, status)
}

func TestAwaitUnblocksOnSettle(t *testing.T) {
	sink, f := NewSink[string]()
	go func() {
		time.Sleep(10 * time.Millisecond)
		sink.SetResult("hi")
	}()
	status := f.Await(context.Background())
	assert.Equal(t, Done, status)
}

func TestAwaitInterruptibleSurfacesInterrupted(t *testing.T) {
	_, f := NewSink[int]()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	status, err := f.AwaitInterruptible(ctx)
	assert.Equal(t, Waiting, status)
	assert.ErrorIs(t, err, ioerr.ErrInterrupted)
}

func TestAddNotifierFiresOnceOnSettle(t *testing.T) {
	sink, f := NewSink[int]()
	var mu sync.Mutex
	var got int
	var calls int
	f.AddNotifier(HandlingNotifier[int]{
		HandleDone: func(value int, _ any) {
			mu.Lock()
			defer mu.Unlock()
			got = value
			calls++
		},
	}, nil)

	sink.SetResult(99)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 99, got)
	assert.Equal(t, 1, calls)
}

func TestAddNotifierOnAlreadyTerminalFiresImmediately(t *testing.T) {
	sink, f := NewSink[int]()
	sink.SetResult(5)

	fired := make(chan int, 1)
	f.AddNotifier(NotifierFunc[int](func(fut Future[int], _ any) {
		v, _ := fut.Get()
		fired <- v
	}), nil)

	select {
	case v := <-fired:
		assert.Equal(t, 5, v)
	default:
		t.Fatal("notifier did not fire synchronously for a terminal future")
	}
}

func TestHandlingNotifierDispatchesFailedAndCancelled(t *testing.T) {
	var failedErr error
	var cancelledCalled bool
	n := HandlingNotifier[int]{
		HandleFailed:    func(err error, _ any) { failedErr = err },
		HandleCancelled: func(_ any) { cancelledCalled = true },
	}

	sink1, f1 := NewSink[int]()
	cause := errors.New("x")
	sink1.SetException(cause)
	f1.AddNotifier(n, nil)
	assert.Equal(t, cause, failedErr)

	sink2, f2 := NewSink[int]()
	sink2.SetCancelled()
	f2.AddNotifier(n, nil)
	assert.True(t, cancelledCalled)
}

func TestCastProjectsValueAtReadTime(t *testing.T) {
	sink, f := NewSink[int]()
	cast := Cast[int, string](f, func(v int) (string, error) {
		return string(rune('A' + v)), nil
	})

	sink.SetResult(2)
	v, err := cast.Get()
	require.NoError(t, err)
	assert.Equal(t, "C", v)
	assert.Equal(t, Done, cast.Status())
}

func TestManagerNotifierForwardsTerminalState(t *testing.T) {
	sourceSink, source := NewSink[int]()
	targetSink, target := NewSink[int]()

	source.AddNotifier(ManagerNotifier[int]{Target: targetSink}, nil)
	sourceSink.SetResult(11)

	v, err := target.Get()
	require.NoError(t, err)
	assert.Equal(t, 11, v)
}

type cancelFunc func()

func (c cancelFunc) Cancel() { c() }
