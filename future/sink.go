// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package future

// Sink is the write-only counterpart of Future[T]: XNIO keeps IoFuture and
// its manual-result writer apart, unlike a promise type that conflates
// Resolve/Reject into the same value it hands out for reading. A
// Sink is created alongside its Future via NewSink; producers hold the
// Sink, consumers hold the Future.
type Sink[T any] struct {
	f *impl[T]
}

// NewSink creates a pending future and the sink used to settle it.
func NewSink[T any]() (*Sink[T], Future[T]) {
	f := &impl[T]{}
	return &Sink[T]{f: f}, f
}

// SetCancellable attaches the operation that a subsequent Cancel on the
// future should forward to. It must be called before the future
// can be observed as terminal by any other goroutine; typically it is set
// once, immediately after NewSink, by the operation that owns the Sink.
func (s *Sink[T]) SetCancellable(c Cancellable) {
	s.f.mu.Lock()
	s.f.cancellable = c
	s.f.mu.Unlock()
}

// SetResult settles the future as Done with value, returning true, unless it
// is already terminal, in which case it returns false and has no effect.
func (s *Sink[T]) SetResult(value T) bool {
	return s.trySettle(Done, value, nil)
}

// SetException settles the future as Failed with err.
func (s *Sink[T]) SetException(err error) bool {
	var zero T
	return s.trySettle(Failed, zero, err)
}

// SetCancelled settles the future as Cancelled directly, for producers that
// observe cancellation of their own underlying operation rather than
// receiving it via Future.Cancel.
func (s *Sink[T]) SetCancelled() bool {
	var zero T
	return s.trySettle(Cancelled, zero, nil)
}

func (s *Sink[T]) trySettle(status Status, value T, err error) bool {
	return s.f.settle(status, value, err)
}
