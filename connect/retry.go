// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package connect

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"

	"code.hybscloud.com/nio/future"
	"code.hybscloud.com/nio/listener"
)

// RetrySource wraps Delegate with a bounded retry policy: given
// a maximum attempt count MaxAttempts >= 1, Open presents itself as a
// Source whose returned future restarts the delegate on *failed* with a
// decremented counter, surfaces *done*/*cancelled* directly, and after
// MaxAttempts failures surfaces the final failure wrapped with "failed to
// create channel after K tries", preserving Cause() via
// github.com/pkg/errors (grounded on xtaci-kcptun's use of the same library
// for its own wrapped error contexts).
type RetrySource[C any] struct {
	Delegate    Source[C]
	MaxAttempts int
}

// Open starts the first attempt. MaxAttempts <= 0 is treated as 1 (a single
// attempt, no retry), honoring a "K >= 1" precondition rather than silently
// retrying forever or never attempting at all.
func (r *RetrySource[C]) Open(openListener listener.Listener[C]) future.Future[C] {
	max := r.MaxAttempts
	if max < 1 {
		max = 1
	}
	sink, fut := future.NewSink[C]()
	r.attempt(sink, openListener, max, nil)
	return fut
}

func (r *RetrySource[C]) attempt(sink *future.Sink[C], openListener listener.Listener[C], remaining int, lastErr error) {
	if remaining <= 0 {
		sink.SetException(pkgerrors.Wrap(lastErr, fmt.Sprintf("failed to create channel after %d tries", max(r.MaxAttempts, 1))))
		return
	}
	inner := r.Delegate.Open(openListener)
	inner.AddNotifier(future.NotifierFunc[C](func(f future.Future[C], _ any) {
		switch f.Status() {
		case future.Done:
			v, _ := f.Get()
			sink.SetResult(v)
		case future.Cancelled:
			sink.SetCancelled()
		case future.Failed:
			r.attempt(sink, openListener, remaining-1, f.GetException())
		}
	}), nil)
}
