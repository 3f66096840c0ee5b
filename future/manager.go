// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package future

// ManagerNotifier forwards the terminal state of the future it is attached
// to into Target's Sink. It is the cross-future counterpart of
// ChainedPromise.Then, which only ever forwards between same-typed
// promises via the target field of handler.
type ManagerNotifier[T any] struct {
	Target *Sink[T]
}

func (m ManagerNotifier[T]) HandleNotify(f Future[T], _ any) {
	switch f.Status() {
	case Done:
		v, _ := f.Get()
		m.Target.SetResult(v)
	case Failed:
		m.Target.SetException(f.GetException())
	case Cancelled:
		m.Target.SetCancelled()
	}
}
