// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package future

import (
	"context"
	"time"
)

// castFuture re-types a Future[I] as a Future[O] by projecting I → O at
// read time. All other operations forward unchanged to the underlying
// future.
type castFuture[I, O any] struct {
	inner   Future[I]
	project func(I) (O, error)
}

// Cast wraps f so its value is projected through project whenever it is
// read, without waiting for f to settle. This is the Go analogue of a
// dynamic upcast on a completed future's generic parameter.
func Cast[I, O any](f Future[I], project func(I) (O, error)) Future[O] {
	return &castFuture[I, O]{inner: f, project: project}
}

func (c *castFuture[I, O]) Status() Status { return c.inner.Status() }

func (c *castFuture[I, O]) Await(ctx context.Context) Status { return c.inner.Await(ctx) }

func (c *castFuture[I, O]) AwaitTimeout(timeout time.Duration) Status {
	return c.inner.AwaitTimeout(timeout)
}

func (c *castFuture[I, O]) AwaitInterruptible(ctx context.Context) (Status, error) {
	return c.inner.AwaitInterruptible(ctx)
}

func (c *castFuture[I, O]) Get() (O, error) {
	v, err := c.inner.Get()
	if err != nil {
		var zero O
		return zero, err
	}
	return c.project(v)
}

func (c *castFuture[I, O]) GetException() error { return c.inner.GetException() }

func (c *castFuture[I, O]) Cancel() Future[O] {
	c.inner.Cancel()
	return c
}

func (c *castFuture[I, O]) AddNotifier(n Notifier[O], attachment any) {
	c.inner.AddNotifier(NotifierFunc[I](func(f Future[I], a any) {
		n.HandleNotify(c, a)
	}), attachment)
}
