// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package connect

import (
	"context"

	"code.hybscloud.com/nio/future"
	"code.hybscloud.com/nio/iolog"
	"code.hybscloud.com/nio/listener"
)

// AcceptFunc performs a single inbound accept on an already-bound local
// listener, an external collaborator.
type AcceptFunc[C any] func(ctx context.Context) (C, error)

// Destination accepts a single inbound connection from a local bind.
// Unlike Connector, there is no bind listener: the bind
// already happened before the Destination was constructed.
type Destination[C any] struct {
	Accept AcceptFunc[C]
	Log    iolog.Logger
}

func (d *Destination[C]) log() iolog.Logger {
	if d.Log != nil {
		return d.Log
	}
	return iolog.Discard
}

// Open starts one accept attempt. The returned future's Cancel races the
// in-flight AcceptFunc by cancelling ctx.
func (d *Destination[C]) Open(openListener listener.Listener[C]) future.Future[C] {
	sink, fut := future.NewSink[C]()
	ctx, cancel := context.WithCancel(context.Background())
	sink.SetCancellable(cancelFunc(cancel))

	go func() {
		defer cancel()
		ch, err := d.Accept(ctx)
		if err != nil {
			sink.SetException(err)
			return
		}
		if openListener != nil {
			listener.Invoke(d.log(), openListener, ch)
		}
		sink.SetResult(ch)
	}()
	return fut
}
