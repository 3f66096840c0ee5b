// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package connect

import (
	"context"
	"net"

	"code.hybscloud.com/nio/future"
	"code.hybscloud.com/nio/iolog"
	"code.hybscloud.com/nio/listener"
)

// DialFunc performs the actual connect attempt an external socket provider
// supplies. It calls onBound with the channel as soon as it is locally
// bound — which may happen before the remote handshake completes — then
// returns the fully connected channel, or an error if the attempt (or ctx)
// is cancelled or fails outright.
type DialFunc[C any] func(ctx context.Context, addr net.Addr, onBound func(C)) (C, error)

// Connector dials a destination address and fires independent bind/open
// listeners. Bound to a fixed address through ConnectSource, it serves as a
// Source.
type Connector[C any] struct {
	Dial DialFunc[C]
	Log  iolog.Logger
}

func (c *Connector[C]) log() iolog.Logger {
	if c.Log != nil {
		return c.Log
	}
	return iolog.Discard
}

// Connect starts one connect attempt to addr. The bind listener fires once
// the channel is locally bound, the open listener once the connect fully
// completes; only both invocations happening is required, not any
// particular relative order to each other, so this implementation firing
// bind strictly before open (the natural sequencing of one goroutine) is
// a conforming choice. The returned future's Cancel races the in-flight
// DialFunc by cancelling ctx.
func (c *Connector[C]) Connect(ctx context.Context, addr net.Addr, openListener, bindListener listener.Listener[C]) future.Future[C] {
	sink, fut := future.NewSink[C]()
	dialCtx, cancel := context.WithCancel(ctx)
	sink.SetCancellable(cancelFunc(cancel))

	go func() {
		defer cancel()
		ch, err := c.Dial(dialCtx, addr, func(bound C) {
			if bindListener != nil {
				listener.Invoke(c.log(), bindListener, bound)
			}
		})
		if err != nil {
			sink.SetException(err)
			return
		}
		if openListener != nil {
			listener.Invoke(c.log(), openListener, ch)
		}
		sink.SetResult(ch)
	}()
	return fut
}

// ConnectSource adapts a Connector plus a fixed destination address into
// the Source[C] factory shape, so it can be composed with a RetrySource.
type ConnectSource[C any] struct {
	Connector    *Connector[C]
	Addr         net.Addr
	BindListener listener.Listener[C]
}

func (s *ConnectSource[C]) Open(openListener listener.Listener[C]) future.Future[C] {
	return s.Connector.Connect(context.Background(), s.Addr, openListener, s.BindListener)
}
