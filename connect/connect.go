// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package connect implements connectors, channel sources, and channel
// destinations: a channel source is a factory returning a
// Future[Channel]; a Connector dials a destination address and fires
// independent bind/open listeners; a Destination accepts a single inbound
// connection from a local bind; a retrying source wraps any Source with a
// bounded retry policy; and a closing cancellable binds a resource so that
// cancelling its future safe-closes it exactly once.
//
// The real socket providers (TCP/UDP/pipe) are external collaborators —
// this package only defines the DialFunc/AcceptFunc seams they plug
// into, grounded on future's Future[Channel]-returning shape plus XNIO's
// well-known ChannelSource/Connector split.
package connect

import (
	"code.hybscloud.com/nio/future"
	"code.hybscloud.com/nio/listener"
)

// Source is the channel-source factory contract: Open starts
// one attempt and returns a future that resolves to the produced channel.
type Source[C any] interface {
	Open(openListener listener.Listener[C]) future.Future[C]
}

// cancelFunc adapts a plain context-cancel closure to future.Cancellable,
// used by Connector/Destination so Future.Cancel races the in-flight
// Dial/Accept call.
type cancelFunc func()

func (c cancelFunc) Cancel() { c() }
