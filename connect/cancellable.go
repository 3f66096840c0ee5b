// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package connect

import (
	"sync"

	"code.hybscloud.com/nio/channel"
	"code.hybscloud.com/nio/iolog"
)

// ClosingCancellable binds a resource to a future.Cancellable so that
// cancelling the future safe-closes the resource exactly once, idempotent
// across repeated Cancel calls — this lets connection futures be aborted
// idempotently. It is grounded on channel's own SafeClose helper, composed
// here rather than duplicated.
type ClosingCancellable struct {
	log       iolog.Logger
	component string
	resource  channel.Closer
	once      sync.Once
}

// NewClosingCancellable returns a Cancellable that closes resource via
// channel.SafeClose the first time Cancel is called.
func NewClosingCancellable(log iolog.Logger, component string, resource channel.Closer) *ClosingCancellable {
	if log == nil {
		log = iolog.Discard
	}
	return &ClosingCancellable{log: log, component: component, resource: resource}
}

// Cancel closes the bound resource exactly once, regardless of how many
// times it is called or from how many goroutines.
func (c *ClosingCancellable) Cancel() {
	c.once.Do(func() {
		channel.SafeClose(c.log, c.component, c.resource)
	})
}
