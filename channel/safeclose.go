// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package channel

import (
	"code.hybscloud.com/nio/ioerr"
	"code.hybscloud.com/nio/iolog"
)

// Closer is anything with an idempotent Close, which every concrete channel
// in this module satisfies via an embedded *Base.
type Closer interface {
	Close() error
}

// SafeClose closes c, logging (rather than propagating) any error other
// than ioerr.ErrClosed — repeated closes are expected and silent, but a
// real close failure (e.g. the underlying fd's final flush failing) should
// still be visible somewhere. Used by connect's ClosingCancellable and by
// framing/sslchannel whenever an internal invariant forces the enclosing
// channel to be safe-closed; listener.ExecutorListener leaves rejection
// handling to its OnRejected hook, which may call SafeClose.
func SafeClose(log iolog.Logger, component string, c Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil && err != ioerr.ErrClosed {
		log.Warn(component, err)
	}
}
