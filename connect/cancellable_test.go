// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package connect

import (
	"context"
	"testing"

	"code.hybscloud.com/nio/channel"
	"code.hybscloud.com/nio/future"
	"code.hybscloud.com/nio/ioerr"
	"code.hybscloud.com/nio/iolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestClosingCancellableClosesResourceExactlyOnce covers the cancel-cascade
// case: a future bound to a closing cancellable over a resource, cancelled
// twice, closes the resource exactly once and settles cancelled exactly
// once.
func TestClosingCancellableClosesResourceExactlyOnce(t *testing.T) {
	resource, _ := channel.NewMemoryChannelPair()
	sink, fut := future.NewSink[*channel.MemoryChannel]()
	cancellable := NewClosingCancellable(iolog.Discard, "test", resource)
	sink.SetCancellable(cancellable)

	fut.Cancel()
	fut.Cancel()

	status := fut.Await(context.Background())
	require.Equal(t, future.Cancelled, status)
	assert.True(t, resource.IsClosed())

	// A second direct Close reports ioerr.ErrClosed rather than panicking;
	// SafeClose treats this specific error as expected and silent.
	assert.ErrorIs(t, resource.Close(), ioerr.ErrClosed)
}

// TestClosingCancellableNilResourceIsNoop confirms SafeClose's nil guard is
// reachable through the cancellable without panicking.
func TestClosingCancellableNilResourceIsNoop(t *testing.T) {
	cancellable := NewClosingCancellable(iolog.Discard, "test", nil)
	assert.NotPanics(t, func() {
		cancellable.Cancel()
		cancellable.Cancel()
	})
}

// TestClosingCancellableDefaultsLoggerWhenNil confirms passing a nil Logger
// falls back to iolog.Discard rather than panicking on first use.
func TestClosingCancellableDefaultsLoggerWhenNil(t *testing.T) {
	resource, _ := channel.NewMemoryChannelPair()
	cancellable := NewClosingCancellable(nil, "test", resource)
	assert.NotPanics(t, func() {
		cancellable.Cancel()
	})
	assert.True(t, resource.IsClosed())
}
