// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framing

import (
	"testing"

	"code.hybscloud.com/nio/channel"
	"code.hybscloud.com/nio/ioerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacketChannelSendReceiveRoundTrip(t *testing.T) {
	a, b := channel.NewMemoryChannelPair()
	pa := NewPacketChannel[*channel.MemoryChannel](a, 0, 0)
	pb := NewPacketChannel[*channel.MemoryChannel](b, 0, 0)

	require.NoError(t, pa.Send([]byte("datagram")))
	buf := make([]byte, 64)
	n, err := pb.Receive(buf)
	require.NoError(t, err)
	assert.Equal(t, "datagram", string(buf[:n]))
}

func TestPacketChannelReceiveReturnsZeroWhenNonePending(t *testing.T) {
	a, _ := channel.NewMemoryChannelPair()
	pa := NewPacketChannel[*channel.MemoryChannel](a, 0, 0)
	n, err := pa.Receive(make([]byte, 8))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestPacketChannelOversizedSendRejected(t *testing.T) {
	a, _ := channel.NewMemoryChannelPair()
	pa := NewPacketChannel[*channel.MemoryChannel](a, 0, 4)
	err := pa.Send([]byte("toolong"))
	assert.ErrorIs(t, err, ioerr.ErrOversizedMessage)
}

func TestPacketChannelSendVConcatenatesBuffers(t *testing.T) {
	a, b := channel.NewMemoryChannelPair()
	pa := NewPacketChannel[*channel.MemoryChannel](a, 0, 0)
	pb := NewPacketChannel[*channel.MemoryChannel](b, 0, 0)

	require.NoError(t, pa.SendV([][]byte{[]byte("ab"), []byte("cd")}))
	buf := make([]byte, 16)
	n, err := pb.Receive(buf)
	require.NoError(t, err)
	assert.Equal(t, "abcd", string(buf[:n]))
}
