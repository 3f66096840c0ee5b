// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package option

import (
	"encoding/binary"
	"testing"

	"code.hybscloud.com/nio/internal/bo"
	"github.com/stretchr/testify/assert"
)

func TestDefaultsForStreamTransportsAreNotPacketMode(t *testing.T) {
	for _, tr := range []Transport{TCP, UnixStream} {
		m := Defaults(tr).Build()
		assert.False(t, Get(m, PacketMode, true), tr.String())
		assert.Equal(t, binary.BigEndian, Get(m, ByteOrder, nil), tr.String())
	}
}

func TestDefaultsForBoundaryPreservingTransportsArePacketMode(t *testing.T) {
	for _, tr := range []Transport{UDP, WebSocket, SCTP, UnixPacket} {
		m := Defaults(tr).Build()
		assert.True(t, Get(m, PacketMode, false), tr.String())
	}
}

func TestDefaultsForLocalStreamUsesNativeByteOrder(t *testing.T) {
	m := Defaults(LocalStream).Build()
	assert.False(t, Get(m, PacketMode, true))
	assert.Equal(t, bo.Native(), Get(m, ByteOrder, nil))
}

func TestDefaultsAreIndependentBuilders(t *testing.T) {
	base := Defaults(TCP)
	m1 := base.Build()
	Set(base, MaxInboundMessageSize, 8192)
	m2 := base.Build()

	assert.False(t, Has(m1, MaxInboundMessageSize))
	assert.Equal(t, 8192, Get(m2, MaxInboundMessageSize, 0))
}

func TestTransportString(t *testing.T) {
	assert.Equal(t, "tcp", TCP.String())
	assert.Equal(t, "websocket", WebSocket.String())
}
