// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package option

import (
	"encoding/binary"
	"fmt"

	"code.hybscloud.com/nio/internal/bo"
)

// Transport names a connection kind with well-known framing defaults,
// adapted from the netopts.go Options(Read|Write)<Transport> helper
// family. Where that precedent varied the wire byte order and the inner
// protocol (BinaryStream/Datagram/SeqPacket) per transport, this module's
// framing package always uses a fixed 4-byte big-endian length prefix; what
// survives per-transport is PacketMode (whether the underlying transport
// already preserves message boundaries, so framing should pass messages
// through rather than length-prefix them) and ByteOrder (kept configurable,
// defaulting to native for same-host transports, for callers building their
// own wire formats on top of buf.Buffer).
type Transport int

const (
	TCP Transport = iota
	UDP
	WebSocket
	SCTP
	UnixStream
	UnixPacket
	LocalStream
)

func (t Transport) String() string {
	switch t {
	case TCP:
		return "tcp"
	case UDP:
		return "udp"
	case WebSocket:
		return "websocket"
	case SCTP:
		return "sctp"
	case UnixStream:
		return "unix-stream"
	case UnixPacket:
		return "unix-packet"
	case LocalStream:
		return "local-stream"
	default:
		return fmt.Sprintf("Transport(%d)", int(t))
	}
}

func parseByteOrder(raw string) (binary.ByteOrder, error) {
	switch raw {
	case "BIG_ENDIAN":
		return binary.BigEndian, nil
	case "LITTLE_ENDIAN":
		return binary.LittleEndian, nil
	case "NATIVE":
		return bo.Native(), nil
	default:
		return nil, fmt.Errorf("option: invalid byte order %q", raw)
	}
}

func formatByteOrder(order binary.ByteOrder) string {
	switch order {
	case binary.BigEndian:
		return "BIG_ENDIAN"
	case binary.LittleEndian:
		return "LITTLE_ENDIAN"
	default:
		if order == bo.Native() {
			return "NATIVE"
		}
		return "BIG_ENDIAN"
	}
}

// ByteOrder governs multi-byte field encoding for callers building their own
// wire formats atop buf.Buffer; framing's own length prefix is always
// big-endian regardless of this option.
var ByteOrder = New[binary.ByteOrder]("BYTE_ORDER", parseByteOrder, formatByteOrder)

// PacketMode marks a channel as boundary-preserving: framing should treat
// each inbound read as one complete message rather than applying a length
// prefix.
var PacketMode = New[bool]("PACKET_MODE", parseBool, formatBool)

type transportDefaults struct {
	packetMode bool
	byteOrder  binary.ByteOrder
}

func defaultsFor(t Transport) transportDefaults {
	switch t {
	case TCP:
		return transportDefaults{packetMode: false, byteOrder: binary.BigEndian}
	case UDP:
		return transportDefaults{packetMode: true, byteOrder: binary.BigEndian}
	case WebSocket:
		return transportDefaults{packetMode: true, byteOrder: binary.BigEndian}
	case SCTP:
		return transportDefaults{packetMode: true, byteOrder: binary.BigEndian}
	case UnixStream:
		return transportDefaults{packetMode: false, byteOrder: binary.BigEndian}
	case UnixPacket:
		return transportDefaults{packetMode: true, byteOrder: binary.BigEndian}
	case LocalStream:
		return transportDefaults{packetMode: false, byteOrder: bo.Native()}
	default:
		return transportDefaults{packetMode: false, byteOrder: binary.BigEndian}
	}
}

// Defaults returns a Builder pre-populated with t's ByteOrder and PacketMode
// defaults, ready for further Set calls (e.g. MaxInboundMessageSize) before
// Build. One Builder per connector/listener is the expected usage; its
// zero-cost Build lets a server specialize per-accepted-connection options
// from a single shared base (see Builder's copy-on-write doc comment).
func Defaults(t Transport) *Builder {
	d := defaultsFor(t)
	b := NewBuilder()
	Set(b, ByteOrder, d.byteOrder)
	Set(b, PacketMode, d.packetMode)
	return b
}
