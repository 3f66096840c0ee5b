// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package option

import (
	"fmt"
	"strconv"
)

// ClientAuthMode is the SSL client-authentication mode.
type ClientAuthMode int

const (
	NotRequested ClientAuthMode = iota
	Requested
	Required
)

func (m ClientAuthMode) String() string {
	switch m {
	case NotRequested:
		return "NOT_REQUESTED"
	case Requested:
		return "REQUESTED"
	case Required:
		return "REQUIRED"
	default:
		return fmt.Sprintf("ClientAuthMode(%d)", int(m))
	}
}

func parseClientAuthMode(raw string) (ClientAuthMode, error) {
	switch raw {
	case "NOT_REQUESTED":
		return NotRequested, nil
	case "REQUESTED":
		return Requested, nil
	case "REQUIRED":
		return Required, nil
	default:
		return 0, fmt.Errorf("option: invalid client auth mode %q", raw)
	}
}

func parseBool(raw string) (bool, error)     { return strconv.ParseBool(raw) }
func formatBool(v bool) string               { return strconv.FormatBool(v) }
func parseInt(raw string) (int, error)       { return strconv.Atoi(raw) }
func formatInt(v int) string                 { return strconv.Itoa(v) }
func identity(raw string) (string, error)    { return raw, nil }
func formatIdentity(v string) string         { return v }

// Message framing (used by component G).
var (
	MaxInboundMessageSize  = New[int]("MAX_INBOUND_MESSAGE_SIZE", parseInt, formatInt)
	MaxOutboundMessageSize = New[int]("MAX_OUTBOUND_MESSAGE_SIZE", parseInt, formatInt)
)

// SSL (used by component I).
var (
	SSLClientAuthMode = New[ClientAuthMode]("SSL_CLIENT_AUTH_MODE", parseClientAuthMode, func(m ClientAuthMode) string { return m.String() })
	SSLUseClientMode  = New[bool]("SSL_USE_CLIENT_MODE", parseBool, formatBool)
	SSLSessionCreation = New[bool]("SSL_SESSION_CREATION", parseBool, formatBool)

	SSLEnabledCipherSuites = NewSequence[string]("SSL_ENABLED_CIPHER_SUITES", identity, formatIdentity)
	SSLEnabledProtocols    = NewSequence[string]("SSL_ENABLED_PROTOCOLS", identity, formatIdentity)
)

// Socket-level options.
var (
	KeepAlive         = New[bool]("KEEP_ALIVE", parseBool, formatBool)
	TCPNoDelay        = New[bool]("TCP_NODELAY", parseBool, formatBool)
	Linger            = New[int]("LINGER", parseInt, formatInt) // seconds; -1 disables SO_LINGER
	ReceiveBufferSize = New[int]("RECEIVE_BUFFER_SIZE", parseInt, formatInt)
	SendBufferSize    = New[int]("SEND_BUFFER_SIZE", parseInt, formatInt)
	ReuseAddress      = New[bool]("REUSE_ADDRESS", parseBool, formatBool)
	Broadcast         = New[bool]("BROADCAST", parseBool, formatBool)
	MulticastTTL      = New[int]("MULTICAST_TTL", parseInt, formatInt)
)
