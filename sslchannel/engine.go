// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package sslchannel implements the SSL overlay glue: an
// Overlay wraps a stream channel and presents itself as a channel whose
// read/write readiness is derived from the interplay of the underlying
// stream's readiness and a TLS engine's next-needed action. The engine
// itself is an external collaborator — a byte-in/byte-out
// oracle this package drives but does not implement.
package sslchannel

import "code.hybscloud.com/nio/option"

// HandshakeStatus is the engine's next-needed action, modeled directly on
// the five states every SSLEngine-style oracle exposes.
type HandshakeStatus int

const (
	// NotHandshaking means the engine is in steady-state data transfer;
	// Wrap/Unwrap calls from here on are pure payload, no handshake bytes.
	NotHandshaking HandshakeStatus = iota
	// NeedWrap means the engine has handshake bytes to emit: call Wrap.
	NeedWrap
	// NeedUnwrap means the engine needs more peer handshake bytes: call
	// Unwrap once more net-cipher input is available.
	NeedUnwrap
	// NeedTask means a (potentially blocking) task must run — e.g.
	// certificate validation — before the engine can proceed.
	NeedTask
	// Finished means the handshake just completed on the most recent
	// Wrap/Unwrap call; the overlay reads it once, then treats the engine
	// as NotHandshaking from here on.
	Finished
)

func (s HandshakeStatus) String() string {
	switch s {
	case NotHandshaking:
		return "NOT_HANDSHAKING"
	case NeedWrap:
		return "NEED_WRAP"
	case NeedUnwrap:
		return "NEED_UNWRAP"
	case NeedTask:
		return "NEED_TASK"
	case Finished:
		return "FINISHED"
	default:
		return "UNKNOWN"
	}
}

// Result is the outcome of one Wrap or Unwrap call: how many source bytes
// were consumed, how many destination bytes were produced, and the
// engine's handshake status immediately after the call.
type Result struct {
	Consumed int
	Produced int
	Status   HandshakeStatus
}

// Engine is the TLS engine oracle: wrap (app-plain →
// net-cipher), unwrap (net-cipher → app-plain), get-handshake-status,
// begin-handshake. Every method is non-blocking: Wrap/Unwrap must not
// block on I/O (the overlay owns all actual reads/writes to the
// underlying stream) and must not run long-running handshake work
// inline — that belongs behind a NeedTask/Task() pair instead.
type Engine interface {
	// Wrap consumes plaintext from src (possibly zero bytes, during a pure
	// handshake step) and produces wire-ready ciphertext into dst. dst must
	// be large enough for at least one TLS record; a too-small dst is a
	// caller error, not a not-ready signal.
	Wrap(src, dst []byte) (Result, error)
	// Unwrap consumes ciphertext from src and produces plaintext into dst.
	Unwrap(src, dst []byte) (Result, error)
	// HandshakeStatus reports what the engine needs next without consuming
	// or producing any bytes.
	HandshakeStatus() HandshakeStatus
	// BeginHandshake starts (or renegotiates) the handshake. After this
	// call HandshakeStatus must report NeedWrap or NeedUnwrap, never
	// NotHandshaking.
	BeginHandshake() error
	// Task returns the next pending task and true if HandshakeStatus is
	// NeedTask, or (nil, false) otherwise. Running the task (on whatever
	// goroutine the caller chooses) advances the engine's internal state;
	// the caller must re-check HandshakeStatus afterward.
	Task() (task func(), ok bool)
}

// Configurable is implemented by engines that accept option-map-driven
// configuration. It is kept separate from Engine
// itself since a minimal oracle (e.g. a test fake) need not support
// reconfiguration at all.
type Configurable interface {
	SetUseClientMode(clientMode bool)
	SetClientAuth(mode option.ClientAuthMode)
	SetEnableSessionCreation(enabled bool)
	SetEnabledCipherSuites(suites []string)
	SetEnabledProtocols(protocols []string)
	SupportedCipherSuites() []string
	SupportedProtocols() []string
}
